/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package streamcompress wraps whole-stream compression codecs
// (gzip, bzip2, xz, lz4, zstd) behind a uniform Algorithm selector, and
// exposes a Stream that can suspend compression mid-write so payloads
// the caller already compressed pass through untouched.
package streamcompress

import "github/sabouaram/dargo/errors"

const (
	Feature errors.CodeError = iota + errors.MinPkgStreamCompress
	InvalidOperation
	AlreadySet
	Unsupported
)

func init() {
	errors.RegisterIdFctMessage(Feature, getMessage)
	errors.RegisterKind(Feature, errors.KindFeature)
	errors.RegisterKind(InvalidOperation, errors.KindBug)
	errors.RegisterKind(AlreadySet, errors.KindBug)
	errors.RegisterKind(Unsupported, errors.KindFeature)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Feature:
		return "streamcompress: algorithm has no usable implementation in this build"
	case InvalidOperation:
		return "streamcompress: operation must be Compress or Decompress"
	case AlreadySet:
		return "streamcompress: reader or writer already configured on this engine"
	case Unsupported:
		return "streamcompress: operation not supported on a compressing stream"
	}
	return ""
}
