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

// Package blockcompress frames a stream as a sequence of independently
// compressed blocks, each wrapped in a small length-prefixed frame, and
// offers both a sequential and a worker-pool-parallel implementation.
package blockcompress

import "github/sabouaram/dargo/errors"

const (
	CorruptArchive errors.CodeError = iota + errors.MinPkgBlockCompress
	Unsupported
	Range
)

func init() {
	errors.RegisterIdFctMessage(CorruptArchive, getMessage)
	errors.RegisterKind(CorruptArchive, errors.KindCorruptArchive)
	errors.RegisterKind(Unsupported, errors.KindFeature)
	errors.RegisterKind(Range, errors.KindRange)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case CorruptArchive:
		return "blockcompress: malformed frame"
	case Unsupported:
		return "blockcompress: operation not supported"
	case Range:
		return "blockcompress: invalid configuration"
	}
	return "blockcompress: unknown error"
}
