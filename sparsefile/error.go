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

// Package sparsefile detects runs of zero bytes on write and replaces them
// with an escape mark plus a BigInt hole length, synthesizing the zeros
// back on read. It sits directly atop escape.
package sparsefile

import "github/sabouaram/dargo/errors"

const (
	Corrupt errors.CodeError = iota + errors.MinPkgSparseFile
	Unsupported
)

func init() {
	errors.RegisterIdFctMessage(Corrupt, getMessage)
	errors.RegisterKind(Corrupt, errors.KindCorruptArchive)
	errors.RegisterKind(Unsupported, errors.KindFeature)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Corrupt:
		return "sparse file: malformed hole encoding"
	case Unsupported:
		return "sparse file: skip is not supported across a synthesized hole"
	}
	return ""
}
