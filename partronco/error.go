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

// Package partronco is the multi-worker variant of tronco: one below
// goroutine does the sequential I/O against the underlying stream, N
// worker goroutines encrypt or decrypt blocks concurrently, and the
// public Stream methods run on the caller's goroutine, coordinating with
// both through pool.Ratelier scatter/gather queues and a pool.Heap of
// reusable segments.
package partronco

import "github/sabouaram/dargo/errors"

const (
	Corrupt errors.CodeError = iota + errors.MinPkgParTronco
	Unsupported
	Range
	Cancelled
)

func init() {
	errors.RegisterIdFctMessage(Corrupt, getMessage)
	errors.RegisterKind(Corrupt, errors.KindCorruptArchive)
	errors.RegisterKind(Unsupported, errors.KindFeature)
	errors.RegisterKind(Range, errors.KindRange)
	errors.RegisterKind(Cancelled, errors.KindThreadCancel)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Corrupt:
		return "partronco: encrypted region ended before its expected boundary"
	case Unsupported:
		return "partronco: operation not supported in this mode"
	case Range:
		return "partronco: position out of range"
	case Cancelled:
		return "partronco: worker pipeline cancelled"
	}
	return ""
}
