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

// Package storage implements a segmented byte-cell arena addressed through
// a forward/backward iterator: a growable byte buffer cheaper to mutate in
// the middle than a single contiguous slice. No other package in this
// module imports it.
package storage

import "github/sabouaram/dargo/errors"

const (
	OutOfMemory errors.CodeError = iota + errors.MinPkgStorage
	Range
	InvalidIterator
)

func init() {
	errors.RegisterIdFctMessage(OutOfMemory, getMessage)
	errors.RegisterKind(OutOfMemory, errors.KindOutOfMemory)
	errors.RegisterKind(Range, errors.KindRange)
	errors.RegisterKind(InvalidIterator, errors.KindBug)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case OutOfMemory:
		return "cell allocation failed below the minimum viable cell size"
	case Range:
		return "requested size or offset out of range"
	case InvalidIterator:
		return "iterator used after the storage it addresses was mutated"
	}
	return ""
}
