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

package slicer

import "github.com/google/uuid"

// Label is the 10-byte opaque identity stamped on every slice of one
// archive ("data_name"), so slices from two different archives can never
// be silently concatenated. The all-zero Label is the reserved empty
// sentinel.
type Label [10]byte

// EmptyLabel returns the all-zero sentinel Label.
func EmptyLabel() Label {
	return Label{}
}

// NewLabel returns a fresh random Label, taken from the low 10 bytes of a
// random UUIDv4.
func NewLabel() Label {
	id := uuid.New()
	var l Label
	copy(l[:], id[:10])
	return l
}

// IsEmpty reports whether l is the all-zero sentinel.
func (l Label) IsEmpty() bool {
	return l == Label{}
}

// Equal reports whether l and o carry the same bytes.
func (l Label) Equal(o Label) bool {
	return l == o
}
