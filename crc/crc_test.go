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

package crc_test

import (
	"testing"

	"github/sabouaram/dargo/crc"
)

// reference reproduces crc.Compute's contract byte by byte, with no
// stride acceleration, as an independent oracle.
func reference(width int, offset int64, buf []byte, acc []byte) {
	pos := int(offset % int64(width))
	for _, b := range buf {
		acc[pos] ^= b
		pos++
		if pos == width {
			pos = 0
		}
	}
}

// TestComputeUnalignedSplitWrite reproduces a write pattern that crosses a
// stride boundary mid-call: width 2 (the stride-accelerated path), a first
// write of 3 bytes leaving the cyclic position at an odd offset, then a
// second write of 2 bytes starting unaligned to the stride. Compute must
// not index past c.Bytes()'s length.
func TestComputeUnalignedSplitWrite(t *testing.T) {
	c, err := crc.New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Compute(0, []byte("abc"))
	c.Compute(3, []byte("de"))

	want := make([]byte, 2)
	reference(2, 0, []byte("abc"), want)
	reference(2, 3, []byte("de"), want)

	if !bytesEqual(c.Bytes(), want) {
		t.Fatalf("Compute() = %x, want %x", c.Bytes(), want)
	}
}

// TestComputeUnalignedOddWidth exercises the non-stride default path with
// the same split-write pattern, across several widths and chunkings that
// never land on a multiple of the width.
func TestComputeUnalignedOddWidth(t *testing.T) {
	widths := []int{1, 3, 5, 7}
	chunks := [][]byte{[]byte("abcdefg"), []byte("hi"), []byte("j"), []byte("klmno")}

	for _, w := range widths {
		c, err := crc.New(w)
		if err != nil {
			t.Fatalf("New(%d): %v", w, err)
		}
		want := make([]byte, w)
		var offset int64
		for _, chunk := range chunks {
			c.Compute(offset, chunk)
			reference(w, offset, chunk, want)
			offset += int64(len(chunk))
		}
		if !bytesEqual(c.Bytes(), want) {
			t.Fatalf("width %d: Compute() = %x, want %x", w, c.Bytes(), want)
		}
	}
}

// TestComputeStrideWidthsMatchReference drives every stride-accelerated
// width (2, 4, 8) through the same uneven chunk sizes as the default path
// test, so the stride special-casing in computeStride is checked against
// the same oracle used for the non-accelerated widths.
func TestComputeStrideWidthsMatchReference(t *testing.T) {
	widths := []int{2, 4, 8, 16}
	chunks := [][]byte{[]byte("abcdefg"), []byte("hi"), []byte("j"), []byte("klmno"), []byte("pqrstuvwx")}

	for _, w := range widths {
		c, err := crc.New(w)
		if err != nil {
			t.Fatalf("New(%d): %v", w, err)
		}
		want := make([]byte, w)
		var offset int64
		for _, chunk := range chunks {
			c.Compute(offset, chunk)
			reference(w, offset, chunk, want)
			offset += int64(len(chunk))
		}
		if !bytesEqual(c.Bytes(), want) {
			t.Fatalf("width %d: Compute() = %x, want %x", w, c.Bytes(), want)
		}
	}
}

func TestEqualComparesWidthThenContents(t *testing.T) {
	a, _ := crc.New(4)
	b, _ := crc.New(8)
	if a.Equal(b) {
		t.Fatalf("CRCs of different width compared equal")
	}

	c, _ := crc.New(4)
	d, _ := crc.New(4)
	c.Compute(0, []byte("x"))
	if c.Equal(d) {
		t.Fatalf("CRCs with different contents compared equal")
	}
	d.Compute(0, []byte("x"))
	if !c.Equal(d) {
		t.Fatalf("CRCs with identical width and contents compared unequal")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
