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

package crc

import (
	"io"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
)

// CRC is a fixed-width cyclic XOR checksum. The zero value is not valid;
// use New. Width is immutable for the life of a value.
type CRC struct {
	width int
	bytes []byte
}

// New allocates a zeroed CRC of the given width, which must be at least 1.
func New(width int) (CRC, error) {
	if width < 1 {
		return CRC{}, errors.New(uint16(Range), "width must be >= 1")
	}
	return CRC{width: width, bytes: make([]byte, width)}, nil
}

// Width returns the byte width of c.
func (c CRC) Width() int {
	return c.width
}

// Compute XORs buf into c's cyclic array, starting at (offset mod width)
// and wrapping. It special-cases widths that are multiples of 8, 4 or 2 to
// XOR that many bytes per iteration.
func (c CRC) Compute(offset int64, buf []byte) {
	w := c.width
	pos := int(offset % int64(w))

	switch {
	case w%8 == 0:
		computeStride(c.bytes, buf, pos, 8)
	case w%4 == 0:
		computeStride(c.bytes, buf, pos, 4)
	case w%2 == 0:
		computeStride(c.bytes, buf, pos, 2)
	default:
		for i := 0; i < len(buf); i++ {
			c.bytes[pos] ^= buf[i]
			pos++
			if pos == w {
				pos = 0
			}
		}
	}
}

// computeStride XORs buf into dst stride bytes at a time, wrapping at
// len(dst); stride must divide len(dst).
func computeStride(dst, buf []byte, pos, stride int) {
	w := len(dst)
	i := 0
	for i < len(buf) {
		n := stride
		if i+n > len(buf) {
			n = len(buf) - i
		}
		if rem := w - pos; n > rem {
			n = rem
		}
		for k := 0; k < n; k++ {
			dst[pos+k] ^= buf[i+k]
		}
		i += n
		pos += n
		if pos == w {
			pos = 0
		}
	}
}

// Equal reports whether c and o have the same width and contents.
func (c CRC) Equal(o CRC) bool {
	if c.width != o.width {
		return false
	}
	for i := range c.bytes {
		if c.bytes[i] != o.bytes[i] {
			return false
		}
	}
	return true
}

// Bytes returns the raw accumulated checksum bytes.
func (c CRC) Bytes() []byte {
	return append([]byte(nil), c.bytes...)
}

// Write serializes c as `width:BigInt || bytes[width]`.
func (c CRC) Write(w io.Writer) (int64, error) {
	n, err := bigint.New(uint64(c.width)).Write(w)
	if err != nil {
		return n, err
	}
	m, err := w.Write(c.bytes)
	return n + int64(m), err
}

// Read decodes a CRC written by Write.
func Read(r io.Reader) (CRC, error) {
	widthNum, _, err := bigint.Read(r)
	if err != nil {
		return CRC{}, err
	}
	width64, overflow := widthNum.Uint64()
	if overflow || width64 == 0 || width64 > 1<<20 {
		return CRC{}, errors.New(uint16(Corrupt), "CRC width out of range")
	}
	buf := make([]byte, width64)
	if _, err = io.ReadFull(r, buf); err != nil {
		return CRC{}, errors.New(uint16(Corrupt), "reading CRC bytes", err)
	}
	return CRC{width: int(width64), bytes: buf}, nil
}

// ReadLegacyFixedWidth2 reads the fixed two-byte CRC format older archive
// versions wrote, before the width became self-describing.
func ReadLegacyFixedWidth2(r io.Reader) (CRC, error) {
	buf := make([]byte, 2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return CRC{}, errors.New(uint16(Corrupt), "reading legacy 2-byte CRC", err)
	}
	return CRC{width: 2, bytes: buf}, nil
}
