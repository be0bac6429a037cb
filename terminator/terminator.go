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

package terminator

import (
	"bytes"
	"io"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
)

// blockSize is the padding granularity the unary length code counts in;
// matches the historical trailer layout.
const blockSize = 4

// FormatVersion is the one-byte tag written ahead of the BigInt offset,
// identifying the trailer layout independently of the archive content
// version.
const FormatVersion byte = 1

// Write builds the trailing marker for catalogueOffset: a one-byte format
// version, the BigInt offset, zero padding up to a multiple of blockSize,
// then a unary-coded length (in blocks of blockSize bytes) of everything from the
// version byte through the padding, readable backward from EOF.
func Write(w io.Writer, catalogueOffset bigint.Num) (int64, error) {
	var hdr bytes.Buffer
	hdr.WriteByte(FormatVersion)
	if _, err := catalogueOffset.Write(&hdr); err != nil {
		return 0, err
	}
	size := int64(hdr.Len())

	nbBlocks := size / blockSize
	rest := size % blockSize
	if rest != 0 {
		pad := blockSize - rest
		hdr.Write(make([]byte, pad))
		nbBlocks++
	}

	lastBits := nbBlocks % 8
	nbFF := nbBlocks / 8
	if lastBits != 0 {
		var a byte
		for i := int64(0); i < lastBits; i++ {
			a >>= 1
			a |= 0x80
		}
		hdr.WriteByte(a)
	} else {
		hdr.WriteByte(0)
	}
	for i := int64(0); i < nbFF; i++ {
		hdr.WriteByte(0xFF)
	}

	n, err := w.Write(hdr.Bytes())
	return int64(n), err
}

// ReadBackward parses a trailer found at the very end of tail (tail's
// last byte is the archive's last byte). It returns the format version,
// the catalogue offset, and the index into tail where the version byte
// begins (useful for callers that want to validate nothing unexpected
// follows the trailer).
func ReadBackward(tail []byte) (version byte, offset bigint.Num, headerStart int, err error) {
	i := len(tail) - 1
	ffCount := 0
	for i >= 0 && tail[i] == 0xFF {
		ffCount++
		i--
	}
	if i < 0 {
		return 0, bigint.Zero(), 0, errors.New(uint16(Corrupt), "terminator: trailer is all 0xFF bytes")
	}
	a := tail[i]
	markerIdx := i

	bits := int64(ffCount) * 8
	for a != 0 {
		if a&0x80 == 0 {
			return 0, bigint.Zero(), 0, errors.New(uint16(Corrupt), "terminator: malformed unary length byte")
		}
		bits++
		a <<= 1
	}
	byteOffset := bits * blockSize

	headerStart = markerIdx - int(byteOffset)
	if headerStart < 0 || headerStart >= markerIdx {
		return 0, bigint.Zero(), 0, errors.New(uint16(Corrupt), "terminator: computed header offset out of range")
	}

	version = tail[headerStart]
	num, _, rerr := bigint.Read(bytes.NewReader(tail[headerStart+1 : markerIdx]))
	if rerr != nil {
		return 0, bigint.Zero(), 0, errors.New(uint16(Corrupt), "terminator: malformed catalogue offset", rerr)
	}
	return version, num, headerStart, nil
}
