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

package bigint

import (
	"io"
	"math/big"

	"github/sabouaram/dargo/errors"
)

// zeroTag is the sentinel tag byte for the value 0. It is never produced by
// the general L-1-leading-zero-bits rule below (that rule only ever sets
// one of bits 7..1, never bit 0 alone), so it cannot collide with a general
// one-byte-payload tag.
const zeroTag = 0x01

// escapeTag marks a length that does not fit the 7 payload bytes a single
// tag byte can describe directly; the real length follows as a recursive
// self-delimiting Num.
const escapeTag = 0x00

// maxDirectLen is the largest payload length a single tag byte can encode
// directly (tag = 0x80 >> (L-1), L in 1..7).
const maxDirectLen = 7

// Write serializes n to w as a unary length tag followed by n's big-endian
// payload bytes, and returns the number of bytes written.
func (n Num) Write(w io.Writer) (int64, error) {
	b := n.big()
	if b.Sign() < 0 {
		return 0, errors.New(uint16(Range), "cannot serialize a negative value")
	}
	if b.Sign() == 0 {
		nw, err := w.Write([]byte{zeroTag, 0x00})
		if err != nil {
			return int64(nw), errors.New(uint16(Corrupt), "writing zero BigInt", err)
		}
		return int64(nw), nil
	}

	payload := b.Bytes()
	l := len(payload)

	if l <= maxDirectLen {
		tag := byte(0x80 >> uint(l-1))
		total := int64(0)
		nw, err := w.Write([]byte{tag})
		total += int64(nw)
		if err != nil {
			return total, errors.New(uint16(Corrupt), "writing BigInt tag", err)
		}
		nw, err = w.Write(payload)
		total += int64(nw)
		if err != nil {
			return total, errors.New(uint16(Corrupt), "writing BigInt payload", err)
		}
		return total, nil
	}

	total := int64(0)
	nw, err := w.Write([]byte{escapeTag})
	total += int64(nw)
	if err != nil {
		return total, errors.New(uint16(Corrupt), "writing BigInt escape tag", err)
	}
	nl, err := New(uint64(l)).Write(w)
	total += nl
	if err != nil {
		return total, err
	}
	nw, err = w.Write(payload)
	total += int64(nw)
	if err != nil {
		return total, errors.New(uint16(Corrupt), "writing BigInt payload", err)
	}
	return total, nil
}

// Read decodes a Num from r in the format Write produces, and returns the
// number of bytes consumed.
func Read(r io.Reader) (Num, int64, error) {
	var tagBuf [1]byte
	if _, err := io.ReadFull(r, tagBuf[:]); err != nil {
		return Num{}, 0, errors.New(uint16(Corrupt), "reading BigInt tag", err)
	}
	tag := tagBuf[0]

	if tag == zeroTag {
		var pb [1]byte
		if _, err := io.ReadFull(r, pb[:]); err != nil {
			return Num{}, 1, errors.New(uint16(Corrupt), "reading BigInt zero payload", err)
		}
		if pb[0] != 0x00 {
			return Num{}, 2, errors.New(uint16(Corrupt), "zero BigInt tag followed by non-zero payload byte")
		}
		return Zero(), 2, nil
	}

	if tag == escapeTag {
		lenNum, nl, err := Read(r)
		if err != nil {
			return Num{}, 1 + nl, err
		}
		l64, overflow := lenNum.Uint64()
		if overflow || l64 == 0 {
			return Num{}, 1 + nl, errors.New(uint16(Corrupt), "BigInt escaped length out of range")
		}
		payload := make([]byte, l64)
		if _, err = io.ReadFull(r, payload); err != nil {
			return Num{}, 1 + nl + int64(l64), errors.New(uint16(Corrupt), "reading BigInt escaped payload", err)
		}
		if payload[0] == 0x00 {
			return Num{}, 1 + nl + int64(l64), errors.New(uint16(Corrupt), "BigInt payload is not in canonical form")
		}
		return clone(new(big.Int).SetBytes(payload)), 1 + nl + int64(l64), nil
	}

	var ones int
	var l int
	for bit := 0; bit < 8; bit++ {
		if tag&(1<<uint(bit)) != 0 {
			ones++
			l = 8 - bit
		}
	}
	if ones != 1 || l < 1 || l > maxDirectLen {
		return Num{}, 1, errors.New(uint16(Corrupt), "malformed BigInt length tag")
	}

	payload := make([]byte, l)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Num{}, 1, errors.New(uint16(Corrupt), "reading BigInt payload", err)
	}
	if payload[0] == 0x00 {
		return Num{}, 1 + int64(l), errors.New(uint16(Corrupt), "BigInt payload is not in canonical form")
	}
	return clone(new(big.Int).SetBytes(payload)), 1 + int64(l), nil
}
