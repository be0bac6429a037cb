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

package blockcompress

import (
	"io"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
)

// frameType tags what a frame carries.
type frameType byte

const (
	hData frameType = 1
	hEOF  frameType = 2
)

// maxFramePayload bounds how large a frame's declared length may be
// before it is treated as corruption rather than an honestly huge
// block, guarding against a malformed length driving an unbounded
// allocation.
const maxFramePayload = 256 * 1024 * 1024

// writeFrame writes one frame (type, BigInt length, payload) to w and
// returns the number of bytes written.
func writeFrame(w io.Writer, typ frameType, payload []byte) (int64, error) {
	var n int64
	if _, err := w.Write([]byte{byte(typ)}); err != nil {
		return n, errors.New(uint16(CorruptArchive), "blockcompress: writing frame type", err)
	}
	n++
	ln, err := bigint.New(uint64(len(payload))).Write(w)
	if err != nil {
		return n, errors.New(uint16(CorruptArchive), "blockcompress: writing frame length", err)
	}
	n += ln
	if len(payload) > 0 {
		m, err := w.Write(payload)
		n += int64(m)
		if err != nil {
			return n, errors.New(uint16(CorruptArchive), "blockcompress: writing frame payload", err)
		}
	}
	return n, nil
}

// readFrame reads one frame from r.
func readFrame(r io.Reader) (typ frameType, payload []byte, err error) {
	var tb [1]byte
	if _, err = io.ReadFull(r, tb[:]); err != nil {
		return 0, nil, err
	}
	typ = frameType(tb[0])
	if typ != hData && typ != hEOF {
		return 0, nil, errors.New(uint16(CorruptArchive), "blockcompress: unknown frame type")
	}

	ln, _, err := bigint.Read(r)
	if err != nil {
		return 0, nil, errors.New(uint16(CorruptArchive), "blockcompress: reading frame length", err)
	}
	length, overflow := ln.Uint64()
	if overflow || length > maxFramePayload {
		return 0, nil, errors.New(uint16(CorruptArchive), "blockcompress: frame length exceeds capacity")
	}
	if length == 0 {
		return typ, nil, nil
	}
	payload = make([]byte, length)
	if _, err = io.ReadFull(r, payload); err != nil {
		return 0, nil, errors.New(uint16(CorruptArchive), "blockcompress: short frame payload", err)
	}
	return typ, payload, nil
}
