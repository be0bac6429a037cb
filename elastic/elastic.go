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

package elastic

import (
	"encoding/binary"
	"io"

	"github/sabouaram/dargo/errors"
)

// Marker bytes bracketing a framed elastic buffer, and the sentinel used
// for the single-byte variant when there isn't room for the framed form.
const (
	lowMarker    byte = 0xAA
	highMarker   byte = 0x55
	singleMarker byte = 0xFF

	// frameOverhead is low-marker + 4-byte size field + high-marker.
	frameOverhead = 6
)

// WriteForward emits a buffer meant to be read front-to-back: a low
// marker, the total buffer length as 4 little-endian bytes, padLen filler
// bytes drawn from rnd, then a high marker. If padLen is too small to fit
// the framed form, it falls back to the single-byte sentinel.
func WriteForward(w io.Writer, padLen int, rnd io.Reader) (int64, error) {
	if padLen < 0 {
		return 0, errors.New(uint16(Range), "negative padding length")
	}
	if padLen == 0 {
		n, err := w.Write([]byte{singleMarker})
		return int64(n), err
	}
	total := int64(frameOverhead + padLen)
	if total > 1<<32-1 {
		return 0, errors.New(uint16(Range), "padding length exceeds the 4-byte size field")
	}

	buf := make([]byte, frameOverhead+padLen)
	buf[0] = lowMarker
	binary.LittleEndian.PutUint32(buf[1:5], uint32(total))
	if _, err := io.ReadFull(rnd, buf[5:5+padLen]); err != nil {
		return 0, err
	}
	buf[len(buf)-1] = highMarker

	n, err := w.Write(buf)
	return int64(n), err
}

// ReadForward decodes a buffer written by WriteForward (or the
// single-byte sentinel) and returns the padding length it framed.
func ReadForward(r io.Reader) (int, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, errors.New(uint16(Corrupt), "reading elastic buffer marker", err)
	}
	if tag[0] == singleMarker {
		return 0, nil
	}
	if tag[0] != lowMarker {
		return 0, errors.New(uint16(Corrupt), "unexpected elastic buffer marker")
	}

	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return 0, errors.New(uint16(Corrupt), "reading elastic buffer size field", err)
	}
	total := binary.LittleEndian.Uint32(sizeBuf[:])
	if int64(total) < frameOverhead {
		return 0, errors.New(uint16(Corrupt), "elastic buffer size field smaller than its own frame")
	}
	padLen := int(total) - frameOverhead

	pad := make([]byte, padLen)
	if _, err := io.ReadFull(r, pad); err != nil {
		return 0, errors.New(uint16(Corrupt), "reading elastic buffer padding", err)
	}

	var hi [1]byte
	if _, err := io.ReadFull(r, hi[:]); err != nil {
		return 0, errors.New(uint16(Corrupt), "reading elastic buffer high marker", err)
	}
	if hi[0] != highMarker {
		return 0, errors.New(uint16(Corrupt), "elastic buffer missing its high marker")
	}
	return padLen, nil
}

// WriteBackward emits a buffer meant to be read back-to-front, starting
// from a cursor positioned just past the end of the buffer: a low marker,
// padLen filler bytes, the total length as 4 big-endian bytes, then a
// high marker. Placing the size field immediately before the high marker
// lets a backward reader find it without needing to locate the low
// marker first.
func WriteBackward(w io.Writer, padLen int, rnd io.Reader) (int64, error) {
	if padLen < 0 {
		return 0, errors.New(uint16(Range), "negative padding length")
	}
	if padLen == 0 {
		n, err := w.Write([]byte{singleMarker})
		return int64(n), err
	}
	total := int64(frameOverhead + padLen)
	if total > 1<<32-1 {
		return 0, errors.New(uint16(Range), "padding length exceeds the 4-byte size field")
	}

	buf := make([]byte, frameOverhead+padLen)
	buf[0] = lowMarker
	if _, err := io.ReadFull(rnd, buf[1:1+padLen]); err != nil {
		return 0, err
	}
	binary.BigEndian.PutUint32(buf[1+padLen:5+padLen], uint32(total))
	buf[len(buf)-1] = highMarker

	n, err := w.Write(buf)
	return int64(n), err
}

// ReadBackward decodes a buffer written by WriteBackward from tail, the
// bytes that end just past its high marker, in their on-disk order (the
// caller reads them itself, for example after a backward Skip). tail
// holds either exactly the single-byte sentinel or at least the last
// frameOverhead bytes of the buffer, high marker last.
func ReadBackward(tail []byte) (padLen int, totalLen int, err error) {
	if len(tail) < 1 {
		return 0, 0, errors.New(uint16(Corrupt), "empty elastic buffer tail")
	}
	if tail[len(tail)-1] == singleMarker && len(tail) == 1 {
		return 0, 1, nil
	}
	if len(tail) < frameOverhead {
		return 0, 0, errors.New(uint16(Corrupt), "elastic buffer tail shorter than a frame")
	}
	if tail[len(tail)-1] != highMarker {
		return 0, 0, errors.New(uint16(Corrupt), "elastic buffer missing its high marker")
	}
	sizeBuf := tail[len(tail)-5 : len(tail)-1]
	total := binary.BigEndian.Uint32(sizeBuf)
	if int64(total) < frameOverhead {
		return 0, 0, errors.New(uint16(Corrupt), "elastic buffer size field smaller than its own frame")
	}
	return int(total) - frameOverhead, int(total), nil
}
