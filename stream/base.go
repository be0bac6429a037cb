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

package stream

import (
	"io"

	"github/sabouaram/dargo/crc"
	"github/sabouaram/dargo/errors"
)

// Base holds the plumbing every concrete Stream implementation shares:
// its fixed mode, idempotent-terminate bookkeeping, and the optional
// running CRC. Embed it and call UpdateCRC from Read/Write, and
// Terminated/MarkTerminated from Terminate.
type Base struct {
	mode   Mode
	done   bool
	crcOn  bool
	crcVal crc.CRC
}

// NewBase returns a Base fixed at the given mode.
func NewBase(mode Mode) Base {
	return Base{mode: mode}
}

// Mode reports the stream's fixed access mode.
func (b *Base) Mode() Mode {
	return b.mode
}

// CheckMode returns WrongMode unless the base's mode is one of allowed.
func (b *Base) CheckMode(allowed ...Mode) error {
	for _, m := range allowed {
		if b.mode == m {
			return nil
		}
	}
	return errors.New(uint16(WrongMode), "operation not valid for this stream's mode")
}

// Terminated reports whether MarkTerminated has already run.
func (b *Base) Terminated() bool {
	return b.done
}

// MarkTerminated records that Terminate ran, and reports via the bool
// whether this is the first call (false on the second and later calls, so
// the caller's Terminate can no-op instead of re-running its flush).
func (b *Base) MarkTerminated() (first bool) {
	if b.done {
		return false
	}
	b.done = true
	return true
}

// ResetCRC starts CRC accumulation at width.
func (b *Base) ResetCRC(width int) error {
	c, err := crc.New(width)
	if err != nil {
		return err
	}
	b.crcVal = c
	b.crcOn = true
	return nil
}

// GetCRC returns the accumulated CRC and disables further accumulation.
func (b *Base) GetCRC() (crc.CRC, error) {
	if !b.crcOn {
		return crc.CRC{}, errors.New(uint16(NoCRC), "GetCRC called without a matching ResetCRC")
	}
	b.crcOn = false
	return b.crcVal, nil
}

// UpdateCRC feeds buf, read or written at absolute offset, into the
// running CRC if one is active; it is a no-op otherwise.
func (b *Base) UpdateCRC(offset int64, buf []byte) {
	if b.crcOn {
		b.crcVal.Compute(offset, buf)
	}
}

// CopyTo streams all of src into dst, optionally accumulating a CRC of
// width crcWidth (crcWidth == 0 disables it), and returns the number of
// bytes copied and, if requested, the computed CRC.
func CopyTo(dst, src Stream, crcWidth int) (int64, *crc.CRC, error) {
	var (
		out  *crc.CRC
		rcrc crc.CRC
		err  error
	)
	if crcWidth > 0 {
		rcrc, err = crc.New(crcWidth)
		if err != nil {
			return 0, nil, err
		}
	}

	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if crcWidth > 0 {
				rcrc.Compute(total, buf[:n])
			}
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, nil, werr
			}
			total += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return total, nil, rerr
		}
	}
	if crcWidth > 0 {
		out = &rcrc
	}
	return total, out, nil
}

// Diff compares me and you byte for byte, reading ahead by raMe and raYou
// respectively, optionally accumulating a CRC of the common prefix
// (crcWidth == 0 disables it). It returns the offset of the first
// difference (-1 if the streams are identical up to the shorter one's
// length) and the CRC of the bytes compared equal.
func Diff(me, you Stream, raMe, raYou int64, crcWidth int) (diffOffset int64, out *crc.CRC, err error) {
	me.ReadAhead(raMe)
	you.ReadAhead(raYou)

	var rcrc crc.CRC
	if crcWidth > 0 {
		rcrc, err = crc.New(crcWidth)
		if err != nil {
			return -1, nil, err
		}
	}

	bufMe := make([]byte, 64*1024)
	bufYou := make([]byte, 64*1024)
	var offset int64
	for {
		nMe, errMe := me.Read(bufMe)
		nYou, errYou := you.Read(bufYou)
		n := nMe
		if nYou < n {
			n = nYou
		}
		for i := 0; i < n; i++ {
			if bufMe[i] != bufYou[i] {
				if crcWidth > 0 {
					rcrc.Compute(offset, bufMe[:i])
					out = &rcrc
				}
				return offset + int64(i), out, nil
			}
		}
		if crcWidth > 0 {
			rcrc.Compute(offset, bufMe[:n])
		}
		offset += int64(n)

		if nMe != nYou {
			if crcWidth > 0 {
				out = &rcrc
			}
			return offset, out, nil
		}
		if errMe == io.EOF && errYou == io.EOF {
			if crcWidth > 0 {
				out = &rcrc
			}
			return -1, out, nil
		}
		if errMe != nil && errMe != io.EOF {
			return offset, nil, errMe
		}
		if errYou != nil && errYou != io.EOF {
			return offset, nil, errYou
		}
	}
}
