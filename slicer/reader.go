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

import (
	"io"
	"regexp"
	"strconv"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// Reader is a read-only Stream materializing a logical archive view over
// a Config's numbered slice files, opening and switching slices
// transparently as the logical cursor crosses their boundaries.
type Reader struct {
	stream.Base
	cfg        Config
	pool       *fdPool
	headerSize int64
	cur        *stream.File
	curSlice   uint64
	pos        int64
}

// NewReader opens slice 1, validates its header against cfg, and returns
// a Reader positioned at the start of the logical payload.
func NewReader(cfg Config) (*Reader, error) {
	if cfg.FirstSize <= 0 || cfg.OtherSize <= 0 || cfg.MinDigits < 1 {
		return nil, errors.New(uint16(Range), "slicer: NewReader requires positive sizes and min-digits >= 1")
	}
	r := &Reader{Base: stream.NewBase(stream.ReadOnly), cfg: cfg, pool: newFDPool(4)}
	if err := r.switchSlice(1); err != nil {
		return nil, err
	}
	return r, nil
}

// openSlice opens (or reuses from the pool) slice n.
func (r *Reader) openSlice(n uint64) (*stream.File, error) {
	if f, ok := r.pool.get(n); ok {
		return f, nil
	}
	name, ok := probeSliceName(r.cfg.Basename, r.cfg.Ext, n, r.cfg.MinDigits)
	if !ok {
		return nil, errors.Newf(uint16(SliceMissing), "slicer: slice %d missing from the sequence", n)
	}
	f, err := stream.OpenFile(name, stream.ReadOnly)
	if err != nil {
		return nil, errors.New(uint16(SliceMissing), "slicer: opening "+name, err)
	}
	r.pool.put(n, f)
	return f, nil
}

// missingSliceNumber matches the slice number out of the message
// errors.Newf formats in openSlice, letting a caller recover exactly
// which slice to restore without this package exposing a bespoke
// structured error type.
var missingSliceNumber = regexp.MustCompile(`slice (\d+) missing from the sequence`)

// MissingSlice extracts the slice number from a SliceMissing error
// produced by this package, if any.
func MissingSlice(err error) (uint64, bool) {
	if !errors.IsKind(err, errors.KindSliceMissing) {
		return 0, false
	}
	m := missingSliceNumber.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	n, parseErr := strconv.ParseUint(m[1], 10, 64)
	if parseErr != nil {
		return 0, false
	}
	return n, true
}

// switchSlice closes the current slice handle (returning it to the pool
// rather than closing it outright) and opens slice n, validating its
// header and leaving the cursor just past it.
func (r *Reader) switchSlice(n uint64) error {
	f, err := r.openSlice(n)
	if err != nil {
		return err
	}
	if _, err := f.Skip(0); err != nil {
		return err
	}
	hdr, hn, err := ReadHeader(f)
	if err != nil {
		return err
	}
	if !r.cfg.DataName.IsEmpty() && !hdr.DataName.Equal(r.cfg.DataName) {
		return errors.New(uint16(CorruptArchive), "slicer: data_name mismatch on slice")
	}
	if hdr.SliceNum != n {
		return errors.New(uint16(CorruptArchive), "slicer: unexpected slice number in header")
	}
	if n == 1 && !hdr.IsFirst {
		return errors.New(uint16(CorruptArchive), "slicer: slice 1 missing its is_first_slice flag")
	}
	if _, err := f.Skip(hn); err != nil {
		return err
	}
	r.headerSize = hn
	r.cur = f
	r.curSlice = n
	return nil
}

// capacity returns the payload capacity of slice n, given the header
// size learned from slice 1 (assumed constant, see DESIGN.md).
func (r *Reader) capacity(n uint64) int64 {
	size := r.cfg.OtherSize
	if n == 1 {
		size = r.cfg.FirstSize
	}
	return size - r.headerSize
}

// locate maps an absolute logical payload offset to a (slice, intra)
// pair using the configured first/other sizes.
func (r *Reader) locate(pos int64) (uint64, int64) {
	first := r.capacity(1)
	if pos < first {
		return 1, pos
	}
	pos -= first
	other := r.capacity(2)
	idx := pos / other
	return 2 + uint64(idx), pos % other
}

// Read fills p from the logical payload, switching slices transparently
// at boundaries.
func (r *Reader) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		slice, intra := r.locate(r.pos)
		if slice != r.curSlice {
			if err := r.switchSlice(slice); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
		}
		room := r.capacity(slice) - intra
		if room <= 0 {
			if err := r.switchSlice(slice + 1); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
			continue
		}
		toRead := int64(len(p) - total)
		if toRead > room {
			toRead = room
		}
		n, err := r.cur.Read(p[total : total+int(toRead)])
		total += n
		r.pos += int64(n)
		if err == io.EOF {
			if int64(n) < toRead {
				if _, more := probeSliceName(r.cfg.Basename, r.cfg.Ext, slice+1, r.cfg.MinDigits); !more {
					if total > 0 {
						return total, nil
					}
					return 0, io.EOF
				}
				return total, errors.New(uint16(CorruptArchive), "slicer: slice ended before its configured capacity")
			}
			continue
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Reader) Write([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "slicer: Reader is read-only")
}

func (r *Reader) Skip(pos int64) (bool, error) {
	if pos < 0 {
		pos = 0
	}
	slice, intra := r.locate(pos)
	if slice != r.curSlice {
		if err := r.switchSlice(slice); err != nil {
			return false, err
		}
	}
	if _, err := r.cur.Skip(r.headerSize + intra); err != nil {
		return false, err
	}
	r.pos = pos
	return true, nil
}

func (r *Reader) SkipRelative(delta int64) (bool, error) {
	return r.Skip(r.pos + delta)
}

// SkipToEOF finds the last existing slice and positions the cursor just
// past its last byte.
func (r *Reader) SkipToEOF() error {
	last := r.curSlice
	for {
		if _, ok := probeSliceName(r.cfg.Basename, r.cfg.Ext, last+1, r.cfg.MinDigits); !ok {
			break
		}
		last++
	}
	if last != r.curSlice {
		if err := r.switchSlice(last); err != nil {
			return err
		}
	}
	if err := r.cur.SkipToEOF(); err != nil {
		return err
	}
	end, err := r.cur.GetPosition()
	if err != nil {
		return err
	}
	r.pos = r.posForSliceEnd(last, end)
	return nil
}

// posForSliceEnd converts an absolute file offset within slice n back
// into the logical payload position.
func (r *Reader) posForSliceEnd(n uint64, fileEnd int64) int64 {
	payload := fileEnd - r.headerSize
	if n == 1 {
		return payload
	}
	return r.capacity(1) + int64(n-2)*r.capacity(2) + payload
}

func (r *Reader) Skippable(dir stream.Direction, _ int64) bool {
	return !r.Terminated()
}

func (r *Reader) GetPosition() (int64, error) {
	return r.pos, nil
}

func (r *Reader) ReadAhead(int64) {}

func (r *Reader) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "slicer: Reader does not support truncate")
}

func (r *Reader) SyncWrite() error { return nil }

func (r *Reader) FlushRead() {}

// Terminate closes every pooled slice handle.
func (r *Reader) Terminate() error {
	if !r.MarkTerminated() {
		return nil
	}
	r.pool.closeAll()
	return nil
}
