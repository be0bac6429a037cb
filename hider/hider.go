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

package hider

import (
	"io"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// Segment is one "morceau": a contiguous byte range of the underlying
// stream, projected into the logical stream in the order given.
type Segment struct {
	Start  int64
	Length int64
}

// Hider is a read-only Stream exposing only the given segments of under,
// concatenated, as a contiguous logical stream.
type Hider struct {
	stream.Base
	under    stream.Stream
	segs     []Segment
	logStart []int64 // logical offset each segment begins at
	logLen   int64
	pos      int64
}

// New builds a Hider over under that exposes exactly the byte ranges in
// segs, in order, as one contiguous logical stream.
func New(under stream.Stream, segs []Segment) *Hider {
	h := &Hider{Base: stream.NewBase(stream.ReadOnly), under: under, segs: segs}
	h.logStart = make([]int64, len(segs))
	var off int64
	for i, s := range segs {
		h.logStart[i] = off
		off += s.Length
	}
	h.logLen = off
	return h
}

// locate returns the index of the segment containing logical position p,
// and how far into that segment p falls. It returns ok=false at or past
// the logical end.
func (h *Hider) locate(p int64) (idx int, within int64, ok bool) {
	if p < 0 || p >= h.logLen {
		return 0, 0, false
	}
	for i := len(h.segs) - 1; i >= 0; i-- {
		if p >= h.logStart[i] {
			return i, p - h.logStart[i], true
		}
	}
	return 0, 0, false
}

func (h *Hider) Read(p []byte) (int, error) {
	if h.pos >= h.logLen {
		return 0, io.EOF
	}
	idx, within, ok := h.locate(h.pos)
	if !ok {
		return 0, io.EOF
	}
	seg := h.segs[idx]
	if _, err := h.under.Skip(seg.Start + within); err != nil {
		return 0, err
	}
	want := int64(len(p))
	remaining := seg.Length - within
	if want > remaining {
		want = remaining
	}
	n, err := h.under.Read(p[:want])
	h.pos += int64(n)
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, nil
}

func (h *Hider) Write([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "hider is read-only")
}

func (h *Hider) Skip(pos int64) (bool, error) {
	if pos < 0 {
		h.pos = 0
		return false, nil
	}
	if pos > h.logLen {
		h.pos = h.logLen
		return false, nil
	}
	h.pos = pos
	return true, nil
}

func (h *Hider) SkipRelative(delta int64) (bool, error) {
	return h.Skip(h.pos + delta)
}

func (h *Hider) SkipToEOF() error {
	h.pos = h.logLen
	return nil
}

func (h *Hider) Skippable(_ stream.Direction, _ int64) bool {
	return !h.Terminated()
}

func (h *Hider) GetPosition() (int64, error) {
	return h.pos, nil
}

func (h *Hider) ReadAhead(int64) {}

func (h *Hider) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "hider is read-only")
}

func (h *Hider) SyncWrite() error {
	return nil
}

func (h *Hider) FlushRead() {}

func (h *Hider) Terminate() error {
	h.MarkTerminated()
	return nil
}

// Len returns the total logical length projected by h.
func (h *Hider) Len() int64 {
	return h.logLen
}
