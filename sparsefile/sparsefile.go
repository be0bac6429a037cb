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

package sparsefile

import (
	"bytes"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/escape"
	"github/sabouaram/dargo/stream"
)

// Writer detects runs of zero bytes of at least MinHoleSize and replaces
// them with a MarkFile mark followed by a BigInt hole length; shorter
// runs are written literally.
type Writer struct {
	stream.Base
	esc     *escape.Escape
	minHole int64
	zeroRun int64
}

// NewWriter wraps esc, which must be in WriteOnly mode.
func NewWriter(esc *escape.Escape, minHoleSize int64) *Writer {
	return &Writer{Base: stream.NewBase(stream.WriteOnly), esc: esc, minHole: minHoleSize}
}

func (w *Writer) Write(p []byte) (int, error) {
	if err := w.CheckMode(stream.WriteOnly); err != nil {
		return 0, err
	}
	i := 0
	for i < len(p) {
		if p[i] == 0 {
			j := i
			for j < len(p) && p[j] == 0 {
				j++
			}
			w.zeroRun += int64(j - i)
			i = j
			continue
		}
		if err := w.flushZeroRun(); err != nil {
			return i, err
		}
		j := i
		for j < len(p) && p[j] != 0 {
			j++
		}
		if _, err := w.esc.Write(p[i:j]); err != nil {
			return i, err
		}
		i = j
	}
	return len(p), nil
}

func (w *Writer) flushZeroRun() error {
	if w.zeroRun == 0 {
		return nil
	}
	n := w.zeroRun
	w.zeroRun = 0
	if n < w.minHole {
		_, err := w.esc.Write(make([]byte, n))
		return err
	}
	if err := w.esc.AddMarkAtCurrentPosition(escape.MarkFile); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := bigint.New(uint64(n)).Write(&buf); err != nil {
		return err
	}
	_, err := w.esc.Write(buf.Bytes())
	return err
}

// Terminate flushes any pending zero run (a file may end inside a hole)
// and terminates the underlying escape stream.
func (w *Writer) Terminate() error {
	if !w.MarkTerminated() {
		return nil
	}
	if err := w.flushZeroRun(); err != nil {
		return err
	}
	return w.esc.Terminate()
}

func (w *Writer) SyncWrite() error { return w.esc.SyncWrite() }
func (w *Writer) FlushRead()       {}
func (w *Writer) GetPosition() (int64, error) {
	return w.esc.GetPosition()
}
func (w *Writer) ReadAhead(int64) {}
func (w *Writer) Read([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "sparse file writer does not support read")
}
func (w *Writer) Skip(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "sparse file skip not supported")
}
func (w *Writer) SkipRelative(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "sparse file skip not supported")
}
func (w *Writer) SkipToEOF() error {
	return errors.New(uint16(Unsupported), "sparse file skip not supported")
}
func (w *Writer) Skippable(stream.Direction, int64) bool { return false }
func (w *Writer) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "sparse file does not support truncate")
}

// Reader synthesizes zero bytes for holes recorded by Writer. Skip is
// unsupported: locating an arbitrary position inside or past a
// synthesized hole would require an index this format does not keep.
// Reads always materialize hole bytes into the destination buffer
// (equivalent to the "copy_to_without_skip" mode); there is no
// destination-side-skip fast path.
type Reader struct {
	stream.Base
	esc           *escape.Escape
	holeRemaining int64
}

// NewReader wraps esc, which must be in ReadOnly mode.
func NewReader(esc *escape.Escape) *Reader {
	return &Reader{Base: stream.NewBase(stream.ReadOnly), esc: esc}
}

func (r *Reader) Read(p []byte) (int, error) {
	if err := r.CheckMode(stream.ReadOnly); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if r.holeRemaining > 0 {
		n := int64(len(p))
		if n > r.holeRemaining {
			n = r.holeRemaining
		}
		for i := int64(0); i < n; i++ {
			p[i] = 0
		}
		r.holeRemaining -= n
		return int(n), nil
	}

	isMark, err := r.esc.NextToReadIsMark(escape.MarkFile)
	if err != nil {
		return 0, err
	}
	if !isMark {
		return r.esc.Read(p)
	}
	if _, err := r.esc.SkipToNextMark(escape.MarkFile, true); err != nil {
		return 0, err
	}
	holeLen, _, err := bigint.Read(r.esc)
	if err != nil {
		return 0, errors.New(uint16(Corrupt), "sparse file: malformed hole length after mark")
	}
	n, overflow := holeLen.Uint64()
	if overflow {
		return 0, errors.New(uint16(Corrupt), "sparse file: hole length exceeds representable size")
	}
	r.holeRemaining = int64(n)
	return r.Read(p)
}

func (r *Reader) Write([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "sparse file reader does not support write")
}
func (r *Reader) Skip(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "skip across a sparse file is not supported")
}
func (r *Reader) SkipRelative(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "skip across a sparse file is not supported")
}
func (r *Reader) SkipToEOF() error {
	return errors.New(uint16(Unsupported), "skip across a sparse file is not supported")
}
func (r *Reader) Skippable(stream.Direction, int64) bool { return false }
func (r *Reader) GetPosition() (int64, error) {
	return r.esc.GetPosition()
}
func (r *Reader) ReadAhead(int64) {}
func (r *Reader) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "sparse file does not support truncate")
}
func (r *Reader) SyncWrite() error { return nil }
func (r *Reader) FlushRead()       { r.holeRemaining = 0 }
func (r *Reader) Terminate() error {
	if !r.MarkTerminated() {
		return nil
	}
	return r.esc.Terminate()
}
