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

	"github/sabouaram/dargo/errors"
)

// Mem is a Stream backed entirely by an in-memory byte slice: the
// reference ReadWrite implementation every other package's tests build
// on top of instead of touching a real file.
type Mem struct {
	Base
	buf []byte
	pos int64
}

// NewMem returns an empty read-write in-memory Stream.
func NewMem() *Mem {
	return &Mem{Base: NewBase(ReadWrite)}
}

// NewMemFrom returns a read-write in-memory Stream preloaded with data.
// The slice is copied; later writes to the Mem do not alias the caller's
// slice.
func NewMemFrom(data []byte) *Mem {
	return &Mem{Base: NewBase(ReadWrite), buf: append([]byte(nil), data...)}
}

func (m *Mem) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.UpdateCRC(m.pos, p[:n])
	m.pos += int64(n)
	return n, nil
}

func (m *Mem) Write(p []byte) (int, error) {
	if err := m.CheckMode(WriteOnly, ReadWrite); err != nil {
		return 0, err
	}
	needed := m.pos + int64(len(p))
	if needed > int64(len(m.buf)) {
		grown := make([]byte, needed)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:], p)
	m.UpdateCRC(m.pos, p[:n])
	m.pos += int64(n)
	return n, nil
}

func (m *Mem) Skip(pos int64) (bool, error) {
	if pos < 0 {
		m.pos = 0
		return false, nil
	}
	if pos > int64(len(m.buf)) {
		m.pos = int64(len(m.buf))
		return false, nil
	}
	m.pos = pos
	return true, nil
}

func (m *Mem) SkipRelative(delta int64) (bool, error) {
	p, err := m.GetPosition()
	if err != nil {
		return false, err
	}
	return m.Skip(p + delta)
}

func (m *Mem) SkipToEOF() error {
	m.pos = int64(len(m.buf))
	return nil
}

func (m *Mem) Skippable(_ Direction, _ int64) bool {
	return !m.Terminated()
}

func (m *Mem) GetPosition() (int64, error) {
	return m.pos, nil
}

func (m *Mem) ReadAhead(int64) {}

func (m *Mem) Truncate(pos int64) error {
	if pos < 0 || pos > int64(len(m.buf)) {
		return errors.New(uint16(WrongMode), "truncate position out of range")
	}
	m.buf = m.buf[:pos]
	if m.pos > pos {
		m.pos = pos
	}
	return nil
}

func (m *Mem) SyncWrite() error {
	return nil
}

func (m *Mem) FlushRead() {}

func (m *Mem) Terminate() error {
	m.MarkTerminated()
	return nil
}

// Bytes returns a copy of the stream's full backing buffer, regardless of
// the current cursor position.
func (m *Mem) Bytes() []byte {
	return append([]byte(nil), m.buf...)
}
