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

package escape

import (
	"io"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// magic is the 8-byte sequence that opens every mark. Raw data containing
// magic[0] is escaped by doubling that byte; a lone, undoubled magic[0]
// always opens either a full mark or a corrupt stream.
var magic = [8]byte{0xB5, 0x6D, 0x2C, 0x91, 0x4F, 0xE8, 0x3A, 0x77}

// Mark discriminates the kind of mark found after the magic.
type Mark byte

const (
	MarkFile Mark = iota + 1
	MarkCatalogue
	MarkData
)

// jumpableMarks records which mark types a plain forward Skip halts at.
// Unjumpable marks are transparent to Skip and to a SkipToNextMark scan
// for a different mark type; both simply pass over them.
var jumpableMarks = map[Mark]bool{
	MarkFile: true,
}

// Jumpable reports whether m is a jumpable mark.
func Jumpable(m Mark) bool {
	return jumpableMarks[m]
}

// Escape wraps an underlying Stream, encoding/decoding the magic-escape
// framing on Write/Read and exposing mark-aware navigation on top.
type Escape struct {
	stream.Base
	under stream.Stream

	// read side
	inBuf       []byte
	inPos       int
	decoded     []byte
	pendingMark *Mark
	eof         bool

	pos int64
}

// New wraps under, which must already be positioned at the start of the
// region to encode or decode.
func New(under stream.Stream, mode stream.Mode) *Escape {
	return &Escape{Base: stream.NewBase(mode), under: under}
}

func (e *Escape) readRawByte() (byte, error) {
	for e.inPos >= len(e.inBuf) {
		if e.eof {
			return 0, io.EOF
		}
		buf := make([]byte, 4096)
		n, err := e.under.Read(buf)
		if n > 0 {
			e.inBuf = buf[:n]
			e.inPos = 0
		}
		if err == io.EOF {
			e.eof = true
		} else if err != nil {
			return 0, err
		}
		if n == 0 && e.eof {
			return 0, io.EOF
		}
	}
	b := e.inBuf[e.inPos]
	e.inPos++
	return b, nil
}

// fill ensures either e.decoded has at least one byte or e.pendingMark is
// set, unless the underlying stream is genuinely exhausted.
func (e *Escape) fill() error {
	if len(e.decoded) > 0 || e.pendingMark != nil {
		return nil
	}
	b, err := e.readRawByte()
	if err != nil {
		return err
	}
	if b != magic[0] {
		e.decoded = append(e.decoded, b)
		return nil
	}
	b2, err := e.readRawByte()
	if err != nil {
		return errors.New(uint16(Corrupt), "escape magic truncated at end of stream")
	}
	if b2 == magic[0] {
		e.decoded = append(e.decoded, magic[0])
		return nil
	}
	if b2 != magic[1] {
		return errors.New(uint16(Corrupt), "escape magic byte not followed by escape or magic continuation")
	}
	for i := 2; i < len(magic); i++ {
		c, err := e.readRawByte()
		if err != nil {
			return errors.New(uint16(Corrupt), "escape magic truncated before discriminant")
		}
		if c != magic[i] {
			return errors.New(uint16(Corrupt), "escape magic continuation mismatch")
		}
	}
	disc, err := e.readRawByte()
	if err != nil {
		return errors.New(uint16(Corrupt), "escape mark truncated before discriminant byte")
	}
	m := Mark(disc)
	e.pendingMark = &m
	return nil
}

// Read decodes raw data into p. It returns (0, nil), without error, when
// the next bytes to decode are a mark: call NextToReadIsMark or
// SkipToNextMark to consume it before reading on.
func (e *Escape) Read(p []byte) (int, error) {
	if err := e.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := e.fill(); err != nil {
		return 0, err
	}
	if e.pendingMark != nil {
		return 0, nil
	}
	n := copy(p, e.decoded)
	e.decoded = e.decoded[n:]
	e.pos += int64(n)
	e.UpdateCRC(e.pos-int64(n), p[:n])
	return n, nil
}

// Write encodes p, doubling every occurrence of magic[0], into the
// underlying stream.
func (e *Escape) Write(p []byte) (int, error) {
	if err := e.CheckMode(stream.WriteOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	out := make([]byte, 0, len(p))
	for _, b := range p {
		out = append(out, b)
		if b == magic[0] {
			out = append(out, magic[0])
		}
	}
	if _, err := e.under.Write(out); err != nil {
		return 0, err
	}
	e.UpdateCRC(e.pos, p)
	e.pos += int64(len(p))
	return len(p), nil
}

// AddMarkAtCurrentPosition writes a mark of type t at the current write
// position, unescaped.
func (e *Escape) AddMarkAtCurrentPosition(t Mark) error {
	if err := e.CheckMode(stream.WriteOnly, stream.ReadWrite); err != nil {
		return err
	}
	buf := append(append([]byte{}, magic[:]...), byte(t))
	_, err := e.under.Write(buf)
	return err
}

// NextToReadIsMark peeks whether the next thing to decode is a mark of
// type t, without consuming it.
func (e *Escape) NextToReadIsMark(t Mark) (bool, error) {
	if err := e.fill(); err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return e.pendingMark != nil && *e.pendingMark == t, nil
}

// SkipToNextMark scans forward for the next mark of type t, silently
// passing over any data and any mark of a different type. If jump is
// false the stream is left positioned immediately before the mark (a
// later NextToReadIsMark/SkipToNextMark call will see it again); if jump
// is true, the mark is consumed. It returns false, nil if the underlying
// stream is exhausted before t is found.
func (e *Escape) SkipToNextMark(t Mark, jump bool) (bool, error) {
	if err := e.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return false, err
	}
	for {
		if err := e.fill(); err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		if e.pendingMark != nil {
			if *e.pendingMark == t {
				if jump {
					e.pendingMark = nil
				}
				return true, nil
			}
			e.pendingMark = nil
			continue
		}
		e.decoded = nil
	}
}

func (e *Escape) Skip(pos int64) (bool, error) {
	if pos < e.pos {
		return false, errors.New(uint16(Unsupported), "escape stream cannot skip backward")
	}
	for e.pos < pos {
		if err := e.fill(); err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		if e.pendingMark != nil {
			if Jumpable(*e.pendingMark) {
				return false, nil
			}
			e.pendingMark = nil
			continue
		}
		want := pos - e.pos
		if want > int64(len(e.decoded)) {
			want = int64(len(e.decoded))
		}
		e.decoded = e.decoded[want:]
		e.pos += want
	}
	return true, nil
}

func (e *Escape) SkipRelative(delta int64) (bool, error) {
	return e.Skip(e.pos + delta)
}

func (e *Escape) SkipToEOF() error {
	for {
		if err := e.fill(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if e.pendingMark != nil {
			e.pendingMark = nil
			continue
		}
		e.pos += int64(len(e.decoded))
		e.decoded = nil
	}
}

func (e *Escape) Skippable(dir stream.Direction, _ int64) bool {
	return dir == stream.Forward && !e.Terminated()
}

func (e *Escape) GetPosition() (int64, error) {
	return e.pos, nil
}

func (e *Escape) ReadAhead(int64) {}

func (e *Escape) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "escape stream does not support truncate")
}

func (e *Escape) SyncWrite() error {
	return e.under.SyncWrite()
}

func (e *Escape) FlushRead() {
	e.decoded = nil
	e.pendingMark = nil
}

func (e *Escape) Terminate() error {
	if !e.MarkTerminated() {
		return nil
	}
	return e.under.Terminate()
}
