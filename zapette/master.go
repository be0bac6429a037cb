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

package zapette

import (
	"io"
	"sync"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// maxWireChunk is the largest number of bytes a single request can ask
// for: the wire format's size field is a u16.
const maxWireChunk = 1<<16 - 1

// Prompter lets the caller decide whether to retry after a serial-number
// mismatch instead of aborting outright, the one hook this package
// leaves for user interaction. A nil Prompter always aborts on mismatch.
type Prompter interface {
	ContinueOnMismatch(want, got byte) bool
}

// Master is a read-only stream.Stream backed by a request/response round
// trip over two pipes instead of local bytes: every Read becomes one data
// request to a Slave on the other end, plus a one-time FileSize order the
// first time the remote size is needed. Skip and SkipToEOF only move the
// local cursor, using that remote size.
type Master struct {
	stream.Base
	w        io.Writer
	r        io.Reader
	prompter Prompter

	mu     sync.Mutex
	serial byte
	pos    int64

	sizeOnce  sync.Once
	sizeErr   error
	size      int64
	sizeKnown bool
}

// NewMaster wraps the pipe pair (toSlave, fromSlave) as a read-only
// Stream. prompter may be nil, in which case a serial-number mismatch is
// always treated as an abort.
func NewMaster(toSlave io.Writer, fromSlave io.Reader, prompter Prompter) *Master {
	return &Master{Base: stream.NewBase(stream.ReadOnly), w: toSlave, r: fromSlave, prompter: prompter}
}

// roundTrip sends req (stamping it with the next serial number) and
// returns the matching response, retrying the whole request if the
// slave's reply carries an unexpected serial number and the Prompter
// says to continue.
func (m *Master) roundTrip(req request) (response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.Serial = m.serial
	for {
		if err := writeRequest(m.w, req); err != nil {
			return response{}, err
		}
		resp, err := readResponse(m.r)
		if err != nil {
			return response{}, err
		}
		if resp.Serial != req.Serial {
			if m.prompter == nil || !m.prompter.ContinueOnMismatch(req.Serial, resp.Serial) {
				return response{}, errors.New(uint16(UserAbort), "zapette: serial number mismatch")
			}
			continue
		}
		m.serial++
		return resp, nil
	}
}

func (m *Master) order(o Order) (response, error) {
	return m.roundTrip(request{Offset: bigint.New(uint64(o))})
}

func (m *Master) resolveSize() error {
	m.sizeOnce.Do(func() {
		resp, err := m.order(OrderFileSize)
		if err != nil {
			m.sizeErr = err
			return
		}
		if resp.Type != typeInfinint {
			m.sizeErr = errors.New(uint16(Protocol), "zapette: OrderFileSize did not return an INFININT")
			return
		}
		n, overflow := resp.Arg.Uint64()
		if overflow {
			m.sizeErr = errors.New(uint16(Protocol), "zapette: remote file size overflows int64")
			return
		}
		m.size = int64(n)
		m.sizeKnown = true
	})
	return m.sizeErr
}

// FileSize returns the remote archive's total size, fetching it over the
// wire once and caching it thereafter.
func (m *Master) FileSize() (int64, error) {
	if err := m.resolveSize(); err != nil {
		return 0, err
	}
	return m.size, nil
}

// SliceHeaderSize asks the slave for the fixed size of every slice
// header in the remote archive.
func (m *Master) SliceHeaderSize() (int64, error) {
	resp, err := m.order(OrderSliceHeaderSize)
	if err != nil {
		return 0, err
	}
	if resp.Type != typeInfinint {
		return 0, errors.New(uint16(Protocol), "zapette: OrderSliceHeaderSize did not return an INFININT")
	}
	n, overflow := resp.Arg.Uint64()
	if overflow {
		return 0, errors.New(uint16(Protocol), "zapette: slice header size overflows int64")
	}
	return int64(n), nil
}

// DataName asks the slave for the remote archive's 10-byte label.
func (m *Master) DataName() ([10]byte, error) {
	var out [10]byte
	resp, err := m.order(OrderDataName)
	if err != nil {
		return out, err
	}
	if resp.Type != typeData || len(resp.Data) != 10 {
		return out, errors.New(uint16(Protocol), "zapette: OrderDataName did not return 10 bytes")
	}
	copy(out[:], resp.Data)
	return out, nil
}

// SetStatus asks the slave to reset its contextual status, used to clear
// stale progress reporting state between unrelated request bursts.
func (m *Master) SetStatus() error {
	_, err := m.order(OrderSetStatus)
	return err
}

func (m *Master) Read(p []byte) (int, error) {
	if err := m.CheckMode(stream.ReadOnly); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := m.resolveSize(); err == nil && m.pos >= m.size {
		return 0, io.EOF
	}
	want := len(p)
	if want > maxWireChunk {
		want = maxWireChunk
	}
	resp, err := m.roundTrip(request{Offset: bigint.New(uint64(m.pos)), Size: uint16(want)})
	if err != nil {
		return 0, err
	}
	if resp.Type != typeData {
		return 0, errors.New(uint16(Protocol), "zapette: data request did not return DATA")
	}
	n := copy(p, resp.Data)
	m.pos += int64(n)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (m *Master) Write([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "zapette: Master is read-only")
}

func (m *Master) Skip(pos int64) (bool, error) {
	if err := m.resolveSize(); err != nil {
		return false, err
	}
	if pos < 0 {
		pos = 0
	}
	if pos > m.size {
		m.pos = m.size
		return false, nil
	}
	m.pos = pos
	return true, nil
}

func (m *Master) SkipRelative(delta int64) (bool, error) {
	return m.Skip(m.pos + delta)
}

func (m *Master) SkipToEOF() error {
	if err := m.resolveSize(); err != nil {
		return err
	}
	_, err := m.Skip(m.size)
	return err
}

// Skippable reports true in both directions: every request carries an
// explicit offset, so there is no lower-layer sequential-access
// restriction for Master to inherit the way tronco inherits one from its
// underlying stream.
func (m *Master) Skippable(_ stream.Direction, _ int64) bool {
	return !m.Terminated()
}

func (m *Master) GetPosition() (int64, error) {
	return m.pos, nil
}

func (m *Master) ReadAhead(int64) {}

func (m *Master) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "zapette: Master does not support truncate")
}

func (m *Master) SyncWrite() error { return nil }

func (m *Master) FlushRead() {}

// Terminate sends OrderTerminate so the slave can close its archive and
// exit its Serve loop.
func (m *Master) Terminate() error {
	if !m.MarkTerminated() {
		return nil
	}
	_, err := m.order(OrderTerminate)
	return err
}
