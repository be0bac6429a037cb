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

package pool

import (
	"sync"

	"github/sabouaram/dargo/errors"
)

// Message is what flows through a Ratelier between a below-thread, its
// workers, and the main thread driving the public Stream interface. Val
// carries the actual payload (typically a *Segment); Status flags the
// control meaning of the message when it isn't ordinary data.
type Message struct {
	Seq    uint64
	Val    any
	Status Status
}

// Status tags the control meaning of a Message riding through a
// Ratelier.
type Status uint8

const (
	Normal Status = iota
	Stop
	EOF
	Die
	DataError
	ExceptionBelow
	ExceptionWorker
	ExceptionError
)

func (s Status) String() string {
	switch s {
	case Stop:
		return "stop"
	case EOF:
		return "eof"
	case Die:
		return "die"
	case DataError:
		return "data-error"
	case ExceptionBelow:
		return "exception-below"
	case ExceptionWorker:
		return "exception-worker"
	case ExceptionError:
		return "exception-error"
	default:
		return "normal"
	}
}

// Ratelier is an order-preserving indexed handoff queue: producers may
// Put messages in any order (workers finish out of turn), but Get always
// returns them in strictly increasing Seq order, starting from 0. A
// producer that is too far ahead of the next expected Seq blocks until
// consumption catches up, which is what bounds a Ratelier's memory use to
// its capacity regardless of how unevenly the workers feeding it finish.
type Ratelier struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	capacity int
	pending  map[uint64]Message
	next     uint64
	closed   bool
}

// NewRatelier returns a Ratelier that holds at most capacity
// out-of-order messages ahead of the next one Get is waiting for.
func NewRatelier(capacity int) (*Ratelier, error) {
	if capacity <= 0 {
		return nil, errors.New(uint16(Range), "pool: NewRatelier requires a positive capacity")
	}
	r := &Ratelier{capacity: capacity, pending: make(map[uint64]Message)}
	r.notEmpty = sync.NewCond(&r.mu)
	r.notFull = sync.NewCond(&r.mu)
	return r, nil
}

// Put inserts msg keyed by msg.Seq, blocking while msg.Seq is capacity or
// more past the next Seq that Get expects. It returns Closed if the
// ratelier was closed while waiting or before the call.
func (r *Ratelier) Put(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for !r.closed && msg.Seq >= r.next+uint64(r.capacity) {
		r.notFull.Wait()
	}
	if r.closed {
		return errors.New(uint16(Closed), "pool: Put on a closed ratelier")
	}
	r.pending[msg.Seq] = msg
	r.notEmpty.Broadcast()
	return nil
}

// Get blocks until the message with Seq equal to the next expected
// sequence number is available, then returns it and advances the
// expectation by one. ok is false once the ratelier is closed and fully
// drained.
func (r *Ratelier) Get() (msg Message, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		if m, present := r.pending[r.next]; present {
			delete(r.pending, r.next)
			r.next++
			r.notFull.Broadcast()
			return m, true
		}
		if r.closed {
			return Message{}, false
		}
		r.notEmpty.Wait()
	}
}

// Close unblocks every pending and future Put/Get. Get still returns
// buffered messages in Seq order until the next expected one is missing;
// messages buffered beyond that gap are never returned.
func (r *Ratelier) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.notEmpty.Broadcast()
	r.notFull.Broadcast()
}

// Reset reopens a closed ratelier at sequence number zero, for reuse
// after a skip has drained and restarted the pipeline.
func (r *Ratelier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = false
	r.next = 0
	r.pending = make(map[uint64]Message)
}
