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
	"context"

	"github/sabouaram/dargo/errors"
)

// Segment is one crypto/compression work unit passed between a
// partronco/blockcompress below-thread and its workers: a clear buffer, a
// cipher (or compressed) buffer, and the block number it was last filled
// for. Segments are reused across blocks instead of being reallocated, so
// a long-running parallel pipeline does not churn the garbage collector.
type Segment struct {
	Clear    []byte
	Cipher   []byte
	BlockNum uint64
}

// Heap is a bounded set of pre-allocated Segments. Workers Acquire a
// segment, fill it, hand it downstream, and Release it back once the
// downstream consumer is done with its contents. The heap never grows
// past its initial size: Acquire blocks (or respects ctx) when every
// segment is checked out, which is what bounds memory use in the
// parallel pipelines regardless of how far a fast producer gets ahead of
// a slow consumer.
type Heap struct {
	free chan *Segment
}

// NewHeap pre-allocates size Segments, each with a clear buffer of
// clearCap bytes and a cipher buffer of cipherCap bytes, and returns a
// Heap holding them all as immediately available.
func NewHeap(size, clearCap, cipherCap int) (*Heap, error) {
	if size <= 0 || clearCap <= 0 || cipherCap <= 0 {
		return nil, errors.New(uint16(Range), "pool: NewHeap requires positive size and capacities")
	}
	h := &Heap{free: make(chan *Segment, size)}
	for i := 0; i < size; i++ {
		h.free <- &Segment{
			Clear:  make([]byte, clearCap),
			Cipher: make([]byte, cipherCap),
		}
	}
	return h, nil
}

// Acquire checks out one segment, blocking until one is released or ctx
// is done.
func (h *Heap) Acquire(ctx context.Context) (*Segment, error) {
	select {
	case s := <-h.free:
		return s, nil
	case <-ctx.Done():
		return nil, errors.New(uint16(Timeout), "pool: Acquire", ctx.Err())
	}
}

// Release returns s to the heap for reuse. s must have come from this
// Heap's Acquire. Releasing an unrelated segment blocks forever when every
// segment is already checked in, and otherwise puts the foreign segment
// into circulation.
func (h *Heap) Release(s *Segment) {
	h.free <- s
}

// Cap reports how many segments this heap was constructed with.
func (h *Heap) Cap() int {
	return cap(h.free)
}
