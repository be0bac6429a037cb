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

package storage

import "github/sabouaram/dargo/errors"

// defaultCellSize caps how large a single cell grows to on a fresh
// allocation; a Storage of size N becomes ceil(N/defaultCellSize) cells.
const defaultCellSize = 64 * 1024

// minCellSize is the floor the halving-retry allocator gives up at.
const minCellSize = 2

// allocBytes is the cell allocator, a package variable so tests can force
// allocation failures without needing the Go runtime to actually run out
// of memory.
var allocBytes = func(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// cell is one node of the doubly linked chain; it exclusively owns data.
type cell struct {
	data       []byte
	prev, next *cell
}

// Storage is a segmented byte buffer: a doubly linked list of byte cells
// addressed through Iter. It is not safe for concurrent use.
type Storage struct {
	head, tail *cell
	size       int

	// failedAlloc is the largest cell size a past allocation attempt
	// failed at; Reduce will not coalesce cells into anything bigger
	// than this, so it doesn't immediately re-trigger the failure it
	// just backed off from.
	failedAlloc int
}

// New allocates a Storage holding n zeroed bytes. If a single cell of the
// requested size can't be allocated, it retries with half the size,
// continuing to halve until an allocation succeeds or the attempted size
// drops below the minimum viable cell size, at which point it returns
// OutOfMemory.
func New(n int) (*Storage, error) {
	if n < 0 {
		return nil, errors.New(uint16(Range), "negative storage size")
	}
	s := &Storage{}
	if n == 0 {
		return s, nil
	}
	remaining := n
	for remaining > 0 {
		want := remaining
		if want > defaultCellSize {
			want = defaultCellSize
		}
		c, err := s.allocCell(want)
		if err != nil {
			return nil, err
		}
		s.append(c)
		remaining -= len(c.data)
	}
	return s, nil
}

// allocCell allocates a single cell of up to want bytes, halving the
// request on failure until it succeeds or falls below minCellSize.
func (s *Storage) allocCell(want int) (*cell, error) {
	for want >= minCellSize {
		data, err := allocBytes(want)
		if err == nil {
			return &cell{data: data}, nil
		}
		if want > s.failedAlloc {
			s.failedAlloc = want
		}
		want /= 2
	}
	return nil, errors.New(uint16(OutOfMemory), "cell allocation retries exhausted")
}

func (s *Storage) append(c *cell) {
	c.prev = s.tail
	if s.tail != nil {
		s.tail.next = c
	} else {
		s.head = c
	}
	s.tail = c
	s.size += len(c.data)
}

// Len returns the total number of bytes held across all cells.
func (s *Storage) Len() int {
	return s.size
}

// Reduce coalesces adjacent cells whose combined size stays at or below
// the allocator's learned high-water mark, shrinking the cell count
// without changing the logical content.
func (s *Storage) Reduce() {
	limit := s.failedAlloc
	if limit == 0 {
		limit = defaultCellSize
	}
	c := s.head
	for c != nil && c.next != nil {
		if len(c.data)+len(c.next.data) <= limit {
			merged := make([]byte, 0, len(c.data)+len(c.next.data))
			merged = append(merged, c.data...)
			merged = append(merged, c.next.data...)
			c.data = merged
			s.unlink(c.next)
			continue
		}
		c = c.next
	}
}

func (s *Storage) unlink(c *cell) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		s.head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		s.tail = c.prev
	}
	c.prev, c.next = nil, nil
}

// SetAllocatorForTest swaps the package's cell allocator and returns the
// previous one, so tests can simulate allocation failure without needing
// the Go runtime to actually exhaust memory. Not for production use.
func SetAllocatorForTest(f func(n int) ([]byte, error)) func(n int) ([]byte, error) {
	prev := allocBytes
	allocBytes = f
	return prev
}

// Bytes returns a contiguous copy of every byte held in s, in order. It is
// meant for tests and small storages; production callers should use
// iterators to avoid the copy.
func (s *Storage) Bytes() []byte {
	out := make([]byte, 0, s.size)
	for c := s.head; c != nil; c = c.next {
		out = append(out, c.data...)
	}
	return out
}
