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

// Iter addresses a single byte of a Storage as a (cell, offset) pair. The
// zero value is not valid; obtain one from Begin or End. Iter end (the
// position one past the last byte) is a distinguished sentinel with a nil
// cell, analogous to an end iterator in a doubly-linked-list container.
type Iter struct {
	s      *Storage
	c      *cell
	off    int
	atEnd  bool
}

// Begin returns an iterator at the first byte of s. On an empty storage,
// Begin equals End.
func (s *Storage) Begin() Iter {
	if s.head == nil {
		return s.End()
	}
	return Iter{s: s, c: s.head, off: 0}
}

// End returns the sentinel iterator one past the last byte of s.
func (s *Storage) End() Iter {
	return Iter{s: s, atEnd: true}
}

// AtEnd reports whether i is the end sentinel.
func (i Iter) AtEnd() bool {
	return i.atEnd
}

// Next advances i by one byte and returns the new iterator, which is End
// once i moves past the last byte.
func (i Iter) Next() Iter {
	if i.atEnd || i.c == nil {
		return i.s.End()
	}
	if i.off+1 < len(i.c.data) {
		return Iter{s: i.s, c: i.c, off: i.off + 1}
	}
	n := i.c.next
	for n != nil && len(n.data) == 0 {
		n = n.next
	}
	if n == nil {
		return i.s.End()
	}
	return Iter{s: i.s, c: n, off: 0}
}

// Prev steps i back by one byte. Stepping back from End lands on the last
// byte of s; stepping back from Begin is a no-op.
func (i Iter) Prev() Iter {
	if i.atEnd {
		if i.s.tail == nil {
			return i
		}
		return Iter{s: i.s, c: i.s.tail, off: len(i.s.tail.data) - 1}
	}
	if i.off > 0 {
		return Iter{s: i.s, c: i.c, off: i.off - 1}
	}
	p := i.c.prev
	for p != nil && len(p.data) == 0 {
		p = p.prev
	}
	if p == nil {
		return i
	}
	return Iter{s: i.s, c: p, off: len(p.data) - 1}
}

func (i Iter) valid() error {
	if i.s == nil {
		return errors.New(uint16(InvalidIterator), "nil storage")
	}
	if !i.atEnd && i.c == nil {
		return errors.New(uint16(InvalidIterator), "dangling iterator")
	}
	return nil
}

// Read copies up to len(buf) bytes starting at i into buf, advancing
// across cell boundaries as needed, and returns how many bytes were
// copied (fewer than len(buf) only if End was reached) together with the
// iterator positioned just past the last byte read.
func (i Iter) Read(buf []byte) (int, Iter, error) {
	if err := i.valid(); err != nil {
		return 0, i, err
	}
	n := 0
	cur := i
	for n < len(buf) && !cur.atEnd {
		buf[n] = cur.c.data[cur.off]
		n++
		cur = cur.Next()
	}
	return n, cur, nil
}

// Write overwrites up to len(buf) existing bytes starting at i with buf's
// contents; it never grows the storage (see Insert for that), stopping
// early if it runs into End.
func (i Iter) Write(buf []byte) (int, Iter, error) {
	if err := i.valid(); err != nil {
		return 0, i, err
	}
	n := 0
	cur := i
	for n < len(buf) && !cur.atEnd {
		cur.c.data[cur.off] = buf[n]
		n++
		cur = cur.Next()
	}
	return n, cur, nil
}

// Insert splices data into the storage immediately before i, growing it
// by len(data) bytes, and returns an iterator positioned just after the
// inserted bytes. Any other iterator held on s besides the one returned
// is invalidated by this call.
func (i Iter) Insert(data []byte) (Iter, error) {
	if err := i.valid(); err != nil {
		return i, err
	}
	if len(data) == 0 {
		return i, nil
	}
	nc := &cell{data: append([]byte(nil), data...)}
	s := i.s

	if i.atEnd {
		nc.prev = s.tail
		if s.tail != nil {
			s.tail.next = nc
		} else {
			s.head = nc
		}
		s.tail = nc
		s.size += len(data)
		return s.End(), nil
	}

	if i.off == 0 {
		nc.prev = i.c.prev
		nc.next = i.c
		if i.c.prev != nil {
			i.c.prev.next = nc
		} else {
			s.head = nc
		}
		i.c.prev = nc
		s.size += len(data)
		return Iter{s: s, c: i.c, off: 0}, nil
	}

	tailData := append([]byte(nil), i.c.data[i.off:]...)
	i.c.data = i.c.data[:i.off]
	tail := &cell{data: tailData, next: i.c.next, prev: nc}
	if i.c.next != nil {
		i.c.next.prev = tail
	} else {
		s.tail = tail
	}
	nc.prev = i.c
	nc.next = tail
	i.c.next = nc
	s.size += len(data)
	return Iter{s: s, c: tail, off: 0}, nil
}

// InsertRepeat inserts count copies of b before i.
func (i Iter) InsertRepeat(b byte, count int) (Iter, error) {
	if count < 0 {
		return i, errors.New(uint16(Range), "negative repeat count")
	}
	buf := make([]byte, count)
	for k := range buf {
		buf[k] = b
	}
	return i.Insert(buf)
}

// InsertZeros inserts count zero bytes before i.
func (i Iter) InsertZeros(count int) (Iter, error) {
	return i.InsertRepeat(0x00, count)
}

// Remove deletes count bytes starting at i, returning an iterator
// positioned at the byte that followed the removed range.
func (i Iter) Remove(count int) (Iter, error) {
	if err := i.valid(); err != nil {
		return i, err
	}
	if count < 0 {
		return i, errors.New(uint16(Range), "negative remove count")
	}
	if count == 0 {
		return i, nil
	}
	if i.atEnd {
		return i, errors.New(uint16(Range), "remove count exceeds storage length")
	}

	s := i.s
	c, off := i.c, i.off
	remaining := count

	for remaining > 0 {
		if c == nil {
			return s.End(), errors.New(uint16(Range), "remove count exceeds storage length")
		}
		avail := len(c.data) - off
		take := remaining
		if take > avail {
			take = avail
		}
		c.data = append(c.data[:off], c.data[off+take:]...)
		s.size -= take
		remaining -= take

		next := c.next
		if len(c.data) == 0 {
			s.unlink(c)
		}
		if remaining > 0 {
			c, off = next, 0
			continue
		}
		if len(c.data) > 0 && off < len(c.data) {
			return Iter{s: s, c: c, off: off}, nil
		}
		for next != nil && len(next.data) == 0 {
			next = next.next
		}
		if next == nil {
			return s.End(), nil
		}
		return Iter{s: s, c: next, off: 0}, nil
	}
	return s.End(), nil
}

// RemoveBigInt deletes count bytes starting at i, taking the count as a
// uint64; a count that does not fit in an int returns a Range error.
func (i Iter) RemoveBigInt(count uint64) (Iter, error) {
	if uint64(int(count)) != count {
		return i, errors.New(uint16(Range), "remove count exceeds addressable storage range")
	}
	return i.Remove(int(count))
}
