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
	"github/sabouaram/dargo/stream"
)

// fdPool keeps a small number of recently-opened slice file handles
// around so a reader that seeks back and forth across slice boundaries
// doesn't reopen the same file on every switch. Eviction is
// least-recently-used; evicted handles are terminated (closed).
type fdPool struct {
	max     int
	order   []uint64
	handles map[uint64]*stream.File
}

func newFDPool(max int) *fdPool {
	if max < 1 {
		max = 1
	}
	return &fdPool{max: max, handles: make(map[uint64]*stream.File)}
}

// touch records n as the most recently used slice.
func (p *fdPool) touch(n uint64) {
	for i, v := range p.order {
		if v == n {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.order = append(p.order, n)
}

// put registers f as the handle for slice n, evicting the least recently
// used handle first if the pool is already at capacity.
func (p *fdPool) put(n uint64, f *stream.File) {
	if existing, ok := p.handles[n]; ok && existing != f {
		_ = existing.Terminate()
	}
	p.handles[n] = f
	p.touch(n)
	for len(p.handles) > p.max {
		idx := 0
		for idx < len(p.order) && p.order[idx] == n {
			idx++
		}
		if idx >= len(p.order) {
			break
		}
		victim := p.order[idx]
		p.order = append(p.order[:idx], p.order[idx+1:]...)
		if h, ok := p.handles[victim]; ok {
			_ = h.Terminate()
			delete(p.handles, victim)
		}
	}
}

// get returns the cached handle for slice n, if any.
func (p *fdPool) get(n uint64) (*stream.File, bool) {
	f, ok := p.handles[n]
	if ok {
		p.touch(n)
	}
	return f, ok
}

// closeAll terminates every handle still held by the pool.
func (p *fdPool) closeAll() {
	for _, f := range p.handles {
		_ = f.Terminate()
	}
	p.handles = make(map[uint64]*stream.File)
	p.order = nil
}
