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

package archive

import "github/sabouaram/dargo/stream"

// nonTerminating wraps a Stream so that every layer built on top of it
// (Tronco/ParTronco, Compressor/Decompressor, Escape, SparseFile) can be
// Terminate-d to flush its own buffering without closing the real file
// underneath: Writer and Reader still need to write or read the trailing
// elastic buffer and Terminator through the same underlying Stream once
// the encrypted/compressed region's Terminate has run. Terminate here
// degrades to SyncWrite (or a no-op on the read side); the real
// Terminate is called exactly once, by Writer.Close/Reader.Close, on the
// true underlying Stream.
type nonTerminating struct {
	stream.Stream
}

func (n *nonTerminating) Terminate() error {
	if n.Mode() == stream.ReadOnly {
		return nil
	}
	return n.Stream.SyncWrite()
}
