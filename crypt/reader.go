/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

package crypt

import "io"

// BlockReader decrypts a forward-only sequence of fixed-size blocks read
// from an underlying io.Reader, advancing the ESSIV block counter by one
// on every call to Read that returns at least one byte.
type BlockReader struct {
	core     *Core
	under    io.Reader
	blockNum uint64
	raw      []byte
}

// NewBlockReader wraps under, decrypting core.BlockSize()-sized chunks
// with successive block numbers starting at startBlock.
func NewBlockReader(core *Core, under io.Reader, startBlock uint64) *BlockReader {
	return &BlockReader{core: core, under: under, blockNum: startBlock, raw: make([]byte, core.BlockSize())}
}

// Read fills p (at most core.BlockSize() bytes are consulted) with
// ciphertext read from the underlying reader, decrypted in place.
func (r *BlockReader) Read(p []byte) (int, error) {
	if len(p) > len(r.raw) {
		p = p[:len(r.raw)]
	}
	n, err := r.under.Read(r.raw[:len(p)])
	if n > 0 {
		if derr := r.core.DecryptBlock(r.blockNum, p[:n], r.raw[:n]); derr != nil {
			return 0, derr
		}
		r.blockNum++
	}
	return n, err
}
