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

// BlockWriter encrypts a forward-only sequence of fixed-size blocks
// before writing them to an underlying io.Writer, advancing the ESSIV
// block counter by one on every call to Write.
type BlockWriter struct {
	core     *Core
	under    io.Writer
	blockNum uint64
	enc      []byte
}

// NewBlockWriter wraps under, encrypting each Write under successive
// block numbers starting at startBlock.
func NewBlockWriter(core *Core, under io.Writer, startBlock uint64) *BlockWriter {
	return &BlockWriter{core: core, under: under, blockNum: startBlock, enc: make([]byte, core.BlockSize())}
}

// Write encrypts p under the current block number and forwards the
// ciphertext to the underlying writer. len(p) must not exceed
// core.BlockSize().
func (w *BlockWriter) Write(p []byte) (int, error) {
	if len(p) > len(w.enc) {
		w.enc = make([]byte, len(p))
	}
	if err := w.core.EncryptBlock(w.blockNum, w.enc[:len(p)], p); err != nil {
		return 0, err
	}
	n, err := w.under.Write(w.enc[:len(p)])
	if err == nil {
		w.blockNum++
	}
	return n, err
}
