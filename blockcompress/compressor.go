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

package blockcompress

import (
	"bytes"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/streamcompress"
)

// Compressor buffers clear data into blockSize-sized blocks, compresses
// each one independently with algo, and writes it to under as one frame;
// a zero-size H_EOF frame is emitted on sync_write and Terminate.
// Because each block is compressed on its own, a
// Decompressor can start decoding from the first byte of any frame
// without needing the blocks before it — the tradeoff the format makes
// for parallelism is a worse compression ratio than compressing the
// whole stream as one unit.
type Compressor struct {
	stream.Base
	under     stream.Stream
	algo      streamcompress.Algorithm
	blockSize int

	clearBuf []byte
	clearLen int
	pos      int64
}

// NewCompressor wraps under, buffering and independently compressing
// blockSize-byte blocks with algo before framing them onto under.
func NewCompressor(under stream.Stream, algo streamcompress.Algorithm, blockSize int) (*Compressor, error) {
	if blockSize <= 0 {
		return nil, errors.New(uint16(Range), "blockcompress: NewCompressor requires a positive block size")
	}
	return &Compressor{
		Base:      stream.NewBase(under.Mode()),
		under:     under,
		algo:      algo,
		blockSize: blockSize,
		clearBuf:  make([]byte, blockSize),
	}, nil
}

func (c *Compressor) Write(p []byte) (int, error) {
	if err := c.CheckMode(stream.WriteOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	total := len(p)
	for len(p) > 0 {
		n := copy(c.clearBuf[c.clearLen:c.blockSize], p)
		c.clearLen += n
		p = p[n:]
		if c.clearLen == c.blockSize {
			if err := c.flushBlock(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, nil
}

// flushBlock compresses whatever is pending and writes it as one H_DATA
// frame; it is a no-op when nothing is buffered.
func (c *Compressor) flushBlock() error {
	if c.clearLen == 0 {
		return nil
	}
	compressed, err := compressBlock(c.algo, c.clearBuf[:c.clearLen])
	if err != nil {
		return err
	}
	if _, err := writeFrame(c.under, hData, compressed); err != nil {
		return err
	}
	c.pos += int64(c.clearLen)
	c.clearLen = 0
	return nil
}

// compressBlock runs buf through algo's writer fully, into a buffer,
// rather than via streamcompress's streaming Compressor: each block is
// its own independent compressed unit here, so there is no benefit to
// that type's incremental-read machinery.
func compressBlock(algo streamcompress.Algorithm, buf []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := algo.Writer(nopWriteCloser{&out})
	if err != nil {
		return nil, errors.New(uint16(CorruptArchive), "blockcompress: opening codec writer", err)
	}
	if _, err := w.Write(buf); err != nil {
		return nil, errors.New(uint16(CorruptArchive), "blockcompress: compressing block", err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.New(uint16(CorruptArchive), "blockcompress: closing codec writer", err)
	}
	return out.Bytes(), nil
}

type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

func (c *Compressor) Read([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "blockcompress: Compressor is write-only")
}

func (c *Compressor) Skip(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "blockcompress: Compressor does not support skip")
}

func (c *Compressor) SkipRelative(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "blockcompress: Compressor does not support skip")
}

func (c *Compressor) SkipToEOF() error {
	return errors.New(uint16(Unsupported), "blockcompress: Compressor does not support skip")
}

func (c *Compressor) Skippable(stream.Direction, int64) bool {
	return false
}

func (c *Compressor) GetPosition() (int64, error) {
	return c.pos, nil
}

func (c *Compressor) ReadAhead(int64) {}

func (c *Compressor) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "blockcompress: Compressor does not support truncate")
}

// SyncWrite flushes any pending partial block, emits an H_EOF marker
// frame, and syncs under.
func (c *Compressor) SyncWrite() error {
	if err := c.flushBlock(); err != nil {
		return err
	}
	if _, err := writeFrame(c.under, hEOF, nil); err != nil {
		return err
	}
	return c.under.SyncWrite()
}

func (c *Compressor) FlushRead() {}

// Terminate flushes any pending block, emits the closing H_EOF frame,
// and terminates under.
func (c *Compressor) Terminate() error {
	if !c.MarkTerminated() {
		return nil
	}
	if c.Mode() != stream.ReadOnly {
		if err := c.flushBlock(); err != nil {
			return err
		}
		if _, err := writeFrame(c.under, hEOF, nil); err != nil {
			return err
		}
	}
	return c.under.Terminate()
}
