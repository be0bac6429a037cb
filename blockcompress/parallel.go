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
	"io"
	"sync"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/pool"
	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/streamcompress"
)

// compJob carries one block's payload between the scatter and gather
// rateliers of the parallel (de)compressor. Unlike partronco's fixed-size
// crypto segments, a compressed frame's length varies block to block, so
// jobs here own a freshly-sliced buffer instead of checking one out of a
// pool.Heap: nothing about a codec's output size is as predictable as
// AES-CTR's "ciphertext is exactly as long as the cleartext".
type compJob struct {
	data []byte
}

// ParCompressor is the multi-worker twin of Compressor: Write cuts
// caller data into blockSize chunks on the caller's goroutine and hands
// each to the worker pool through a scatter ratelier; NumWorkers goroutines
// compress independently; a below goroutine writes the resulting frames
// to under strictly in block order off the gather ratelier, following
// the same reader/workers/writer three-role split as ParTronco.
type ParCompressor struct {
	stream.Base
	under     stream.Stream
	algo      streamcompress.Algorithm
	blockSize int

	numWorkers int
	scatter    *pool.Ratelier
	gather     *pool.Ratelier
	wgWorkers  sync.WaitGroup
	wgBelow    sync.WaitGroup
	started    bool

	clearBuf []byte
	clearLen int
	blockNum uint64
	pos      int64

	errMu sync.Mutex
	err   error
}

// NewParCompressor wraps under, compressing blockSize-byte blocks with
// algo across numWorkers goroutines before framing them onto under.
func NewParCompressor(under stream.Stream, algo streamcompress.Algorithm, blockSize, numWorkers int) (*ParCompressor, error) {
	if blockSize <= 0 {
		return nil, errors.New(uint16(Range), "blockcompress: NewParCompressor requires a positive block size")
	}
	if numWorkers <= 0 {
		return nil, errors.New(uint16(Range), "blockcompress: NewParCompressor requires at least one worker")
	}
	rateCap := numWorkers + numWorkers/2
	if rateCap < 1 {
		rateCap = 1
	}
	scatter, err := pool.NewRatelier(rateCap)
	if err != nil {
		return nil, err
	}
	gather, err := pool.NewRatelier(rateCap)
	if err != nil {
		return nil, err
	}
	return &ParCompressor{
		Base:       stream.NewBase(under.Mode()),
		under:      under,
		algo:       algo,
		blockSize:  blockSize,
		numWorkers: numWorkers,
		scatter:    scatter,
		gather:     gather,
		clearBuf:   make([]byte, blockSize),
	}, nil
}

func (c *ParCompressor) recordErr(err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
}

func (c *ParCompressor) pendingErr() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *ParCompressor) ensurePipeline() {
	if c.started {
		return
	}
	c.started = true

	c.wgWorkers.Add(c.numWorkers)
	for i := 0; i < c.numWorkers; i++ {
		go func() {
			defer c.wgWorkers.Done()
			for {
				msg, ok := c.scatter.Get()
				if !ok {
					return
				}
				j := msg.Val.(compJob)
				status := pool.Normal
				out, err := compressBlock(c.algo, j.data)
				if err != nil {
					c.recordErr(err)
					status = pool.ExceptionWorker
					out = nil
				}
				_ = c.gather.Put(pool.Message{Seq: msg.Seq, Val: compJob{data: out}, Status: status})
			}
		}()
	}

	c.wgBelow.Add(1)
	go func() {
		defer c.wgBelow.Done()
		for {
			msg, ok := c.gather.Get()
			if !ok {
				return
			}
			if msg.Status == pool.Normal {
				j := msg.Val.(compJob)
				if _, err := writeFrame(c.under, hData, j.data); err != nil {
					c.recordErr(err)
				}
			}
		}
	}()
}

func (c *ParCompressor) Write(p []byte) (int, error) {
	if err := c.CheckMode(stream.WriteOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	c.ensurePipeline()
	total := len(p)
	for len(p) > 0 {
		n := copy(c.clearBuf[c.clearLen:c.blockSize], p)
		c.clearLen += n
		p = p[n:]
		if c.clearLen == c.blockSize {
			if err := c.dispatch(); err != nil {
				return total - len(p), err
			}
		}
	}
	c.pos += int64(total - len(p))
	return total, c.pendingErr()
}

func (c *ParCompressor) dispatch() error {
	if c.clearLen == 0 {
		return nil
	}
	if err := c.pendingErr(); err != nil {
		return err
	}
	buf := make([]byte, c.clearLen)
	copy(buf, c.clearBuf[:c.clearLen])
	if err := c.scatter.Put(pool.Message{Seq: c.blockNum, Val: compJob{data: buf}}); err != nil {
		return err
	}
	c.blockNum++
	c.clearLen = 0
	return nil
}

// drain closes the pipeline, waits for every worker and the below writer
// to finish, and reopens fresh rateliers so a subsequent Write resumes
// cleanly.
func (c *ParCompressor) drain() error {
	if !c.started {
		return nil
	}
	c.scatter.Close()
	c.wgWorkers.Wait()
	c.gather.Close()
	c.wgBelow.Wait()
	err := c.pendingErr()
	c.scatter.Reset()
	c.gather.Reset()
	c.started = false
	return err
}

func (c *ParCompressor) Read([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "blockcompress: ParCompressor is write-only")
}

func (c *ParCompressor) Skip(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "blockcompress: ParCompressor does not support skip")
}

func (c *ParCompressor) SkipRelative(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "blockcompress: ParCompressor does not support skip")
}

func (c *ParCompressor) SkipToEOF() error {
	return errors.New(uint16(Unsupported), "blockcompress: ParCompressor does not support skip")
}

func (c *ParCompressor) Skippable(stream.Direction, int64) bool { return false }

func (c *ParCompressor) GetPosition() (int64, error) { return c.pos, nil }

func (c *ParCompressor) ReadAhead(int64) {}

func (c *ParCompressor) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "blockcompress: ParCompressor does not support truncate")
}

// SyncWrite flushes any pending partial block and drains the pipeline so
// every compressed frame has actually reached under.
func (c *ParCompressor) SyncWrite() error {
	if err := c.dispatch(); err != nil {
		return err
	}
	if err := c.drain(); err != nil {
		return err
	}
	return c.under.SyncWrite()
}

func (c *ParCompressor) FlushRead() {}

// Terminate flushes any pending block, drains the pipeline, emits the
// closing H_EOF frame, and terminates under.
func (c *ParCompressor) Terminate() error {
	if !c.MarkTerminated() {
		return nil
	}
	if c.Mode() != stream.ReadOnly {
		if err := c.dispatch(); err != nil {
			return err
		}
		if err := c.drain(); err != nil {
			return err
		}
		if _, err := writeFrame(c.under, hEOF, nil); err != nil {
			return err
		}
	}
	return c.under.Terminate()
}

// ParDecompressor is the multi-worker twin of Decompressor: a reader
// goroutine reads frames sequentially from under and hands each payload
// to the worker pool; NumWorkers goroutines decompress independently;
// Read pulls decoded blocks off the gather ratelier strictly in frame
// order, regardless of which worker finished decompressing first.
type ParDecompressor struct {
	stream.Base
	under stream.Stream
	algo  streamcompress.Algorithm

	numWorkers int
	scatter    *pool.Ratelier
	gather     *pool.Ratelier
	wgWorkers  sync.WaitGroup
	wgBelow    sync.WaitGroup
	started    bool

	errMu sync.Mutex
	err   error

	decoded []byte
	pos     int64
	eof     bool
}

func NewParDecompressor(under stream.Stream, algo streamcompress.Algorithm, numWorkers int) (*ParDecompressor, error) {
	if numWorkers <= 0 {
		return nil, errors.New(uint16(Range), "blockcompress: NewParDecompressor requires at least one worker")
	}
	rateCap := numWorkers + numWorkers/2
	if rateCap < 1 {
		rateCap = 1
	}
	scatter, err := pool.NewRatelier(rateCap)
	if err != nil {
		return nil, err
	}
	gather, err := pool.NewRatelier(rateCap)
	if err != nil {
		return nil, err
	}
	return &ParDecompressor{
		Base:       stream.NewBase(under.Mode()),
		under:      under,
		algo:       algo,
		numWorkers: numWorkers,
		scatter:    scatter,
		gather:     gather,
	}, nil
}

func (d *ParDecompressor) recordErr(err error) {
	d.errMu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.errMu.Unlock()
}

func (d *ParDecompressor) ensurePipeline() {
	if d.started {
		return
	}
	d.started = true

	d.wgWorkers.Add(d.numWorkers)
	for i := 0; i < d.numWorkers; i++ {
		go func() {
			defer d.wgWorkers.Done()
			for {
				msg, ok := d.scatter.Get()
				if !ok {
					return
				}
				j := msg.Val.(compJob)
				status := pool.Normal
				out, err := decompressBlock(d.algo, j.data)
				if err != nil {
					d.recordErr(err)
					status = pool.ExceptionWorker
					out = nil
				}
				_ = d.gather.Put(pool.Message{Seq: msg.Seq, Val: compJob{data: out}, Status: status})
			}
		}()
	}

	go func() {
		var blockNum uint64
		for {
			typ, payload, err := readFrame(d.under)
			if err != nil {
				d.recordErr(err)
				d.scatter.Close()
				return
			}
			if typ == hEOF {
				d.scatter.Close()
				return
			}
			if err := d.scatter.Put(pool.Message{Seq: blockNum, Val: compJob{data: payload}}); err != nil {
				return
			}
			blockNum++
		}
	}()

	go func() {
		d.wgWorkers.Wait()
		d.gather.Close()
	}()
}

func (d *ParDecompressor) Read(p []byte) (int, error) {
	if err := d.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	d.ensurePipeline()
	total := 0
	for total < len(p) {
		if len(d.decoded) == 0 {
			if err := d.fill(); err != nil {
				if err == io.EOF {
					if total > 0 {
						return total, nil
					}
					return 0, io.EOF
				}
				return total, err
			}
		}
		n := copy(p[total:], d.decoded)
		d.decoded = d.decoded[n:]
		total += n
		d.pos += int64(n)
	}
	return total, nil
}

func (d *ParDecompressor) fill() error {
	if d.eof {
		return io.EOF
	}
	msg, ok := d.gather.Get()
	if !ok {
		d.eof = true
		d.errMu.Lock()
		err := d.err
		d.errMu.Unlock()
		if err != nil {
			return err
		}
		return io.EOF
	}
	j := msg.Val.(compJob)
	if msg.Status != pool.Normal {
		d.eof = true
		return errors.New(uint16(CorruptArchive), "blockcompress: worker reported a decompress error")
	}
	d.decoded = j.data
	return nil
}

func (d *ParDecompressor) Write([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "blockcompress: ParDecompressor is read-only")
}

func (d *ParDecompressor) Skip(pos int64) (bool, error) {
	if pos < d.pos {
		return false, errors.New(uint16(Unsupported), "blockcompress: cannot skip backward")
	}
	for d.pos < pos {
		if len(d.decoded) == 0 {
			if err := d.fill(); err != nil {
				if err == io.EOF {
					return false, nil
				}
				return false, err
			}
		}
		want := pos - d.pos
		if want > int64(len(d.decoded)) {
			want = int64(len(d.decoded))
		}
		d.decoded = d.decoded[want:]
		d.pos += want
	}
	return true, nil
}

func (d *ParDecompressor) SkipRelative(delta int64) (bool, error) {
	return d.Skip(d.pos + delta)
}

func (d *ParDecompressor) SkipToEOF() error {
	for {
		if len(d.decoded) == 0 {
			if err := d.fill(); err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}
		d.pos += int64(len(d.decoded))
		d.decoded = nil
	}
}

func (d *ParDecompressor) Skippable(dir stream.Direction, _ int64) bool {
	return dir == stream.Forward && !d.Terminated()
}

func (d *ParDecompressor) GetPosition() (int64, error) { return d.pos, nil }

func (d *ParDecompressor) ReadAhead(int64) {}

func (d *ParDecompressor) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "blockcompress: ParDecompressor does not support truncate")
}

func (d *ParDecompressor) SyncWrite() error { return nil }

func (d *ParDecompressor) FlushRead() {
	d.decoded = nil
}

func (d *ParDecompressor) Terminate() error {
	if !d.MarkTerminated() {
		return nil
	}
	return d.under.Terminate()
}
