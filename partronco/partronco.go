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

package partronco

import (
	"context"
	"io"
	"sync"

	"github/sabouaram/dargo/crypt"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/pool"
	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/tronco"
)

// job is what rides through the scatter and gather rateliers: a checked
// out segment and how many of its bytes are actually in play (the final
// block of a stream is shorter than blockSize).
type job struct {
	seg *pool.Segment
	n   int
}

// ParTronco is tronco with the encrypt/decrypt step moved off the
// caller's goroutine and onto a fixed pool of workers. One below
// goroutine drives the sequential I/O against under;
// NumWorkers goroutines cipher blocks concurrently; the gather ratelier
// hands blocks back to the public Read/Write methods strictly in
// ascending block-number order, regardless of which worker finished
// first.
type ParTronco struct {
	stream.Base
	under      stream.Stream
	core       *crypt.Core
	blockSize  int
	shift      int64
	version    byte
	trailing   tronco.TrailingClearDataFunc
	numWorkers int

	heap    *pool.Heap
	scatter *pool.Ratelier
	gather  *pool.Ratelier

	wgWorkers sync.WaitGroup
	wgBelow   sync.WaitGroup

	trailingOffset int64
	trailingKnown  bool

	// write side
	clearBuf      []byte
	clearLen      int
	writeBlockNum uint64
	writeErrMu    sync.Mutex
	writeErr      error

	// read side
	curSeg        *pool.Segment
	curPos        int
	curFilled     int
	nextBlockNum  uint64
	readEOF       bool
	readErrMu     sync.Mutex
	readErr       error
	pipelineStart bool
}

// New wraps under exactly as tronco.New does, but ciphers blocks across
// numWorkers goroutines instead of inline on the caller's goroutine.
func New(under stream.Stream, core *crypt.Core, shift int64, version byte, trailing tronco.TrailingClearDataFunc, numWorkers int) (*ParTronco, error) {
	if numWorkers <= 0 {
		return nil, errors.New(uint16(Range), "partronco: New requires at least one worker")
	}
	bs := core.BlockSize()
	rateCap := numWorkers + numWorkers/2
	if rateCap < 1 {
		rateCap = 1
	}
	heapCap := 2*rateCap + numWorkers + 1

	heap, err := pool.NewHeap(heapCap, bs, bs)
	if err != nil {
		return nil, err
	}
	scatter, err := pool.NewRatelier(rateCap)
	if err != nil {
		return nil, err
	}
	gather, err := pool.NewRatelier(rateCap)
	if err != nil {
		return nil, err
	}

	pt := &ParTronco{
		Base:       stream.NewBase(under.Mode()),
		under:      under,
		core:       core,
		blockSize:  bs,
		shift:      shift,
		version:    version,
		trailing:   trailing,
		numWorkers: numWorkers,
		heap:       heap,
		scatter:    scatter,
		gather:     gather,
		clearBuf:   make([]byte, bs),
	}
	return pt, nil
}

func (pt *ParTronco) resolveTrailing() error {
	if pt.trailingKnown || pt.trailing == nil {
		return nil
	}
	off, err := pt.trailing(pt.under, pt.version)
	if err != nil {
		return err
	}
	pt.trailingOffset = off
	pt.trailingKnown = true
	return nil
}

// startWorkers launches the cipher worker pool; op is run for each job
// taken off scatter, turning its clear bytes into cipher bytes or vice
// versa, before the job is forwarded to gather under the same sequence
// number.
func (pt *ParTronco) startWorkers(op func(blockNum uint64, j job) error) {
	pt.wgWorkers.Add(pt.numWorkers)
	for i := 0; i < pt.numWorkers; i++ {
		go func() {
			defer pt.wgWorkers.Done()
			for {
				msg, ok := pt.scatter.Get()
				if !ok {
					return
				}
				j := msg.Val.(job)
				status := pool.Normal
				if err := op(msg.Seq, j); err != nil {
					pt.recordError(err)
					status = pool.ExceptionWorker
				}
				_ = pt.gather.Put(pool.Message{Seq: msg.Seq, Val: j, Status: status})
			}
		}()
	}
}

func (pt *ParTronco) recordError(err error) {
	pt.writeErrMu.Lock()
	if pt.writeErr == nil {
		pt.writeErr = err
	}
	pt.writeErrMu.Unlock()
	pt.readErrMu.Lock()
	if pt.readErr == nil {
		pt.readErr = err
	}
	pt.readErrMu.Unlock()
}

// ---- write side ----

func (pt *ParTronco) ensureWritePipeline() {
	if pt.pipelineStart {
		return
	}
	pt.pipelineStart = true
	pt.startWorkers(func(blockNum uint64, j job) error {
		return pt.core.EncryptBlock(blockNum, j.seg.Cipher[:j.n], j.seg.Clear[:j.n])
	})
	pt.wgBelow.Add(1)
	go func() {
		defer pt.wgBelow.Done()
		for {
			msg, ok := pt.gather.Get()
			if !ok {
				return
			}
			j := msg.Val.(job)
			if msg.Status == pool.Normal {
				if _, err := pt.under.Write(j.seg.Cipher[:j.n]); err != nil {
					pt.recordError(err)
				}
			}
			pt.heap.Release(j.seg)
		}
	}()
}

// Write accumulates p into the pending clear block, dispatching full
// blocks to the worker pool as they fill. Dispatch is asynchronous: Write
// returns as soon as the block has been handed to a worker, bounded only
// by the heap and ratelier capacities.
func (pt *ParTronco) Write(p []byte) (int, error) {
	if err := pt.CheckMode(stream.WriteOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	pt.ensureWritePipeline()
	total := len(p)
	for len(p) > 0 {
		n := copy(pt.clearBuf[pt.clearLen:pt.blockSize], p)
		pt.clearLen += n
		p = p[n:]
		if pt.clearLen == pt.blockSize {
			if err := pt.dispatchWrite(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, pt.pendingWriteErr()
}

func (pt *ParTronco) pendingWriteErr() error {
	pt.writeErrMu.Lock()
	defer pt.writeErrMu.Unlock()
	return pt.writeErr
}

func (pt *ParTronco) dispatchWrite() error {
	if pt.clearLen == 0 {
		return nil
	}
	if err := pt.pendingWriteErr(); err != nil {
		return err
	}
	seg, err := pt.heap.Acquire(context.Background())
	if err != nil {
		return err
	}
	copy(seg.Clear[:pt.clearLen], pt.clearBuf[:pt.clearLen])
	seg.BlockNum = pt.writeBlockNum
	if err := pt.scatter.Put(pool.Message{Seq: pt.writeBlockNum, Val: job{seg: seg, n: pt.clearLen}}); err != nil {
		return err
	}
	pt.writeBlockNum++
	pt.clearLen = 0
	return nil
}

// drainWrite closes the scatter ratelier (no further jobs will arrive),
// waits for every worker and the below writer to finish flushing
// whatever was already in flight, then reopens a fresh pipeline so
// writing can resume. A full drain stands in for an explicit stop/ack
// handshake: it is a correctness-equivalent, simpler way to reach the
// same "all threads quiesced at a known point" state.
func (pt *ParTronco) drainWrite() error {
	if !pt.pipelineStart {
		return nil
	}
	pt.scatter.Close()
	pt.wgWorkers.Wait()
	pt.gather.Close()
	pt.wgBelow.Wait()
	err := pt.pendingWriteErr()
	pt.scatter.Reset()
	pt.gather.Reset()
	pt.pipelineStart = false
	return err
}

// SyncWrite flushes any pending partial block and drains the pipeline so
// every dispatched block has actually reached under before returning.
func (pt *ParTronco) SyncWrite() error {
	if pt.Mode() == stream.ReadOnly {
		return nil
	}
	if err := pt.dispatchWrite(); err != nil {
		return err
	}
	if err := pt.drainWrite(); err != nil {
		return err
	}
	return pt.under.SyncWrite()
}

// ---- read side ----

func (pt *ParTronco) ensureReadPipeline(startBlock uint64) error {
	if pt.pipelineStart {
		return nil
	}
	if err := pt.resolveTrailing(); err != nil {
		return err
	}
	pt.pipelineStart = true
	pt.nextBlockNum = startBlock

	pt.startWorkers(func(blockNum uint64, j job) error {
		return pt.core.DecryptBlock(blockNum, j.seg.Clear[:j.n], j.seg.Cipher[:j.n])
	})

	pt.wgBelow.Add(1)
	go func() {
		defer pt.wgBelow.Done()
		blockNum := startBlock
		for {
			need := pt.blockSize
			if pt.trailingKnown {
				pos, err := pt.under.GetPosition()
				if err != nil {
					pt.recordError(err)
					pt.scatter.Close()
					return
				}
				remaining := pt.trailingOffset - pos
				if remaining <= 0 {
					pt.scatter.Close()
					return
				}
				if remaining < int64(need) {
					need = int(remaining)
				}
			}

			seg, err := pt.heap.Acquire(context.Background())
			if err != nil {
				pt.recordError(err)
				pt.scatter.Close()
				return
			}
			n, rerr := pt.under.Read(seg.Cipher[:need])
			if rerr != nil && rerr != io.EOF {
				pt.recordError(rerr)
				pt.heap.Release(seg)
				pt.scatter.Close()
				return
			}
			if n == 0 {
				pt.heap.Release(seg)
				pt.scatter.Close()
				return
			}
			if err := pt.scatter.Put(pool.Message{Seq: blockNum, Val: job{seg: seg, n: n}}); err != nil {
				pt.heap.Release(seg)
				return
			}
			blockNum++
			if n < pt.blockSize {
				pt.scatter.Close()
				return
			}
		}
	}()

	go func() {
		pt.wgWorkers.Wait()
		pt.gather.Close()
	}()
	return nil
}

// Read fills p from the decrypted block stream, pulling further
// decrypted blocks off the gather ratelier (which the worker pool fills
// out of order but the ratelier always releases in order) as needed.
func (pt *ParTronco) Read(p []byte) (int, error) {
	if err := pt.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	if err := pt.ensureReadPipeline(0); err != nil {
		return 0, err
	}
	total := 0
	for total < len(p) {
		if pt.curPos >= pt.curFilled {
			if err := pt.fillNext(); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
		}
		n := copy(p[total:], pt.curSeg.Clear[pt.curPos:pt.curFilled])
		pt.curPos += n
		total += n
	}
	return total, nil
}

func (pt *ParTronco) fillNext() error {
	if pt.curSeg != nil {
		pt.heap.Release(pt.curSeg)
		pt.curSeg = nil
	}
	if pt.readEOF {
		return io.EOF
	}
	msg, ok := pt.gather.Get()
	if !ok {
		pt.readErrMu.Lock()
		err := pt.readErr
		pt.readErrMu.Unlock()
		pt.readEOF = true
		if err != nil {
			return err
		}
		return io.EOF
	}
	j := msg.Val.(job)
	if msg.Status != pool.Normal {
		pt.heap.Release(j.seg)
		pt.readErrMu.Lock()
		err := pt.readErr
		pt.readErrMu.Unlock()
		pt.readEOF = true
		if err != nil {
			return err
		}
		return errors.New(uint16(Corrupt), "partronco: worker reported a decrypt error")
	}
	pt.curSeg = j.seg
	pt.curFilled = j.n
	pt.curPos = 0
	pt.nextBlockNum = msg.Seq + 1
	return nil
}

// drainRead shuts down an in-flight read pipeline without caring about
// its output, for Skip/Truncate/Terminate to reseat cleanly.
func (pt *ParTronco) drainRead() {
	if !pt.pipelineStart {
		return
	}
	pt.scatter.Close()
	pt.wgWorkers.Wait()
	pt.wgBelow.Wait()
	pt.gather.Close()
	for {
		msg, ok := pt.gather.Get()
		if !ok {
			break
		}
		pt.heap.Release(msg.Val.(job).seg)
	}
	pt.scatter.Reset()
	pt.gather.Reset()
	pt.pipelineStart = false
	if pt.curSeg != nil {
		pt.heap.Release(pt.curSeg)
		pt.curSeg = nil
	}
	pt.curFilled = 0
	pt.curPos = 0
	pt.readEOF = false
}

// Skip moves the logical read cursor to pos. Because the pipeline must
// be quiesced to reseat the below goroutine at a new underlying offset,
// Skip drains whatever is in flight (see drainRead) before recomputing
// the block/intra-block split exactly as tronco.Skip does.
func (pt *ParTronco) Skip(pos int64) (bool, error) {
	if err := pt.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return false, errors.New(uint16(Unsupported), "partronco: skip requires a readable stream", err)
	}
	if pos < 0 {
		pos = 0
	}
	pt.drainRead()

	blockNum := uint64(pos / int64(pt.blockSize))
	intra := int(pos % int64(pt.blockSize))
	absolute := pt.shift + int64(blockNum)*int64(pt.blockSize)

	ok, err := pt.under.Skip(absolute)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := pt.ensureReadPipeline(blockNum); err != nil {
		return false, err
	}
	if err := pt.fillNext(); err != nil && err != io.EOF {
		return false, err
	}
	if intra > pt.curFilled {
		pt.curPos = pt.curFilled
		return false, nil
	}
	pt.curPos = intra
	return true, nil
}

// SkipRelative is GetPosition followed by Skip.
func (pt *ParTronco) SkipRelative(delta int64) (bool, error) {
	pos, err := pt.GetPosition()
	if err != nil {
		return false, err
	}
	return pt.Skip(pos + delta)
}

// SkipToEOF moves the cursor to the end of the encrypted region.
func (pt *ParTronco) SkipToEOF() error {
	if err := pt.resolveTrailing(); err != nil {
		return err
	}
	var total int64
	if pt.trailingKnown {
		total = pt.trailingOffset - pt.shift
	} else {
		pt.drainRead()
		if err := pt.under.SkipToEOF(); err != nil {
			return err
		}
		pos, err := pt.under.GetPosition()
		if err != nil {
			return err
		}
		total = pos - pt.shift
	}
	_, err := pt.Skip(total)
	return err
}

// Skippable mirrors tronco.Skippable: the worker pool adds no
// restriction of its own beyond mode and termination state.
func (pt *ParTronco) Skippable(dir stream.Direction, amount int64) bool {
	if pt.Mode() == stream.WriteOnly || pt.Terminated() {
		return false
	}
	return pt.under.Skippable(dir, amount)
}

// GetPosition returns the logical offset into the decrypted stream.
func (pt *ParTronco) GetPosition() (int64, error) {
	if pt.Mode() == stream.WriteOnly {
		return int64(pt.writeBlockNum)*int64(pt.blockSize) + int64(pt.clearLen), nil
	}
	if pt.curSeg != nil || pt.readEOF {
		blockNum := pt.nextBlockNum
		if pt.curFilled > 0 {
			blockNum--
		}
		return int64(blockNum)*int64(pt.blockSize) + int64(pt.curPos), nil
	}
	return int64(pt.nextBlockNum) * int64(pt.blockSize), nil
}

// ReadAhead forwards the hint to the underlying stream.
func (pt *ParTronco) ReadAhead(n int64) {
	pt.under.ReadAhead(n)
}

// Truncate discards everything past pos in the underlying stream,
// draining any in-flight read pipeline first.
func (pt *ParTronco) Truncate(pos int64) error {
	if pos < 0 {
		return errors.New(uint16(Range), "partronco: negative truncate position")
	}
	pt.drainRead()
	return pt.under.Truncate(pt.shift + pos)
}

// FlushRead discards any buffered decrypted block and drains the
// pipeline so the next Read starts from fresh ciphertext.
func (pt *ParTronco) FlushRead() {
	pos, err := pt.GetPosition()
	if err != nil {
		return
	}
	_, _ = pt.Skip(pos)
}

// Terminate flushes any pending partial block, drains the pipeline, and
// terminates the underlying stream.
func (pt *ParTronco) Terminate() error {
	if !pt.MarkTerminated() {
		return nil
	}
	if pt.Mode() != stream.ReadOnly {
		if err := pt.dispatchWrite(); err != nil {
			return err
		}
		if err := pt.drainWrite(); err != nil {
			return err
		}
	} else {
		pt.drainRead()
	}
	return pt.under.Terminate()
}
