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

package tronco

import (
	"io"

	"github/sabouaram/dargo/crypt"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// TrailingClearDataFunc locates the first clear (non-encrypted) byte
// following the encrypted region, as an absolute offset in under. It is
// consulted lazily, the first time Tronco needs to know where its
// encrypted view ends.
type TrailingClearDataFunc func(under stream.Stream, version byte) (int64, error)

// Tronco buffers clear data into core.BlockSize()-sized blocks, encrypts
// each with core keyed by its block number, and forwards the ciphertext
// to under; reading inverts the process one block at a time. Because the
// block cipher is AES-CTR (see the crypt package), ciphertext is exactly
// as long as the cleartext it came from: no block-alignment padding is
// ever required, so a final partial block is encrypted or decrypted at
// its natural length instead of being rounded up.
type Tronco struct {
	stream.Base
	under     stream.Stream
	core      *crypt.Core
	blockSize int
	shift     int64
	version   byte
	trailing  TrailingClearDataFunc

	trailingOffset int64
	trailingKnown  bool

	// write side
	clearBuf      []byte
	clearLen      int
	writeBlockNum uint64

	// read side
	readBuf      []byte
	curBlockNum  uint64
	nextBlockNum uint64
	readFilled   int
	readPos      int
	readEOF      bool
}

// New wraps under, whose encrypted region starts at absolute offset
// shift, using core to cipher blocks of core.BlockSize() bytes. trailing
// may be nil; when set, it resolves the end of the encrypted region on
// first use so Tronco can stop decrypting at the elastic/terminator
// trailer instead of past it.
func New(under stream.Stream, core *crypt.Core, shift int64, version byte, trailing TrailingClearDataFunc) *Tronco {
	bs := core.BlockSize()
	return &Tronco{
		Base:      stream.NewBase(under.Mode()),
		under:     under,
		core:      core,
		blockSize: bs,
		shift:     shift,
		version:   version,
		trailing:  trailing,
		clearBuf:  make([]byte, bs),
		readBuf:   make([]byte, bs),
	}
}

func (t *Tronco) resolveTrailing() error {
	if t.trailingKnown || t.trailing == nil {
		return nil
	}
	off, err := t.trailing(t.under, t.version)
	if err != nil {
		return err
	}
	t.trailingOffset = off
	t.trailingKnown = true
	return nil
}

// Write accumulates p into the pending clear block, flushing and
// encrypting full blocks to under as they fill.
func (t *Tronco) Write(p []byte) (int, error) {
	if err := t.CheckMode(stream.WriteOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	total := len(p)
	for len(p) > 0 {
		n := copy(t.clearBuf[t.clearLen:t.blockSize], p)
		t.clearLen += n
		p = p[n:]
		if t.clearLen == t.blockSize {
			if err := t.flushBlock(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, nil
}

// flushBlock encrypts whatever is pending in clearBuf (a full block, or
// a short final one) and writes it to under.
func (t *Tronco) flushBlock() error {
	if t.clearLen == 0 {
		return nil
	}
	cipherBuf := make([]byte, t.clearLen)
	if err := t.core.EncryptBlock(t.writeBlockNum, cipherBuf, t.clearBuf[:t.clearLen]); err != nil {
		return err
	}
	if _, err := t.under.Write(cipherBuf); err != nil {
		return err
	}
	t.writeBlockNum++
	t.clearLen = 0
	return nil
}

// Read fills p from the decrypted block stream, fetching and decrypting
// further ciphertext blocks from under as needed.
func (t *Tronco) Read(p []byte) (int, error) {
	if err := t.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
	total := 0
	for total < len(p) {
		if t.readPos >= t.readFilled {
			if err := t.fillBlock(); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
		}
		n := copy(p[total:], t.readBuf[t.readPos:t.readFilled])
		t.readPos += n
		total += n
	}
	return total, nil
}

// fillBlock decrypts the next ciphertext block from under into readBuf.
func (t *Tronco) fillBlock() error {
	if t.readEOF {
		return io.EOF
	}
	if err := t.resolveTrailing(); err != nil {
		return err
	}

	need := t.blockSize
	if t.trailingKnown {
		pos, err := t.under.GetPosition()
		if err != nil {
			return err
		}
		remaining := t.trailingOffset - pos
		if remaining <= 0 {
			t.readEOF = true
			return io.EOF
		}
		if remaining < int64(need) {
			need = int(remaining)
		}
	}

	raw := make([]byte, need)
	n, err := t.under.Read(raw)
	if err != nil && err != io.EOF {
		return err
	}
	if n < need && t.trailing != nil && (!t.trailingKnown || n == 0) {
		return errors.New(uint16(Corrupt), "tronco: short read inside the encrypted region")
	}
	if n == 0 {
		t.readEOF = true
		return io.EOF
	}

	if err := t.core.DecryptBlock(t.nextBlockNum, t.readBuf[:n], raw[:n]); err != nil {
		return err
	}
	t.curBlockNum = t.nextBlockNum
	t.nextBlockNum++
	t.readFilled = n
	t.readPos = 0
	if n < t.blockSize {
		// A short block can only legitimately happen once, right at the
		// trailing boundary; after it, there is nothing more to decrypt.
		t.readEOF = true
	}
	return nil
}

// Skip moves the logical read cursor to pos, discarding any buffered
// block and recomputing the underlying cipher-side offset by integer
// division; the intra-block remainder is retained so the next Read
// resumes mid-block.
func (t *Tronco) Skip(pos int64) (bool, error) {
	if err := t.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return false, errors.New(uint16(Unsupported), "tronco: skip requires a readable stream", err)
	}
	if pos < 0 {
		pos = 0
	}
	blockNum := uint64(pos / int64(t.blockSize))
	intra := int(pos % int64(t.blockSize))
	absolute := t.shift + int64(blockNum)*int64(t.blockSize)

	ok, err := t.under.Skip(absolute)
	if err != nil {
		return false, err
	}
	t.nextBlockNum = blockNum
	t.readFilled = 0
	t.readPos = 0
	t.readEOF = false
	if !ok {
		return false, nil
	}

	if err := t.fillBlock(); err != nil && err != io.EOF {
		return false, err
	}
	if intra > t.readFilled {
		t.readPos = t.readFilled
		return false, nil
	}
	t.readPos = intra
	return true, nil
}

// SkipRelative is GetPosition followed by Skip.
func (t *Tronco) SkipRelative(delta int64) (bool, error) {
	pos, err := t.GetPosition()
	if err != nil {
		return false, err
	}
	return t.Skip(pos + delta)
}

// SkipToEOF moves the cursor just past the last decrypted byte, consulting the
// trailing-clear-data callback to find the boundary of the encrypted
// region.
func (t *Tronco) SkipToEOF() error {
	if err := t.resolveTrailing(); err != nil {
		return err
	}
	var total int64
	if t.trailingKnown {
		total = t.trailingOffset - t.shift
	} else {
		if err := t.under.SkipToEOF(); err != nil {
			return err
		}
		pos, err := t.under.GetPosition()
		if err != nil {
			return err
		}
		total = pos - t.shift
	}
	_, err := t.Skip(total)
	return err
}

// Skippable reports whether the underlying stream can skip; Tronco never
// adds a skippability restriction of its own beyond its mode and
// termination state.
func (t *Tronco) Skippable(dir stream.Direction, amount int64) bool {
	if t.Mode() == stream.WriteOnly || t.Terminated() {
		return false
	}
	return t.under.Skippable(dir, amount)
}

// GetPosition returns the logical offset into the decrypted stream.
func (t *Tronco) GetPosition() (int64, error) {
	if t.Mode() == stream.WriteOnly {
		return int64(t.writeBlockNum)*int64(t.blockSize) + int64(t.clearLen), nil
	}
	if t.readFilled > 0 || t.readEOF {
		return int64(t.curBlockNum)*int64(t.blockSize) + int64(t.readPos), nil
	}
	return int64(t.nextBlockNum) * int64(t.blockSize), nil
}

// ReadAhead forwards the hint to the underlying stream.
func (t *Tronco) ReadAhead(n int64) {
	t.under.ReadAhead(n)
}

// Truncate discards everything past pos. Because AES-CTR ciphertext is
// exactly as long as its cleartext, the logical offset maps 1:1 onto the
// underlying stream's offset past shift.
func (t *Tronco) Truncate(pos int64) error {
	if pos < 0 {
		return errors.New(uint16(Range), "tronco: negative truncate position")
	}
	if err := t.under.Truncate(t.shift + pos); err != nil {
		return err
	}
	t.readFilled = 0
	t.readPos = 0
	t.readEOF = false
	return nil
}

// SyncWrite flushes any pending partial block and the underlying stream.
// A block flushed this way still consumes its block number; writes that
// follow start a fresh block.
func (t *Tronco) SyncWrite() error {
	if t.Mode() == stream.ReadOnly {
		return nil
	}
	if err := t.flushBlock(); err != nil {
		return err
	}
	return t.under.SyncWrite()
}

// FlushRead discards any buffered decrypted block, forcing the next Read
// to fetch and decrypt fresh ciphertext.
func (t *Tronco) FlushRead() {
	t.readFilled = 0
	t.readPos = 0
	t.readEOF = false
	t.under.FlushRead()
}

// Terminate flushes any pending partial block, then terminates under.
func (t *Tronco) Terminate() error {
	if !t.MarkTerminated() {
		return nil
	}
	if t.Mode() != stream.ReadOnly {
		if err := t.flushBlock(); err != nil {
			return err
		}
	}
	return t.under.Terminate()
}
