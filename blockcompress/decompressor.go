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
	"io"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/streamcompress"
)

// Decompressor reads frames written by a Compressor (or ParCompressor)
// from under, decompressing each H_DATA frame's payload in full before
// handing its bytes out through Read. It is forward-only: an H_EOF
// frame, once seen, ends the stream for good.
type Decompressor struct {
	stream.Base
	under stream.Stream
	algo  streamcompress.Algorithm

	decoded []byte
	pos     int64
	eof     bool
}

func NewDecompressor(under stream.Stream, algo streamcompress.Algorithm) *Decompressor {
	return &Decompressor{Base: stream.NewBase(under.Mode()), under: under, algo: algo}
}

// fill reads and decompresses the next frame into decoded.
func (d *Decompressor) fill() error {
	if d.eof {
		return io.EOF
	}
	typ, payload, err := readFrame(d.under)
	if err != nil {
		return err
	}
	if typ == hEOF {
		d.eof = true
		return io.EOF
	}
	clear, err := decompressBlock(d.algo, payload)
	if err != nil {
		return err
	}
	d.decoded = clear
	return nil
}

func decompressBlock(algo streamcompress.Algorithm, payload []byte) ([]byte, error) {
	r, err := algo.Reader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.New(uint16(CorruptArchive), "blockcompress: opening codec reader", err)
	}
	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		_ = r.Close()
		return nil, errors.New(uint16(CorruptArchive), "blockcompress: decompressing block", err)
	}
	_ = r.Close()
	return out.Bytes(), nil
}

func (d *Decompressor) Read(p []byte) (int, error) {
	if err := d.CheckMode(stream.ReadOnly, stream.ReadWrite); err != nil {
		return 0, err
	}
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

func (d *Decompressor) Write([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "blockcompress: Decompressor is read-only")
}

func (d *Decompressor) Skip(pos int64) (bool, error) {
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

func (d *Decompressor) SkipRelative(delta int64) (bool, error) {
	return d.Skip(d.pos + delta)
}

func (d *Decompressor) SkipToEOF() error {
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

func (d *Decompressor) Skippable(dir stream.Direction, _ int64) bool {
	return dir == stream.Forward && !d.Terminated()
}

func (d *Decompressor) GetPosition() (int64, error) {
	return d.pos, nil
}

func (d *Decompressor) ReadAhead(int64) {}

func (d *Decompressor) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "blockcompress: Decompressor does not support truncate")
}

func (d *Decompressor) SyncWrite() error { return nil }

func (d *Decompressor) FlushRead() {
	d.decoded = nil
}

func (d *Decompressor) Terminate() error {
	if !d.MarkTerminated() {
		return nil
	}
	return d.under.Terminate()
}
