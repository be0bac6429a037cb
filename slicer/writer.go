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
	"os"
	"path/filepath"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/hashedsink"
	"github/sabouaram/dargo/stream"
)

// Config is the fixed set of parameters shared by a Writer and the
// Reader that later reads what it wrote: the archive's basename and
// slice extension, its data_name label, the first-slice and other-slice
// physical sizes, and the minimum digit width of the slice index in the
// file name.
type Config struct {
	Basename  string
	Ext       string
	DataName  Label
	FirstSize int64
	OtherSize int64
	MinDigits int

	// HashAlgo, when non-nil, pairs every slice with a hashedsink
	// sidecar digest file named after the slice with a ".hash" suffix.
	HashAlgo *hashedsink.Algorithm

	// Resume reopens the highest-numbered existing slice and appends
	// to it instead of starting a fresh archive at slice 1, per
	// SPEC_FULL.md §5's Resume mode.
	Resume bool
}

// Writer is a write-only Stream that rotates across a Config's numbered
// slice files as the logical payload crosses each slice's capacity,
// writing a fresh Header at the start of every slice it opens.
type Writer struct {
	stream.Base
	cfg Config

	target      stream.Stream
	sidecarFile *os.File

	sliceNum     uint64
	headerSize   int64
	bytesInSlice int64
	pos          int64
}

// NewWriter returns a Writer ready to accept sequential writes starting
// at slice 1 (or, with Config.Resume, appending to the highest-numbered
// slice already on disk).
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.FirstSize <= 0 || cfg.OtherSize <= 0 || cfg.MinDigits < 1 {
		return nil, errors.New(uint16(Range), "slicer: NewWriter requires positive sizes and min-digits >= 1")
	}
	w := &Writer{Base: stream.NewBase(stream.WriteOnly), cfg: cfg}
	if cfg.Resume {
		if err := w.resumeHighest(); err != nil {
			return nil, err
		}
		return w, nil
	}
	return w, nil
}

// resumeHighest scans for the highest-numbered existing slice, verifies
// its header, and positions the Writer to append to it.
func (w *Writer) resumeHighest() error {
	var highest uint64
	for n := uint64(1); ; n++ {
		name, ok := probeSliceName(w.cfg.Basename, w.cfg.Ext, n, w.cfg.MinDigits)
		if !ok {
			break
		}
		_ = name
		highest = n
	}
	if highest == 0 {
		return nil
	}
	name, ok := probeSliceName(w.cfg.Basename, w.cfg.Ext, highest, w.cfg.MinDigits)
	if !ok {
		return errors.New(uint16(SliceMissing), "slicer: Resume could not reopen the last slice")
	}
	f, err := stream.OpenFile(name, stream.ReadOnly)
	if err != nil {
		return errors.New(uint16(SliceMissing), "slicer: Resume opening last slice", err)
	}
	hdr, hn, err := ReadHeader(f)
	_ = f.Terminate()
	if err != nil {
		return err
	}
	if !hdr.DataName.Equal(w.cfg.DataName) {
		return errors.New(uint16(CorruptArchive), "slicer: Resume data_name mismatch on last slice")
	}
	info, statErr := os.Stat(name)
	if statErr != nil {
		return errors.New(uint16(SliceMissing), "slicer: Resume stat", statErr)
	}

	appended, err := stream.OpenFileAppend(name, stream.WriteOnly)
	if err != nil {
		return errors.New(uint16(SliceMissing), "slicer: Resume reopening for append", err)
	}
	w.target = appended
	w.sliceNum = highest
	w.headerSize = hn
	w.bytesInSlice = info.Size() - hn
	return nil
}

// capacity returns the payload capacity of the current slice.
func (w *Writer) capacity() int64 {
	size := w.cfg.OtherSize
	if w.sliceNum == 1 {
		size = w.cfg.FirstSize
	}
	return size - w.headerSizeFor(w.sliceNum)
}

// headerSizeFor returns the header size to assume for a slice before it
// has actually been written; it is refined to the real written length
// immediately after rotate writes the header.
func (w *Writer) headerSizeFor(n uint64) int64 {
	if w.headerSize > 0 {
		return w.headerSize
	}
	return 23 // magic(4) + data_name(10) + slice num BigInt(2) + flags(1) + CRC width BigInt(2) + CRC bytes(4)
}

// rotate closes the current slice (if any) and opens the next one,
// writing its header.
func (w *Writer) rotate() error {
	if w.target != nil {
		if err := w.target.Terminate(); err != nil {
			return err
		}
		if w.sidecarFile != nil {
			_ = w.sidecarFile.Close()
			w.sidecarFile = nil
		}
	}
	w.sliceNum++
	name := sliceName(w.cfg.Basename, w.cfg.Ext, w.sliceNum, w.cfg.MinDigits)

	f, err := stream.CreateFile(name, stream.WriteOnly)
	if err != nil {
		return errors.New(uint16(SliceMissing), "slicer: creating slice "+name, err)
	}

	hdr := Header{DataName: w.cfg.DataName, SliceNum: w.sliceNum, IsFirst: w.sliceNum == 1}
	hn, err := WriteHeader(f, hdr)
	if err != nil {
		return err
	}
	w.headerSize = hn
	w.bytesInSlice = 0

	if w.cfg.HashAlgo != nil {
		sc, err := os.Create(name + ".hash")
		if err != nil {
			return errors.New(uint16(SliceMissing), "slicer: creating sidecar for "+name, err)
		}
		sink, err := hashedsink.New(f, sc, filepath.Base(name), *w.cfg.HashAlgo)
		if err != nil {
			_ = sc.Close()
			return err
		}
		w.target = sink
		w.sidecarFile = sc
	} else {
		w.target = f
	}
	return nil
}

// Write splits p across as many slices as needed, rotating to a new
// slice whenever the current one's capacity is exhausted.
func (w *Writer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if w.target == nil || w.bytesInSlice >= w.capacity() {
			if err := w.rotate(); err != nil {
				return total - len(p), err
			}
		}
		room := w.capacity() - w.bytesInSlice
		n := int64(len(p))
		if n > room {
			n = room
		}
		if n == 0 {
			// A slice configured with no payload room at all (first_size
			// == header_size): rotate again immediately rather than spin
			// forever.
			if err := w.rotate(); err != nil {
				return total - len(p), err
			}
			continue
		}
		written, err := w.target.Write(p[:n])
		w.bytesInSlice += int64(written)
		w.pos += int64(written)
		p = p[written:]
		if err != nil {
			return total - len(p), err
		}
	}
	return total, nil
}

func (w *Writer) Read([]byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "slicer: Writer is write-only")
}

func (w *Writer) Skip(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "slicer: Writer does not support skip")
}

func (w *Writer) SkipRelative(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "slicer: Writer does not support skip")
}

func (w *Writer) SkipToEOF() error {
	return errors.New(uint16(Unsupported), "slicer: Writer does not support skip")
}

func (w *Writer) Skippable(stream.Direction, int64) bool {
	return false
}

func (w *Writer) GetPosition() (int64, error) {
	return w.pos, nil
}

func (w *Writer) ReadAhead(int64) {}

func (w *Writer) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "slicer: Writer does not support truncate")
}

func (w *Writer) SyncWrite() error {
	if w.target == nil {
		return nil
	}
	return w.target.SyncWrite()
}

func (w *Writer) FlushRead() {}

// Terminate closes the current slice (and its sidecar, if any).
func (w *Writer) Terminate() error {
	if !w.MarkTerminated() {
		return nil
	}
	if w.target == nil {
		return nil
	}
	if err := w.target.Terminate(); err != nil {
		return err
	}
	if w.sidecarFile != nil {
		return w.sidecarFile.Close()
	}
	return nil
}
