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

package stream

import (
	"io"
	"os"

	"github/sabouaram/dargo/errors"
)

// File is a Stream backed by a real, seekable os.File: the on-disk
// counterpart to Mem, used for slice files and the other real archive
// media this module's packages ultimately read and write.
type File struct {
	Base
	f *os.File
}

// CreateFile opens path for writing, truncating any existing content.
// mode must be WriteOnly or ReadWrite.
func CreateFile(path string, mode Mode) (*File, error) {
	flags := os.O_CREATE | os.O_TRUNC
	switch mode {
	case WriteOnly:
		flags |= os.O_WRONLY
	case ReadWrite:
		flags |= os.O_RDWR
	default:
		return nil, errors.New(uint16(WrongMode), "stream: CreateFile requires WriteOnly or ReadWrite")
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, errors.New(uint16(IOError), "stream: CreateFile "+path, err)
	}
	return &File{Base: NewBase(mode), f: f}, nil
}

// OpenFile opens an existing file at path. mode selects the access
// flags; ReadWrite does not truncate or create.
func OpenFile(path string, mode Mode) (*File, error) {
	var flags int
	switch mode {
	case ReadOnly:
		flags = os.O_RDONLY
	case WriteOnly:
		flags = os.O_WRONLY
	case ReadWrite:
		flags = os.O_RDWR
	default:
		return nil, errors.New(uint16(WrongMode), "stream: OpenFile invalid mode")
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, errors.New(uint16(IOError), "stream: OpenFile "+path, err)
	}
	return &File{Base: NewBase(mode), f: f}, nil
}

// OpenFileAppend opens path for writing positioned past its existing
// content, for the Resume case where a slice file from an interrupted
// run is being continued rather than overwritten.
func OpenFileAppend(path string, mode Mode) (*File, error) {
	var flags int
	switch mode {
	case WriteOnly:
		flags = os.O_WRONLY
	case ReadWrite:
		flags = os.O_RDWR
	default:
		return nil, errors.New(uint16(WrongMode), "stream: OpenFileAppend requires WriteOnly or ReadWrite")
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, errors.New(uint16(IOError), "stream: OpenFileAppend "+path, err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		_ = f.Close()
		return nil, errors.New(uint16(IOError), "stream: OpenFileAppend seek "+path, err)
	}
	return &File{Base: NewBase(mode), f: f}, nil
}

func (f *File) Read(p []byte) (int, error) {
	if err := f.CheckMode(ReadOnly, ReadWrite); err != nil {
		return 0, err
	}
	pos, _ := f.f.Seek(0, io.SeekCurrent)
	n, err := f.f.Read(p)
	if n > 0 {
		f.UpdateCRC(pos, p[:n])
	}
	if err != nil && err != io.EOF {
		return n, errors.New(uint16(IOError), "stream: File.Read", err)
	}
	return n, err
}

func (f *File) Write(p []byte) (int, error) {
	if err := f.CheckMode(WriteOnly, ReadWrite); err != nil {
		return 0, err
	}
	pos, _ := f.f.Seek(0, io.SeekCurrent)
	n, err := f.f.Write(p)
	if n > 0 {
		f.UpdateCRC(pos, p[:n])
	}
	if err != nil {
		return n, errors.New(uint16(IOError), "stream: File.Write", err)
	}
	return n, nil
}

func (f *File) Skip(pos int64) (bool, error) {
	if pos < 0 {
		pos = 0
	}
	info, err := f.f.Stat()
	if err != nil {
		return false, errors.New(uint16(IOError), "stream: File.Skip stat", err)
	}
	ok := pos <= info.Size()
	if !ok {
		pos = info.Size()
	}
	if _, err := f.f.Seek(pos, io.SeekStart); err != nil {
		return false, errors.New(uint16(IOError), "stream: File.Skip seek", err)
	}
	return ok, nil
}

func (f *File) SkipRelative(delta int64) (bool, error) {
	pos, err := f.GetPosition()
	if err != nil {
		return false, err
	}
	return f.Skip(pos + delta)
}

func (f *File) SkipToEOF() error {
	_, err := f.f.Seek(0, io.SeekEnd)
	if err != nil {
		return errors.New(uint16(IOError), "stream: File.SkipToEOF", err)
	}
	return nil
}

func (f *File) Skippable(_ Direction, _ int64) bool {
	return !f.Terminated()
}

func (f *File) GetPosition() (int64, error) {
	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.New(uint16(IOError), "stream: File.GetPosition", err)
	}
	return pos, nil
}

func (f *File) ReadAhead(int64) {}

func (f *File) Truncate(pos int64) error {
	if err := f.f.Truncate(pos); err != nil {
		return errors.New(uint16(IOError), "stream: File.Truncate", err)
	}
	cur, err := f.GetPosition()
	if err != nil {
		return err
	}
	if cur > pos {
		_, err = f.Skip(pos)
	}
	return err
}

func (f *File) SyncWrite() error {
	if err := f.f.Sync(); err != nil {
		return errors.New(uint16(IOError), "stream: File.SyncWrite", err)
	}
	return nil
}

func (f *File) FlushRead() {}

func (f *File) Terminate() error {
	if !f.MarkTerminated() {
		return nil
	}
	if f.Mode() != ReadOnly {
		if err := f.f.Sync(); err != nil {
			return errors.New(uint16(IOError), "stream: File.Terminate sync", err)
		}
	}
	if err := f.f.Close(); err != nil {
		return errors.New(uint16(IOError), "stream: File.Terminate close", err)
	}
	return nil
}

// Name returns the path File was opened with.
func (f *File) Name() string {
	return f.f.Name()
}
