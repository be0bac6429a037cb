/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package streamcompress

import (
	"io"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// flusher is implemented by the gzip, lz4 and zstd writers; bzip2 and xz
// have no mid-stream flush so SyncWrite falls back to a no-op for them.
type flusher interface {
	Flush() error
}

// Stream wraps under with algo, compressing on Write or decompressing on
// Read. SuspendCompression lets a caller write or read a span of bytes
// directly against under - for payloads the caller already compressed,
// or plain data that should not be - closing the current codec frame;
// ResumeCompression opens a fresh one. gzip, bzip2, xz and zstd all
// decode a concatenation of independent frames transparently, so the
// result remains a single valid stream in that algorithm's format.
type Stream struct {
	stream.Base
	under     stream.Stream
	algo      Algorithm
	suspended bool
	writer    io.WriteCloser
	reader    io.ReadCloser
	pos       int64
}

// New wraps under with algo: op selects whether the returned Stream
// compresses data written to it (Compress) or decompresses data read
// from it (Decompress). under's own mode only needs to permit that one
// direction; it may be ReadWrite.
func New(under stream.Stream, algo Algorithm, op operation) (*Stream, error) {
	var mode stream.Mode
	switch op {
	case Compress:
		mode = stream.WriteOnly
	case Decompress:
		mode = stream.ReadOnly
	default:
		return nil, errors.New(uint16(InvalidOperation), "streamcompress: choose Compress or Decompress")
	}

	s := &Stream{Base: stream.NewBase(mode), under: under, algo: algo}
	if err := s.openCodec(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream) openCodec() error {
	switch s.Mode() {
	case stream.WriteOnly:
		w, err := s.algo.Writer(newWCloser(s.under))
		if err != nil {
			return err
		}
		s.writer = w
	case stream.ReadOnly:
		r, err := s.algo.Reader(s.under)
		if err != nil {
			return err
		}
		s.reader = r
	}
	return nil
}

// SuspendCompression closes the current codec frame and routes further
// Write or Read calls directly to the underlying stream, uncompressed.
func (s *Stream) SuspendCompression() error {
	if s.suspended {
		return nil
	}
	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			return err
		}
		s.writer = nil
	}
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			return err
		}
		s.reader = nil
	}
	s.suspended = true
	return nil
}

// ResumeCompression opens a fresh codec frame over the underlying
// stream's current position, undoing SuspendCompression.
func (s *Stream) ResumeCompression() error {
	if !s.suspended {
		return nil
	}
	s.suspended = false
	return s.openCodec()
}

// Suspended reports whether the stream is currently passing data
// through uncompressed.
func (s *Stream) Suspended() bool {
	return s.suspended
}

func (s *Stream) Write(p []byte) (int, error) {
	if err := s.CheckMode(stream.WriteOnly); err != nil {
		return 0, err
	}
	var (
		n   int
		err error
	)
	if s.suspended {
		n, err = s.under.Write(p)
	} else {
		n, err = s.writer.Write(p)
	}
	if n > 0 {
		s.UpdateCRC(s.pos, p[:n])
		s.pos += int64(n)
	}
	return n, err
}

func (s *Stream) Read(p []byte) (int, error) {
	if err := s.CheckMode(stream.ReadOnly); err != nil {
		return 0, err
	}
	var (
		n   int
		err error
	)
	if s.suspended {
		n, err = s.under.Read(p)
	} else {
		n, err = s.reader.Read(p)
	}
	if n > 0 {
		s.UpdateCRC(s.pos, p[:n])
		s.pos += int64(n)
	}
	return n, err
}

// Skip, SkipRelative and Truncate are unsupported: a compressed byte
// offset has no fixed relationship to its decompressed counterpart.
func (s *Stream) Skip(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "streamcompress: skip is not supported on a compressing stream")
}

func (s *Stream) SkipRelative(int64) (bool, error) {
	return false, errors.New(uint16(Unsupported), "streamcompress: skip is not supported on a compressing stream")
}

// SkipToEOF drains the remainder of a read-only stream without buffering it.
func (s *Stream) SkipToEOF() error {
	if err := s.CheckMode(stream.ReadOnly); err != nil {
		return err
	}
	buf := make([]byte, 64*1024)
	for {
		_, err := s.Read(buf)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Stream) Skippable(stream.Direction, int64) bool {
	return false
}

func (s *Stream) GetPosition() (int64, error) {
	return s.pos, nil
}

func (s *Stream) ReadAhead(n int64) {
	s.under.ReadAhead(n)
}

func (s *Stream) Truncate(int64) error {
	return errors.New(uint16(Unsupported), "streamcompress: truncate is not supported on a compressing stream")
}

// SyncWrite flushes the pending codec frame if the algorithm supports a
// mid-stream flush, then syncs the underlying stream.
func (s *Stream) SyncWrite() error {
	if f, ok := s.writer.(flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return s.under.SyncWrite()
}

func (s *Stream) FlushRead() {
	s.under.FlushRead()
}

// Terminate closes the current codec frame and terminates under.
func (s *Stream) Terminate() error {
	if !s.MarkTerminated() {
		return nil
	}
	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			return err
		}
	}
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			return err
		}
	}
	return s.under.Terminate()
}
