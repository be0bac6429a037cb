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

package hashedsink

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"

	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// Algorithm selects the incremental digest computed alongside the write.
type Algorithm int

const (
	MD5 Algorithm = iota
	SHA1
	SHA512
)

func newHash(a Algorithm) (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA512:
		return sha512.New(), nil
	}
	return nil, errors.New(uint16(Unsupported), "hashedsink: unknown algorithm")
}

// Sink wraps an underlying write Stream, forwarding every Write to it
// while feeding the bytes into an incremental digest; Terminate emits the
// digest into sidecar as "<hex digest>  <basename>\n", the layout
// standard md5sum/sha1sum/sha512sum tools read back.
type Sink struct {
	stream.Base
	under    stream.Stream
	sidecar  io.Writer
	basename string
	h        hash.Hash
}

// New wraps under (must be WriteOnly or ReadWrite) and will write the
// digest of everything passed to Write into sidecar on Terminate.
func New(under stream.Stream, sidecar io.Writer, basename string, algo Algorithm) (*Sink, error) {
	h, err := newHash(algo)
	if err != nil {
		return nil, err
	}
	return &Sink{Base: stream.NewBase(under.Mode()), under: under, sidecar: sidecar, basename: basename, h: h}, nil
}

func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.under.Write(p)
	if n > 0 {
		s.h.Write(p[:n])
	}
	if err != nil {
		return n, errors.New(uint16(Range), "hashedsink: underlying write failed", err)
	}
	return n, nil
}

func (s *Sink) Read(p []byte) (int, error) {
	return 0, errors.New(uint16(Unsupported), "hashedsink is write-only")
}

func (s *Sink) Skip(pos int64) (bool, error)         { return s.under.Skip(pos) }
func (s *Sink) SkipRelative(d int64) (bool, error)   { return s.under.SkipRelative(d) }
func (s *Sink) SkipToEOF() error                     { return s.under.SkipToEOF() }
func (s *Sink) Skippable(dir stream.Direction, n int64) bool {
	return s.under.Skippable(dir, n)
}
func (s *Sink) GetPosition() (int64, error) { return s.under.GetPosition() }
func (s *Sink) ReadAhead(n int64)           { s.under.ReadAhead(n) }
func (s *Sink) Truncate(pos int64) error    { return s.under.Truncate(pos) }
func (s *Sink) SyncWrite() error            { return s.under.SyncWrite() }
func (s *Sink) FlushRead()                  { s.under.FlushRead() }

// Terminate flushes the underlying stream and writes the digest line to
// the sidecar. It is idempotent.
func (s *Sink) Terminate() error {
	if !s.MarkTerminated() {
		return nil
	}
	if err := s.under.Terminate(); err != nil {
		return err
	}
	digest := hex.EncodeToString(s.h.Sum(nil))
	_, err := io.WriteString(s.sidecar, digest+"  "+s.basename+"\n")
	return err
}
