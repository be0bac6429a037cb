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

package archive

import (
	"crypto/rand"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/blockcompress"
	"github/sabouaram/dargo/crypt"
	"github/sabouaram/dargo/elastic"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/escape"
	"github/sabouaram/dargo/partronco"
	"github/sabouaram/dargo/sparsefile"
	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/terminator"
	"github/sabouaram/dargo/tronco"
)

// Writer produces one archive body on top of under: the clear Header, an
// initial elastic buffer, the encrypted+compressed+escaped+sparse-coded
// region (catalogue bytes via WriteCatalogue, then file content via
// WriteFile), a trailing elastic buffer, and finally a Terminator
// encoding where the encrypted region began, per spec.md §6.
//
// under is typically a *stream.File or a *slicer.Writer; Writer itself
// has no opinion about slicing or disk layout, only about the bytes that
// flow through it.
type Writer struct {
	under stream.Stream
	opts  options

	header Header
	shift  int64

	payload stream.Stream // innermost layer: SparseFile writer
	closed  bool
}

// NewWriter derives the cipher key (if WithPassphrase was given), writes
// the clear Header and initial elastic buffer to under, and builds the
// full write-side stack so WriteCatalogue/WriteFile can begin.
func NewWriter(under stream.Stream, opts ...Option) (*Writer, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	h := Header{
		Version:        CurrentVersion,
		Compression:    o.compression,
		ClearBlockSize: o.clearBlockSize,
	}

	var core *crypt.Core
	if o.passphrase != "" {
		h.Cipher = CipherAESCTRESSIV
		salt := o.salt
		if len(salt) == 0 {
			s, err := crypt.GenerateSalt(o.saltSize)
			if err != nil {
				return nil, err
			}
			salt = s
		}
		h.Salt = salt

		iterations := o.iterations
		if iterations <= 0 {
			iterations = crypt.DefaultIterations
		}
		h.Iterations = iterations

		c, err := crypt.New(o.passphrase, salt, iterations, o.keySize, o.clearBlockSize)
		if err != nil {
			return nil, err
		}
		core = c
	} else {
		h.Cipher = CipherNone
	}
	h.InitialElasticLen = o.initialElasticLen

	if _, err := WriteHeader(under, h); err != nil {
		return nil, err
	}
	if _, err := elastic.WriteForward(under, o.initialElasticLen, rand.Reader); err != nil {
		return nil, err
	}

	shift, err := under.GetPosition()
	if err != nil {
		return nil, err
	}

	protected := &nonTerminating{Stream: under}

	var encLayer stream.Stream = protected
	if h.Cipher != CipherNone {
		if o.workers > 1 {
			pt, err := partronco.New(protected, core, shift, h.Version, nil, o.workers)
			if err != nil {
				return nil, err
			}
			encLayer = pt
		} else {
			encLayer = tronco.New(protected, core, shift, h.Version, nil)
		}
	}

	var compLayer stream.Stream
	if o.workers > 1 {
		pc, err := blockcompress.NewParCompressor(encLayer, o.compression, o.clearBlockSize, o.workers)
		if err != nil {
			return nil, err
		}
		compLayer = pc
	} else {
		c, err := blockcompress.NewCompressor(encLayer, o.compression, o.clearBlockSize)
		if err != nil {
			return nil, err
		}
		compLayer = c
	}

	esc := escape.New(compLayer, stream.WriteOnly)
	sf := sparsefile.NewWriter(esc, o.minHoleSize)

	o.log.WithField("cipher", h.Cipher).WithField("compression", h.Compression.String()).
		Debug("archive: writer opened")

	return &Writer{under: under, opts: o, header: h, shift: shift, payload: sf}, nil
}

// WriteCatalogue writes the archive's catalogue bytes. The catalogue's
// own structure (inode/EA/FSA entries) is an external collaborator per
// spec.md §1; this package only guarantees that whatever bytes are
// written here land first in the decrypted, decompressed, unescaped
// logical stream a Reader exposes.
func (w *Writer) WriteCatalogue(p []byte) (int, error) {
	return w.WriteFile(p)
}

// WriteFile writes file content bytes, continuing the same logical
// stream WriteCatalogue started. It reports progress via the Progress
// option, if any.
func (w *Writer) WriteFile(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New(uint16(AlreadyClosed), "archive: Writer already closed")
	}
	n, err := w.payload.Write(p)
	if n > 0 {
		w.opts.progress.Increment(int64(n))
	}
	return n, err
}

// Close flushes every layer of the stack, writes the trailing elastic
// buffer and the Terminator encoding the encrypted region's start
// offset, and terminates under. It is not idempotent: a second call
// returns AlreadyClosed.
func (w *Writer) Close() error {
	if w.closed {
		return errors.New(uint16(AlreadyClosed), "archive: Writer already closed")
	}
	w.closed = true

	if err := w.payload.Terminate(); err != nil {
		return err
	}
	if _, err := elastic.WriteBackward(w.under, w.opts.trailingElasticLen, rand.Reader); err != nil {
		return err
	}
	if _, err := terminator.Write(w.under, bigint.New(uint64(w.shift))); err != nil {
		return err
	}
	w.opts.progress.Done()
	w.opts.log.WithField("catalogue_offset", w.shift).Debug("archive: writer closed")
	return w.under.Terminate()
}

// CatalogueOffset returns the absolute position in under at which the
// encrypted region begins; it is also what the Terminator encodes.
func (w *Writer) CatalogueOffset() int64 { return w.shift }
