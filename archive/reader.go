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
	"io"

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

// trailingWindow is how many trailing bytes of the archive Reader pulls
// into memory to locate the trailing elastic buffer and Terminator. It
// only needs to cover the default trailing elastic length plus a
// Terminator's worst-case size; archives using much larger trailing
// elastic buffers should pass a correspondingly larger WithElasticLengths
// at write time and are out of scope for the default window here.
const trailingWindow = 4096

// Reader is the read-side counterpart to Writer: it parses the clear
// Header and initial elastic buffer, then exposes the decrypted,
// decompressed, unescaped, hole-expanded logical stream written between
// WriteCatalogue's first byte and Close.
type Reader struct {
	under stream.Stream
	opts  options

	header Header
	shift  int64

	payload stream.Stream // innermost layer: SparseFile reader
	closed  bool
}

// NewReader parses under's Header and initial elastic buffer, derives the
// cipher key (if the archive is encrypted and WithPassphrase was given),
// and builds the full read-side stack. under must be positioned at the
// start of the archive.
func NewReader(under stream.Stream, opts ...Option) (*Reader, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	h, _, err := ReadHeader(under)
	if err != nil {
		return nil, err
	}
	if h.Cipher != CipherNone && h.Cipher != CipherAESCTRESSIV {
		return nil, errors.New(uint16(UnsupportedCipher), "archive: unrecognized cipher id in header")
	}
	if h.Cipher != CipherNone && o.passphrase == "" {
		return nil, errors.New(uint16(MissingPassphrase), "archive: archive is encrypted; WithPassphrase is required")
	}

	if _, err := elastic.ReadForward(under); err != nil {
		return nil, err
	}
	shift, err := under.GetPosition()
	if err != nil {
		return nil, err
	}

	r := &Reader{under: under, opts: o, header: h, shift: shift}

	var core *crypt.Core
	if h.Cipher != CipherNone {
		c, err := crypt.New(o.passphrase, h.Salt, h.Iterations, o.keySize, h.ClearBlockSize)
		if err != nil {
			return nil, err
		}
		core = c
	}

	protected := &nonTerminating{Stream: under}

	var encLayer stream.Stream = protected
	if h.Cipher != CipherNone {
		if o.workers > 1 {
			pt, err := partronco.New(protected, core, shift, h.Version, r.locateTrailing, o.workers)
			if err != nil {
				return nil, err
			}
			encLayer = pt
		} else {
			encLayer = tronco.New(protected, core, shift, h.Version, r.locateTrailing)
		}
	}

	var compLayer stream.Stream
	if o.workers > 1 {
		pc, err := blockcompress.NewParDecompressor(encLayer, h.Compression, o.workers)
		if err != nil {
			return nil, err
		}
		compLayer = pc
	} else {
		compLayer = blockcompress.NewDecompressor(encLayer, h.Compression)
	}

	esc := escape.New(compLayer, stream.ReadOnly)
	r.payload = sparsefile.NewReader(esc)

	o.log.WithField("cipher", h.Cipher).WithField("compression", h.Compression.String()).
		Debug("archive: reader opened")

	return r, nil
}

// locateTrailing is the tronco.TrailingClearDataFunc for the read side.
// It seeks under to a window at the end of the archive, parses the
// Terminator backward to recover the catalogue offset and where the
// Terminator's own header begins, then parses the bytes preceding it as a
// backward elastic buffer to find the first byte past the encrypted
// region. under's cursor is restored to its entry position before
// returning, since Tronco/ParTronco call this mid-sequential-read.
func (r *Reader) locateTrailing(under stream.Stream, version byte) (int64, error) {
	savedPos, err := under.GetPosition()
	if err != nil {
		return 0, err
	}

	if err := under.SkipToEOF(); err != nil {
		return 0, err
	}
	eof, err := under.GetPosition()
	if err != nil {
		return 0, err
	}

	window := int64(trailingWindow)
	if avail := eof - r.shift; window > avail {
		window = avail
	}
	if window <= 0 {
		return 0, errors.New(uint16(CatalogueOffsetMismatch), "archive: archive body too short to hold a trailing elastic buffer and a Terminator")
	}

	if _, err := under.Skip(eof - window); err != nil {
		return 0, err
	}
	tail := make([]byte, window)
	if _, err := io.ReadFull(under, tail); err != nil {
		return 0, errors.New(uint16(CatalogueOffsetMismatch), "archive: reading trailing window", err)
	}

	gotVersion, catOff, headerStart, err := terminator.ReadBackward(tail)
	if err != nil {
		return 0, err
	}
	if gotVersion != version {
		return 0, errors.New(uint16(UnsupportedVersion), "archive: Terminator format version does not match the archive header")
	}

	_, elasticTotal, err := elastic.ReadBackward(tail[:headerStart])
	if err != nil {
		return 0, err
	}
	trailingClearStart := eof - window + int64(headerStart) - int64(elasticTotal)

	gotShift, ok := catOff.Uint64()
	if !ok || int64(gotShift) != r.shift {
		return 0, errors.New(uint16(CatalogueOffsetMismatch), "archive: Terminator's catalogue offset does not match the header's encrypted-region shift")
	}

	if _, err := under.Skip(savedPos); err != nil {
		return 0, err
	}
	return trailingClearStart, nil
}

// ReadCatalogue reads from the start of the logical stream; it is an
// alias for Read kept for symmetry with Writer.WriteCatalogue, since
// WriteCatalogue and WriteFile share one continuous stream on the write
// side too.
func (r *Reader) ReadCatalogue(p []byte) (int, error) {
	return r.Read(p)
}

// Read reads decrypted, decompressed, unescaped, hole-expanded bytes from
// the archive body, reporting progress via the Progress option, if any.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.New(uint16(NotOpen), "archive: Reader already closed")
	}
	n, err := r.payload.Read(p)
	if n > 0 {
		r.opts.progress.Increment(int64(n))
	}
	return n, err
}

// Skip forwards to the sparse-file payload reader, which does not support
// skipping, so it always returns that reader's Unsupported error and the
// cursor does not move.
func (r *Reader) Skip(pos int64) (bool, error) {
	return r.payload.Skip(pos)
}

// GetPosition returns the current logical read cursor.
func (r *Reader) GetPosition() (int64, error) {
	return r.payload.GetPosition()
}

// SkipToEOF forwards to the sparse-file payload reader, which does not
// support skipping, so it always returns that reader's Unsupported error
// and the cursor does not move.
func (r *Reader) SkipToEOF() error {
	return r.payload.SkipToEOF()
}

// CatalogueOffset returns the absolute position in under at which the
// encrypted region begins, recovered from the header and initial elastic
// buffer rather than from the Terminator.
func (r *Reader) CatalogueOffset() int64 { return r.shift }

// Header returns the clear Header parsed at construction, for callers
// (cmd/dargo's stats subcommand) that report archive metadata without
// reading the whole body.
func (r *Reader) Header() Header { return r.header }

// Close terminates every layer of the read stack, flushing any buffered
// partial block, then terminates under. It is not idempotent: a second
// call returns NotOpen.
func (r *Reader) Close() error {
	if r.closed {
		return errors.New(uint16(NotOpen), "archive: Reader already closed")
	}
	r.closed = true

	if err := r.payload.Terminate(); err != nil {
		return err
	}
	r.opts.progress.Done()
	return r.under.Terminate()
}
