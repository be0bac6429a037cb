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

// Package archive wires every layer of the archive I/O stack (BigInt,
// Stream, Slicer, HashedSink, crypt, Tronco/ParTronco, BlockCompressor,
// EscapeStream, SparseFile, Terminator) into the top-level archive body
// format described in spec.md §6: a clear header, an initial elastic
// buffer, an encrypted+compressed+escaped+sparse-coded region holding the
// catalogue and file contents, a trailing elastic buffer, and a
// Terminator that bootstraps catalogue lookup.
package archive

import "github/sabouaram/dargo/errors"

const (
	UnsupportedCipher errors.CodeError = iota + errors.MinPkgArchive
	UnsupportedVersion
	BadMagic
	CatalogueOffsetMismatch
	AlreadyClosed
	NotOpen
	MissingPassphrase
)

func init() {
	errors.RegisterIdFctMessage(UnsupportedCipher, getMessage)
	errors.RegisterKind(UnsupportedCipher, errors.KindFeature)
	errors.RegisterKind(UnsupportedVersion, errors.KindCorruptArchive)
	errors.RegisterKind(BadMagic, errors.KindCorruptArchive)
	errors.RegisterKind(CatalogueOffsetMismatch, errors.KindCorruptArchive)
	errors.RegisterKind(AlreadyClosed, errors.KindBug)
	errors.RegisterKind(NotOpen, errors.KindBug)
	errors.RegisterKind(MissingPassphrase, errors.KindFeature)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case UnsupportedCipher:
		return "archive: cipher algorithm id not recognized"
	case UnsupportedVersion:
		return "archive: header format version not recognized"
	case BadMagic:
		return "archive: clear header magic does not match"
	case CatalogueOffsetMismatch:
		return "archive: terminator's catalogue offset does not match the header's encrypted-region shift"
	case AlreadyClosed:
		return "archive: Writer already closed"
	case NotOpen:
		return "archive: Reader has not located the catalogue yet"
	case MissingPassphrase:
		return "archive: archive body is encrypted but no passphrase was supplied"
	}
	return ""
}
