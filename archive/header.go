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
	"bytes"
	"io"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/crc"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/streamcompress"
)

// magic identifies this module's archive format; it never appears in a
// DAR-compatible archive and exists only so a corrupted or truncated
// header is caught immediately instead of producing nonsense downstream.
var magic = [8]byte{'D', 'A', 'R', 'G', 'O', 'A', 'R', 'C'}

// Cipher identifies the archive's encryption algorithm.
type Cipher uint8

const (
	// CipherNone leaves the archive body unencrypted: no Tronco/ParTronco
	// layer is inserted, and no passphrase is required.
	CipherNone Cipher = iota
	// CipherAESCTRESSIV is the crypt package's AES-CTR-with-ESSIV-IV
	// scheme (component G).
	CipherAESCTRESSIV
)

// CurrentVersion is the header format version this package writes.
const CurrentVersion byte = 1

// Header is the archive's clear (unencrypted) leading section: the
// algorithm choices, salt and iteration count needed to derive the
// cipher key, and the length of the initial elastic buffer that follows
// it on disk.
type Header struct {
	Version           byte
	Cipher            Cipher
	Compression       streamcompress.Algorithm
	Salt              []byte
	Iterations        int
	ClearBlockSize    int
	InitialElasticLen int
}

// WriteHeader serializes h to w: magic, version, cipher id, compression
// id, then BigInt-length-prefixed salt, iterations, clear block size and
// initial elastic buffer length, followed by a CRC-32-equivalent (width 4)
// checksum of everything written before it. It returns the number of
// bytes written.
func WriteHeader(w io.Writer, h Header) (int64, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(h.Version)
	buf.WriteByte(byte(h.Cipher))
	buf.WriteByte(byte(h.Compression))

	if _, err := bigint.New(uint64(len(h.Salt))).Write(&buf); err != nil {
		return 0, err
	}
	buf.Write(h.Salt)

	if _, err := bigint.New(uint64(h.Iterations)).Write(&buf); err != nil {
		return 0, err
	}
	if _, err := bigint.New(uint64(h.ClearBlockSize)).Write(&buf); err != nil {
		return 0, err
	}
	if _, err := bigint.New(uint64(h.InitialElasticLen)).Write(&buf); err != nil {
		return 0, err
	}

	c, err := crc.New(4)
	if err != nil {
		return 0, err
	}
	c.Compute(0, buf.Bytes())

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return 0, err
	}
	cn, err := c.Write(w)
	if err != nil {
		return 0, err
	}
	return int64(n) + cn, nil
}

// countingReader tallies every byte pulled through it so ReadHeader can
// report exactly how many bytes of the stream the header occupied.
type countingReader struct {
	r   io.Reader
	n   int64
	buf bytes.Buffer
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	c.buf.Write(p[:n])
	return n, err
}

// ReadHeader parses a Header previously written by WriteHeader, verifying
// the magic and the trailing CRC. Corruption in either is reported as
// BadMagic / a CorruptArchive-kind error respectively.
func ReadHeader(r io.Reader) (Header, int64, error) {
	var h Header
	cr := &countingReader{r: r}

	var gotMagic [8]byte
	if _, err := io.ReadFull(cr, gotMagic[:]); err != nil {
		return h, cr.n, errors.New(uint16(BadMagic), "archive: reading header magic", err)
	}
	if gotMagic != magic {
		return h, cr.n, errors.New(uint16(BadMagic), "archive: header magic mismatch")
	}

	var hdr [3]byte
	if _, err := io.ReadFull(cr, hdr[:]); err != nil {
		return h, cr.n, errors.New(uint16(BadMagic), "archive: reading header fields", err)
	}
	h.Version = hdr[0]
	h.Cipher = Cipher(hdr[1])
	h.Compression = streamcompress.Algorithm(hdr[2])
	if h.Version != CurrentVersion {
		return h, cr.n, errors.New(uint16(UnsupportedVersion), "archive: header version")
	}

	saltLen, _, err := bigint.Read(cr)
	if err != nil {
		return h, cr.n, err
	}
	sl, ok := saltLen.Uint64()
	if !ok {
		return h, cr.n, errors.New(uint16(BadMagic), "archive: salt length overflow")
	}
	h.Salt = make([]byte, sl)
	if _, err := io.ReadFull(cr, h.Salt); err != nil {
		return h, cr.n, errors.New(uint16(BadMagic), "archive: reading salt", err)
	}

	iter, _, err := bigint.Read(cr)
	if err != nil {
		return h, cr.n, err
	}
	iu, _ := iter.Uint64()
	h.Iterations = int(iu)

	cbs, _, err := bigint.Read(cr)
	if err != nil {
		return h, cr.n, err
	}
	cu, _ := cbs.Uint64()
	h.ClearBlockSize = int(cu)

	iel, _, err := bigint.Read(cr)
	if err != nil {
		return h, cr.n, err
	}
	ieu, _ := iel.Uint64()
	h.InitialElasticLen = int(ieu)

	headerBytes := append([]byte(nil), cr.buf.Bytes()...)
	gotCRC, err := crc.Read(cr)
	if err != nil {
		return h, cr.n, err
	}
	wantCRC, err := crc.New(4)
	if err != nil {
		return h, cr.n, err
	}
	wantCRC.Compute(0, headerBytes)
	if !gotCRC.Equal(wantCRC) {
		return h, cr.n, errors.New(uint16(BadMagic), "archive: header CRC mismatch")
	}

	return h, cr.n, nil
}
