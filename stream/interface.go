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

import "github/sabouaram/dargo/crc"

// Mode is the fixed access mode a Stream was opened with.
type Mode uint8

const (
	ReadOnly Mode = iota
	WriteOnly
	ReadWrite
)

// Direction is which way a Skippable hint or Skip call addresses.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// Stream is the common contract every layer of the archive I/O stack
// implements. A partial Read other than at EOF never happens; a Write
// either succeeds in full or returns an error. Terminate is idempotent at
// this interface's boundary: a second call is a no-op, not an error.
type Stream interface {
	// Mode reports the access mode this stream was opened with.
	Mode() Mode

	// Read fills p as far as possible, returning io.EOF only once no
	// further bytes remain; any read shorter than len(p) other than at
	// EOF is itself an error, never silently returned as partial.
	Read(p []byte) (n int, err error)

	// Write writes all of p or returns an error; it never partially
	// succeeds from the caller's point of view.
	Write(p []byte) (n int, err error)

	// Skip moves the cursor to absolute position pos. If pos lands past
	// EOF, the cursor is left at the nearest valid position and ok is
	// false.
	Skip(pos int64) (ok bool, err error)

	// SkipRelative moves the cursor by delta relative to its current
	// position; it is defined as GetPosition then Skip.
	SkipRelative(delta int64) (ok bool, err error)

	// SkipToEOF moves the cursor to the end of the stream.
	SkipToEOF() error

	// Skippable hints whether a Skip of amount bytes in dir is likely to
	// succeed, without performing it. It must return false for
	// unskippable transports (pipes), for ciphers whose lower layer
	// can't skip in that direction, and for any stream already
	// Terminate-d.
	Skippable(dir Direction, amount int64) bool

	// GetPosition returns the current absolute cursor position.
	GetPosition() (int64, error)

	// ReadAhead is a non-binding hint that n further bytes are likely to
	// be read soon.
	ReadAhead(n int64)

	// Truncate discards everything in the stream past pos.
	Truncate(pos int64) error

	// SyncWrite flushes any pending write-side buffering to the
	// underlying layer without terminating the stream.
	SyncWrite() error

	// FlushRead discards any pending read-side buffering, forcing the
	// next Read to fetch fresh data from the underlying layer.
	FlushRead()

	// Terminate performs the final flush; unlike SyncWrite it may fail
	// in ways that are only detectable once no further writes will
	// come (padding, trailers). A second call is a no-op.
	Terminate() error

	// ResetCRC begins CRC accumulation at the given width; Read and
	// Write update it until GetCRC is called.
	ResetCRC(width int) error

	// GetCRC returns the CRC accumulated since ResetCRC and disables
	// further accumulation; re-enabling requires a new ResetCRC.
	GetCRC() (crc.CRC, error)
}
