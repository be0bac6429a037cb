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

// Package stream defines the common contract every byte-level component of
// the archive engine implements: a Stream with a fixed mode, skip/truncate
// semantics, an optional running CRC, and idempotent termination. Slicer,
// Tronco, the compressors, EscapeStream, SparseFile and Hider all
// satisfy this interface so they can be layered on top of one another.
package stream

import "github/sabouaram/dargo/errors"

const (
	DoubleTerminate errors.CodeError = iota + errors.MinPkgStream
	WrongMode
	PartialWrite
	Unsupported
	NoCRC
	IOError
)

func init() {
	errors.RegisterIdFctMessage(DoubleTerminate, getMessage)
	errors.RegisterKind(DoubleTerminate, errors.KindBug)
	errors.RegisterKind(WrongMode, errors.KindBug)
	errors.RegisterKind(PartialWrite, errors.KindCorruptArchive)
	errors.RegisterKind(Unsupported, errors.KindFeature)
	errors.RegisterKind(NoCRC, errors.KindBug)
	errors.RegisterKind(IOError, errors.KindSliceMissing)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case DoubleTerminate:
		return "stream terminated more than once"
	case WrongMode:
		return "operation not valid for this stream's mode"
	case PartialWrite:
		return "underlying writer accepted fewer bytes than requested"
	case Unsupported:
		return "operation not supported by this stream"
	case NoCRC:
		return "CRC requested but no reset_crc was ever called"
	case IOError:
		return "underlying file operation failed"
	}
	return ""
}
