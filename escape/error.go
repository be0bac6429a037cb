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

// Package escape implements in-band mark framing over a byte stream: a
// fixed 8-byte magic plus a 1-byte discriminant identifies a mark, and any
// occurrence of the magic's first byte in raw data is escaped by doubling
// it so the decoder can always tell data from marks (self-synchronizing
// bit-stuffing). It backs seqt_file markers for sparsefile and will back
// the sequential catalogue markers in the archive trailer.
package escape

import "github/sabouaram/dargo/errors"

const (
	Corrupt errors.CodeError = iota + errors.MinPkgEscape
	Unsupported
	WrongMode
)

func init() {
	errors.RegisterIdFctMessage(Corrupt, getMessage)
	errors.RegisterKind(Corrupt, errors.KindCorruptArchive)
	errors.RegisterKind(Unsupported, errors.KindFeature)
	errors.RegisterKind(WrongMode, errors.KindBug)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Corrupt:
		return "escape stream: magic byte not followed by a valid escape or mark"
	case Unsupported:
		return "escape stream: operation not supported"
	case WrongMode:
		return "escape stream: operation not valid for this stream's mode"
	}
	return ""
}
