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

// Package elastic implements the archive's random-padding buffers: blocks
// of filler bytes bracketed by marker bytes and a self-describing size,
// used before and after the encrypted region so the ciphertext's exact
// boundaries aren't visible to an attacker who only has the archive file.
package elastic

import "github/sabouaram/dargo/errors"

const (
	Corrupt errors.CodeError = iota + errors.MinPkgElastic
	Range
)

func init() {
	errors.RegisterIdFctMessage(Corrupt, getMessage)
	errors.RegisterKind(Corrupt, errors.KindCorruptArchive)
	errors.RegisterKind(Range, errors.KindRange)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Corrupt:
		return "elastic buffer marker or size field is malformed"
	case Range:
		return "elastic buffer padding length does not fit the size field"
	}
	return ""
}
