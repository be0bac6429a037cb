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

// Package crypt derives block cipher keys from a passphrase and encrypts
// or decrypts fixed-size blocks with an ESSIV-like per-block IV.
package crypt

import errors "github/sabouaram/dargo/errors"

const (
	InvalidKeySize errors.CodeError = iota + errors.MinPkgCrypt
	Range
	ShortSalt
)

func init() {
	errors.RegisterIdFctMessage(InvalidKeySize, getMessage)
	errors.RegisterKind(InvalidKeySize, errors.KindRange)
	errors.RegisterKind(Range, errors.KindRange)
	errors.RegisterKind(ShortSalt, errors.KindRange)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case InvalidKeySize:
		return "crypt: key size must be 16, 24 or 32 bytes (AES-128/192/256)"
	case Range:
		return "crypt: destination buffer too small"
	case ShortSalt:
		return "crypt: salt must be between 8 and 32 bytes"
	}

	return ""
}
