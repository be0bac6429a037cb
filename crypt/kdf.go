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

package crypt

import (
	"crypto/rand"
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"

	errors "github/sabouaram/dargo/errors"
)

// DefaultIterations is the PBKDF2 round count used when none is given.
const DefaultIterations = 200000

// DeriveKey stretches passphrase into a keyLen-byte key using PBKDF2-HMAC-SHA1
// salted with salt. keyLen must be 16, 24 or 32 (AES-128/192/256).
func DeriveKey(passphrase string, salt []byte, iterations, keyLen int) ([]byte, error) {
	if keyLen != 16 && keyLen != 24 && keyLen != 32 {
		return nil, errors.New(uint16(InvalidKeySize), "crypt: DeriveKey")
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keyLen, sha1.New), nil
}

// GenerateSalt returns n cryptographically random bytes, n in [8, 32].
func GenerateSalt(n int) ([]byte, error) {
	if n < 8 || n > 32 {
		return nil, errors.New(uint16(ShortSalt), "crypt: GenerateSalt")
	}
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.New(uint16(Range), "crypt: GenerateSalt", err)
	}
	return salt, nil
}
