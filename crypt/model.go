/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"encoding/binary"

	errors "github/sabouaram/dargo/errors"
)

// Core encrypts and decrypts fixed-size blocks in place with AES-CTR,
// deriving each block's IV from its block number the way dm-crypt's ESSIV
// mode does: the IV is the block number encrypted with a secondary AES key
// obtained by hashing the main key with SHA-1. Two blocks never reuse an
// IV as long as their block numbers differ, so a single key can cipher an
// arbitrarily long stream of independently-seekable blocks without a GCM
// nonce-reuse hazard.
type Core struct {
	block     cipher.Block
	essivKey  cipher.Block
	blockSize int
}

// NewCore builds a Core from key (16, 24 or 32 bytes) for blocks of
// clearBlockSize bytes.
func NewCore(key []byte, clearBlockSize int) (*Core, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, errors.New(uint16(InvalidKeySize), "crypt: NewCore")
	}
	if clearBlockSize <= 0 {
		return nil, errors.New(uint16(Range), "crypt: NewCore block size")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.New(uint16(InvalidKeySize), "crypt: NewCore", err)
	}

	sum := sha1.Sum(key)
	essivKey, err := aes.NewCipher(sum[:aes.BlockSize])
	if err != nil {
		return nil, errors.New(uint16(InvalidKeySize), "crypt: NewCore essiv key", err)
	}

	return &Core{block: block, essivKey: essivKey, blockSize: clearBlockSize}, nil
}

// BlockSize returns the configured clear block size.
func (c *Core) BlockSize() int {
	return c.blockSize
}

// essivIV derives the per-block IV by encrypting the big-endian block
// number, zero-padded to the cipher block size, with essivKey.
func (c *Core) essivIV(blockNum uint64) []byte {
	sector := make([]byte, aes.BlockSize)
	binary.BigEndian.PutUint64(sector[aes.BlockSize-8:], blockNum)
	iv := make([]byte, aes.BlockSize)
	c.essivKey.Encrypt(iv, sector)
	return iv
}

// EncryptBlock ciphers src into dst under blockNum's derived IV. dst and
// src may overlap completely (in-place) or alias nothing at all; dst must
// be at least len(src) bytes.
func (c *Core) EncryptBlock(blockNum uint64, dst, src []byte) error {
	if len(dst) < len(src) {
		return errors.New(uint16(Range), "crypt: EncryptBlock")
	}
	stream := cipher.NewCTR(c.block, c.essivIV(blockNum))
	stream.XORKeyStream(dst[:len(src)], src)
	return nil
}

// DecryptBlock is identical to EncryptBlock: AES-CTR is its own inverse
// given the same key stream.
func (c *Core) DecryptBlock(blockNum uint64, dst, src []byte) error {
	return c.EncryptBlock(blockNum, dst, src)
}
