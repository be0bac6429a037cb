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

package crypt_test

import (
	"bytes"
	"testing"

	"github/sabouaram/dargo/crypt"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1, err := crypt.DeriveKey("correct horse battery staple", salt, 1000, 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	k2, err := crypt.DeriveKey("correct horse battery staple", salt, 1000, 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatal("DeriveKey is not deterministic for identical inputs")
	}

	k3, _ := crypt.DeriveKey("different passphrase", salt, 1000, 32)
	if bytes.Equal(k1, k3) {
		t.Fatal("different passphrases produced the same key")
	}
}

func TestDeriveKeyRejectsBadSize(t *testing.T) {
	if _, err := crypt.DeriveKey("x", []byte("saltsaltsalt"), 10, 20); err == nil {
		t.Fatal("expected an error for an unsupported key size")
	}
}

func TestGenerateSaltRange(t *testing.T) {
	if _, err := crypt.GenerateSalt(4); err == nil {
		t.Fatal("expected an error for a too-short salt")
	}
	s, err := crypt.GenerateSalt(16)
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if len(s) != 16 {
		t.Fatalf("len(salt) = %d, want 16", len(s))
	}
}

func TestCoreEssivIVDistinctPerBlock(t *testing.T) {
	core, err := crypt.NewCore(bytes.Repeat([]byte{0x42}, 32), 16)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	plain := []byte("0123456789ABCDEF")
	var a, b [16]byte
	if err := core.EncryptBlock(0, a[:], plain); err != nil {
		t.Fatalf("EncryptBlock(0): %v", err)
	}
	if err := core.EncryptBlock(1, b[:], plain); err != nil {
		t.Fatalf("EncryptBlock(1): %v", err)
	}
	if bytes.Equal(a[:], b[:]) {
		t.Fatal("identical plaintext encrypted under different block numbers produced identical ciphertext")
	}
}

func TestCoreEncryptDecryptRoundTrip(t *testing.T) {
	core, err := crypt.NewCore(bytes.Repeat([]byte{0x17}, 32), 16)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	plain := []byte("the quick brown ")
	var enc, dec [16]byte
	if err := core.EncryptBlock(42, enc[:], plain); err != nil {
		t.Fatalf("EncryptBlock: %v", err)
	}
	if err := core.DecryptBlock(42, dec[:], enc[:]); err != nil {
		t.Fatalf("DecryptBlock: %v", err)
	}
	if !bytes.Equal(dec[:], plain) {
		t.Fatalf("round trip mismatch: got %q, want %q", dec, plain)
	}
}

func TestBlockReaderWriterRoundTrip(t *testing.T) {
	core, err := crypt.NewCore(bytes.Repeat([]byte{0x99}, 16), 8)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	var ciphertext bytes.Buffer
	w := crypt.NewBlockWriter(core, &ciphertext, 0)

	blocks := [][]byte{[]byte("12345678"), []byte("abcdefgh"), []byte("ZZZZZZZZ")}
	for _, b := range blocks {
		if _, err := w.Write(b); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	r := crypt.NewBlockReader(core, bytes.NewReader(ciphertext.Bytes()), 0)
	for i, want := range blocks {
		got := make([]byte, 8)
		n, err := r.Read(got)
		if err != nil {
			t.Fatalf("Read(%d): %v", i, err)
		}
		if n != 8 || !bytes.Equal(got, want) {
			t.Fatalf("block %d = %q, want %q", i, got[:n], want)
		}
	}
}

func TestNewDerivesAndBuildsCore(t *testing.T) {
	salt, err := crypt.GenerateSalt(16)
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	core, err := crypt.New("a passphrase", salt, 1000, 32, 4096)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if core.BlockSize() != 4096 {
		t.Fatalf("BlockSize = %d, want 4096", core.BlockSize())
	}
}
