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

package config

import "github/sabouaram/dargo/streamcompress"

// Settings holds every tunable of the archive engine that a human or a
// config file can set: the per-block clear size shared by the cipher and
// the block compressor, the compression algorithm, the PBKDF2 iteration
// count, and the slicing layout.
type Settings struct {
	// ClearBlockSize is the per-block cleartext size fed to crypt.Core
	// and to the block compressor, in bytes.
	ClearBlockSize int `mapstructure:"clear_block_size"`

	// Compression selects the per-block compression algorithm; None
	// disables block compression entirely.
	Compression streamcompress.Algorithm `mapstructure:"compression"`

	// KeyDerivationHash names a hash for the PBKDF2 key derivation
	// ("sha1" by default). It is loaded but neither validated nor
	// used: crypt.DeriveKey always derives with HMAC-SHA1.
	KeyDerivationHash string `mapstructure:"kdf_hash"`

	// Iterations is the PBKDF2 iteration count.
	Iterations int `mapstructure:"iterations"`

	// SaltSize is the random salt length in bytes, 8-32 inclusive.
	SaltSize int `mapstructure:"salt_size"`

	// FirstSliceSize and OtherSliceSize are the Slicer's per-slice
	// capacities, including each slice's header.
	FirstSliceSize int64 `mapstructure:"first_slice_size"`
	OtherSliceSize int64 `mapstructure:"other_slice_size"`

	// MinDigits zero-pads the slice number in every slice file name.
	MinDigits int `mapstructure:"min_digits"`

	// MinHoleSize is the minimum run of zero bytes SparseFile turns
	// into a hole marker instead of writing literally.
	MinHoleSize int64 `mapstructure:"min_hole_size"`

	// HashSidecar, when non-empty, names the hashedsink algorithm
	// ("md5", "sha1", "sha512") paired with every slice.
	HashSidecar string `mapstructure:"hash_sidecar"`

	// Workers is the worker-goroutine count handed to ParTronco and
	// the parallel block compressor; 0 or 1 selects the single-
	// threaded Tronco/Compressor path instead.
	Workers int `mapstructure:"workers"`
}

// Default returns the archive engine's out-of-the-box tunables, chosen to
// match spec.md §4.G's "tens of KiB" clear block size and DAR's own
// historical SHA-1/PBKDF2 defaults.
func Default() Settings {
	return Settings{
		ClearBlockSize: 32 * 1024,
		Compression:    streamcompress.Gzip,
		KeyDerivationHash: "sha1",
		Iterations:     100_000,
		SaltSize:       16,
		FirstSliceSize: 0, // 0 means unsliced, single-file archive
		OtherSliceSize: 0,
		MinDigits:      3,
		MinHoleSize:    512,
		HashSidecar:    "",
		Workers:        1,
	}
}

func (s Settings) validate() error {
	if s.ClearBlockSize <= 0 {
		return newInvalid("clear_block_size must be > 0")
	}
	if s.Iterations <= 0 {
		return newInvalid("iterations must be > 0")
	}
	if s.SaltSize < 8 || s.SaltSize > 32 {
		return newInvalid("salt_size must be between 8 and 32")
	}
	if s.MinDigits < 1 {
		return newInvalid("min_digits must be >= 1")
	}
	if s.Workers < 0 {
		return newInvalid("workers must be >= 0")
	}
	return nil
}
