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
	"github/sabouaram/dargo/logger"
	"github/sabouaram/dargo/streamcompress"
)

type options struct {
	passphrase        string
	salt              []byte
	saltSize          int
	iterations        int
	keySize           int
	clearBlockSize    int
	compression       streamcompress.Algorithm
	initialElasticLen int
	trailingElasticLen int
	minHoleSize       int64
	workers           int
	log               logger.Logger
	progress          Progress
}

func defaultOptions() options {
	return options{
		saltSize:           16,
		iterations:         0, // 0 -> crypt.DefaultIterations
		keySize:            32,
		clearBlockSize:     32 * 1024,
		compression:        streamcompress.Gzip,
		initialElasticLen:  64,
		trailingElasticLen: 64,
		minHoleSize:        512,
		workers:            1,
		log:                logger.Discard(),
		progress:           noopProgress{},
	}
}

// Option configures a Writer or Reader.
type Option func(*options)

// WithPassphrase enables AES-CTR-ESSIV encryption (component G) keyed by
// a PBKDF2 derivation of passphrase. Without this option the archive body
// is written in the clear (Cipher = CipherNone).
func WithPassphrase(passphrase string) Option {
	return func(o *options) { o.passphrase = passphrase }
}

// WithSalt fixes the KDF salt instead of generating one randomly; mostly
// useful for deterministic tests.
func WithSalt(salt []byte) Option {
	return func(o *options) { o.salt = salt }
}

// WithSaltSize sets the random salt length in bytes (8-32) used when
// WithSalt isn't given.
func WithSaltSize(n int) Option {
	return func(o *options) { o.saltSize = n }
}

// WithIterations sets the PBKDF2 round count.
func WithIterations(n int) Option {
	return func(o *options) { o.iterations = n }
}

// WithKeySize selects AES-128/192/256 (16/24/32 bytes).
func WithKeySize(n int) Option {
	return func(o *options) { o.keySize = n }
}

// WithClearBlockSize sets the per-block cleartext size shared by the
// cipher and block compressor.
func WithClearBlockSize(n int) Option {
	return func(o *options) { o.clearBlockSize = n }
}

// WithCompression selects the per-block compression algorithm.
func WithCompression(a streamcompress.Algorithm) Option {
	return func(o *options) { o.compression = a }
}

// WithElasticLengths overrides the initial and trailing elastic buffer
// sizes (in bytes of random filler, before framing overhead).
func WithElasticLengths(initial, trailing int) Option {
	return func(o *options) { o.initialElasticLen, o.trailingElasticLen = initial, trailing }
}

// WithMinHoleSize sets SparseFile's minimum zero-run length before it is
// turned into a hole marker.
func WithMinHoleSize(n int64) Option {
	return func(o *options) { o.minHoleSize = n }
}

// WithWorkers selects the parallel Tronco/BlockCompressor pipeline with n
// workers; n <= 1 uses the single-threaded Tronco/Compressor path.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger attaches a structured logger; the default discards every
// line.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithProgress attaches a byte-progress sink; the default is a no-op.
func WithProgress(p Progress) Option {
	return func(o *options) {
		if p != nil {
			o.progress = p
		}
	}
}
