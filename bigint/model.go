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

// Package bigint implements the archive's unbounded-precision nonnegative
// integer, used pervasively for offsets, sizes and counts. It serializes to
// a self-delimiting big-endian byte sequence so no outer framing is needed
// to know where one value ends and the stream continues.
package bigint

import "math/big"

// Num is an unbounded-precision nonnegative integer. The zero value of Num
// is NOT valid; always obtain one from Zero, New or Read. Num wraps a
// *big.Int that callers must treat as immutable: every operation returns a
// new Num rather than mutating the receiver, so a Num is cheap and safe to
// copy by value and to share across goroutines.
type Num struct {
	v *big.Int
}

// Zero returns the Num value 0.
func Zero() Num {
	return Num{v: new(big.Int)}
}

// New builds a Num from any unsigned primitive value.
func New[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](a T) Num {
	return Num{v: new(big.Int).SetUint64(uint64(a))}
}

// clone returns a Num holding an independent copy of b, so later mutation
// of the big.Int we build it from can never leak into a previously
// returned Num.
func clone(b *big.Int) Num {
	return Num{v: new(big.Int).Set(b)}
}

// Copy returns a value receiving a fresh copy of n. Num is already
// immutable in practice, but Copy satisfies callers that want an
// explicit guarantee against accidental aliasing of the backing
// big.Int.
func (n Num) Copy() Num {
	return clone(n.v)
}

func (n Num) big() *big.Int {
	if n.v == nil {
		return new(big.Int)
	}
	return n.v
}

// IsZero reports whether n is the value 0.
func (n Num) IsZero() bool {
	return n.big().Sign() == 0
}

// Compare returns -1, 0 or +1 as n is less than, equal to, or greater than
// o, establishing the Num total order.
func (n Num) Compare(o Num) int {
	return n.big().Cmp(o.big())
}

func (n Num) String() string {
	return n.big().String()
}

// Uint64 returns n truncated to a uint64, and whether the truncation lost
// information (n required more than 64 bits to represent exactly).
func (n Num) Uint64() (uint64, bool) {
	b := n.big()
	if !b.IsUint64() {
		return b.Uint64(), true
	}
	return b.Uint64(), false
}
