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

package bigint

import (
	"math/big"

	"github/sabouaram/dargo/errors"
)

// Add returns n + o.
func (n Num) Add(o Num) Num {
	return clone(new(big.Int).Add(n.big(), o.big()))
}

// Sub returns n - o. A result that would be negative is refused rather than
// wrapped, since Num has no sign.
func (n Num) Sub(o Num) (Num, error) {
	r := new(big.Int).Sub(n.big(), o.big())
	if r.Sign() < 0 {
		return Num{}, errors.New(uint16(Range), "subtraction underflows an unsigned BigInt")
	}
	return clone(r), nil
}

// Mul returns n * o.
func (n Num) Mul(o Num) Num {
	return clone(new(big.Int).Mul(n.big(), o.big()))
}

// Div returns n / o, truncated toward zero.
func (n Num) Div(o Num) (Num, error) {
	if o.IsZero() {
		return Num{}, errors.New(uint16(DivByZero), "division by zero")
	}
	return clone(new(big.Int).Quo(n.big(), o.big())), nil
}

// Mod returns n mod o.
func (n Num) Mod(o Num) (Num, error) {
	if o.IsZero() {
		return Num{}, errors.New(uint16(DivByZero), "modulo by zero")
	}
	return clone(new(big.Int).Rem(n.big(), o.big())), nil
}

// Shl returns n shifted left by bits bits (n * 2^bits).
func (n Num) Shl(bits uint) Num {
	return clone(new(big.Int).Lsh(n.big(), bits))
}

// Shr returns n shifted right by bits bits (n / 2^bits, truncated).
func (n Num) Shr(bits uint) Num {
	return clone(new(big.Int).Rsh(n.big(), bits))
}

// Unstack increments cur (capped at max) as much as possible by draining
// from n, and returns the updated counter together with what remains of n.
// It never lets cur exceed max and never drains more of n than cur has room
// for; a cur that reaches max while n still holds a remainder is not an
// error — callers that need to know the counter saturated check rest
// against zero themselves.
func (n Num) Unstack(cur, max uint64) (newCur uint64, rest Num) {
	room := max - cur
	if room == 0 {
		return cur, n.Copy()
	}
	v, overflow := n.Uint64()
	if !overflow && v <= room {
		return cur + v, Zero()
	}
	remainder, err := n.Sub(New(room))
	if err != nil {
		return max, n.Copy()
	}
	return max, remainder
}
