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

// Package pool provides the bounded pre-allocated object pool (Heap) and
// the order-preserving indexed handoff queue (Ratelier) the parallel
// pipelines (partronco, blockcompress) build their worker scheduling on.
package pool

import "github/sabouaram/dargo/errors"

const (
	Closed errors.CodeError = iota + errors.MinPkgPool
	Timeout
	Range
)

func init() {
	errors.RegisterIdFctMessage(Closed, getMessage)
	errors.RegisterKind(Closed, errors.KindThreadCancel)
	errors.RegisterKind(Timeout, errors.KindThreadCancel)
	errors.RegisterKind(Range, errors.KindRange)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Closed:
		return "pool: operation on a closed ratelier or heap"
	case Timeout:
		return "pool: cancellation requested while waiting"
	case Range:
		return "pool: invalid capacity or segment size"
	}
	return ""
}
