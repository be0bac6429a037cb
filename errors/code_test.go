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

package errors_test

import (
	. "github/sabouaram/dargo/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	testRangeA CodeError = 9000 + iota
	testRangeACodeOne
	testRangeACodeTwo
)

const testRangeB CodeError = 9100

var _ = Describe("RegisterIdFctMessage / Describe", func() {
	BeforeEach(func() {
		RegisterIdFctMessage(testRangeA, func(code CodeError) string {
			switch code {
			case testRangeACodeOne:
				return "first"
			case testRangeACodeTwo:
				return "second"
			default:
				return "range-a"
			}
		})
		RegisterIdFctMessage(testRangeB, func(code CodeError) string {
			return "range-b"
		})
	})

	It("resolves a code to the message function of its own range", func() {
		Expect(Describe(testRangeACodeOne)).To(Equal("first"))
		Expect(Describe(testRangeACodeTwo)).To(Equal("second"))
	})

	It("picks the greatest registered range start at or below the code", func() {
		Expect(Describe(testRangeB + 1)).To(Equal("range-b"))
		Expect(Describe(testRangeA + 50)).To(Equal("range-a"))
	})

	It("returns empty for a code below any registered range", func() {
		Expect(Describe(CodeError(1))).To(Equal(""))
	})
})
