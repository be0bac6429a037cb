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
	"strings"

	. "github/sabouaram/dargo/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("call site capture", func() {
	It("reports this test file, not errors.go, as the call site", func() {
		err := New(1, "boom")
		Expect(err.Error()).To(ContainSubstring("errors/trace_test.go"))
		Expect(err.Error()).NotTo(ContainSubstring("errors/errors.go"))
	})

	It("trims the captured path to its last two segments", func() {
		err := New(1, "boom")
		msg := err.Error()
		start := strings.Index(msg, "(")
		Expect(start).To(BeNumerically(">=", 0))
		trace := msg[start+1:]
		Expect(trace).To(HavePrefix("errors/trace_test.go:"))
		Expect(strings.Count(trace, "/")).To(Equal(1))
	})
})
