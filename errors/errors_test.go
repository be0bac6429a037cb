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
	stderrors "errors"
	"fmt"

	. "github/sabouaram/dargo/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("New/Newf", func() {
	It("carries the given code and message", func() {
		err := New(42, "boom")

		var e Error
		Expect(stderrors.As(err, &e)).To(BeTrue())
		Expect(e.Code()).To(Equal(CodeError(42)))
		Expect(err.Error()).To(ContainSubstring("boom"))
	})

	It("formats Newf with fmt.Sprintf semantics", func() {
		err := Newf(7, "width %d must be >= %d", -1, 1)
		Expect(err.Error()).To(ContainSubstring("width -1 must be >= 1"))
	})

	It("treats code 0 as unclassified and omits it from Error()", func() {
		err := New(0, "plain failure")
		Expect(err.Error()).To(Equal("plain failure"))
	})

	It("drops nil causes and unwraps the rest", func() {
		cause := stderrors.New("disk full")
		err := New(1, "write failed", nil, cause, nil)

		var e Error
		Expect(stderrors.As(err, &e)).To(BeTrue())
		Expect(e.Unwrap()).To(Equal([]error{cause}))
		Expect(stderrors.Is(err, cause)).To(BeTrue())
	})
})

var _ = Describe("Get", func() {
	It("returns nil for a plain error", func() {
		Expect(Get(stderrors.New("plain"))).To(BeNil())
	})

	It("returns the Error for one built with New", func() {
		err := New(5, "tagged")
		got := Get(err)
		Expect(got).NotTo(BeNil())
		Expect(got.Code()).To(Equal(CodeError(5)))
	})

	It("finds an Error wrapped by a plain fmt.Errorf chain", func() {
		err := New(9, "root cause")
		wrapped := fmt.Errorf("opening archive: %w", err)
		got := Get(wrapped)
		Expect(got).NotTo(BeNil())
		Expect(got.Code()).To(Equal(CodeError(9)))
	})
})
