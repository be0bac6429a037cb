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

	. "github/sabouaram/dargo/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testKindCode CodeError = 9200

var _ = Describe("RegisterKind / IsKind / GetKind", func() {
	BeforeEach(func() {
		RegisterKind(testKindCode, KindCorruptArchive)
	})

	It("classifies an error raised with a registered code", func() {
		err := New(uint16(testKindCode), "catalogue checksum mismatch")
		Expect(IsKind(err, KindCorruptArchive)).To(BeTrue())
		Expect(IsKind(err, KindRange)).To(BeFalse())
		Expect(GetKind(err)).To(Equal(KindCorruptArchive))
	})

	It("reports KindNone for an unregistered code", func() {
		err := New(9999, "whatever")
		Expect(GetKind(err)).To(Equal(KindNone))
	})

	It("reports KindNone for a non-Error", func() {
		Expect(GetKind(stderrors.New("plain"))).To(Equal(KindNone))
	})

	It("stringifies every constant distinctly", func() {
		kinds := []Kind{
			KindNone, KindOutOfMemory, KindRange, KindDivByZero, KindCorruptArchive,
			KindSliceMissing, KindUserAbort, KindThreadCancel, KindFeature, KindBug, KindCompilation,
		}
		seen := make(map[string]bool, len(kinds))
		for _, k := range kinds {
			s := k.String()
			Expect(s).NotTo(BeEmpty())
			Expect(seen[s]).To(BeFalse(), "duplicate String() for %v", k)
			seen[s] = true
		}
	})
})
