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

package errors

// CodeError is a numeric error classification, scoped into per-package
// ranges by the MinPkgXxx constants in modules.go. A package defines its
// own CodeError constants starting at its MinPkgXxx value:
//
//	const (
//		Range CodeError = iota + errors.MinPkgCRC
//		Corrupt
//	)
type CodeError uint16

// Message renders a human-readable description for a CodeError that falls
// within the range a package registered it for.
type Message func(code CodeError) string

var messageFct = make(map[CodeError]Message)

// RegisterIdFctMessage claims every CodeError from minCode upward for fct,
// until the next registered range begins. A package calls this once in its
// init(), keyed by its own MinPkgXxx constant.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	messageFct[minCode] = fct
}

// Describe resolves code to the Message function registered for the range
// it falls in and returns its output, or "" if no package claimed that
// range yet.
func Describe(code CodeError) string {
	min, ok := rangeFor(code)
	if !ok {
		return ""
	}
	return messageFct[min](code)
}

// rangeFor finds the greatest registered range start that is <= code, which
// is the range code belongs to (ranges are contiguous and non-overlapping
// by convention, not enforced here).
func rangeFor(code CodeError) (CodeError, bool) {
	var (
		best  CodeError
		found bool
	)
	for min := range messageFct {
		if min <= code && (!found || min > best) {
			best = min
			found = true
		}
	}
	return best, found
}
