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

// Package errors tags errors raised anywhere in the archive engine with a
// package-scoped CodeError and a package-independent Kind (see kind.go), so
// a caller several layers removed from where a failure originated can
// still classify it without importing the package that raised it.
//
// Every package that can fail owns a CodeError range (modules.go), defines
// its codes starting at that range's MinPkgXxx constant, and registers a
// Message function and a Kind for each code in an init(), e.g.:
//
//	const (
//		Range CodeError = iota + errors.MinPkgCRC
//		Corrupt
//	)
//
//	func init() {
//		errors.RegisterIdFctMessage(Range, getMessage)
//		errors.RegisterKind(Range, errors.KindRange)
//		errors.RegisterKind(Corrupt, errors.KindCorruptArchive)
//	}
//
// Errors built with New/Newf satisfy the standard error interface and
// unwrap to their causes, so the standard library's errors.Is and
// errors.As work against chains built here.
package errors

import (
	"errors"
	"fmt"
)

// Error is a CodeError-tagged error, optionally wrapping the errors that
// caused it.
type Error interface {
	error

	// Code returns the CodeError this error was raised with.
	Code() CodeError
	// Unwrap exposes the causes given to New/Newf.
	Unwrap() []error
}

type codedError struct {
	code   CodeError
	msg    string
	causes []error
	site   frame
}

// New builds an Error tagged with code and msg, wrapping any non-nil causes.
// A code of 0 marks an error with no package-specific classification.
func New(code uint16, msg string, causes ...error) error {
	return &codedError{code: CodeError(code), msg: msg, causes: dropNil(causes), site: caller()}
}

// Newf is New with an fmt.Sprintf-formatted message.
func Newf(code uint16, pattern string, args ...any) error {
	return &codedError{code: CodeError(code), msg: fmt.Sprintf(pattern, args...), site: caller()}
}

func dropNil(in []error) []error {
	if len(in) == 0 {
		return nil
	}
	out := make([]error, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (e *codedError) Error() string {
	if e.code == 0 {
		return e.msg
	}
	return fmt.Sprintf("[%d] %s (%s)", e.code, e.msg, e.site)
}

func (e *codedError) Code() CodeError { return e.code }

func (e *codedError) Unwrap() []error { return e.causes }

// Get returns err as an Error if it, or something in its cause chain,
// is one, and nil otherwise.
func Get(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
