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

// Kind is a package-independent classification of a failure, orthogonal to
// the package-scoped CodeError range each package registers for itself.
// A caller several layers removed from where an error originated can still
// branch on "was this corruption, or a resource problem, or a user abort"
// without importing the package that raised it.
type Kind uint8

const (
	KindNone Kind = iota
	KindOutOfMemory
	KindRange
	KindDivByZero
	KindCorruptArchive
	KindSliceMissing
	KindUserAbort
	KindThreadCancel
	KindFeature
	KindBug
	KindCompilation
)

func (k Kind) String() string {
	switch k {
	case KindOutOfMemory:
		return "out-of-memory"
	case KindRange:
		return "range"
	case KindDivByZero:
		return "div-by-zero"
	case KindCorruptArchive:
		return "corrupt-archive"
	case KindSliceMissing:
		return "slice-missing"
	case KindUserAbort:
		return "user-abort"
	case KindThreadCancel:
		return "thread-cancel"
	case KindFeature:
		return "feature"
	case KindBug:
		return "bug"
	case KindCompilation:
		return "compilation"
	default:
		return "none"
	}
}

// kindTag stores, per registered CodeError, the Kind it belongs to. Packages
// call RegisterKind once per code in their init(), alongside
// RegisterIdFctMessage.
var kindTag = make(map[CodeError]Kind)

// RegisterKind associates a Kind with a given CodeError so GetKind can later
// classify any Error carrying that code.
func RegisterKind(code CodeError, kind Kind) {
	kindTag[code] = kind
}

// GetKind returns the Kind registered for err's code, or KindNone if err is
// not an Error or its code was never classified.
func GetKind(err error) Kind {
	e := Get(err)
	if e == nil {
		return KindNone
	}
	if k, ok := kindTag[CodeError(e.Code())]; ok {
		return k
	}
	return KindNone
}

// IsKind reports whether err was classified with the given Kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
