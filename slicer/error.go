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

// Package slicer maps a logical archive stream onto a numbered sequence
// of physical slice files, each carrying a small header identifying the
// archive it belongs to, and optionally pairs each slice with a
// hashedsink sidecar digest file.
package slicer

import "github/sabouaram/dargo/errors"

const (
	CorruptArchive errors.CodeError = iota + errors.MinPkgSlicer
	SliceMissing
	Range
	Unsupported
)

func init() {
	errors.RegisterIdFctMessage(CorruptArchive, getMessage)
	errors.RegisterKind(CorruptArchive, errors.KindCorruptArchive)
	errors.RegisterKind(SliceMissing, errors.KindSliceMissing)
	errors.RegisterKind(Range, errors.KindRange)
	errors.RegisterKind(Unsupported, errors.KindFeature)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case CorruptArchive:
		return "slicer: slice header data_name or slice number mismatch"
	case SliceMissing:
		return "slicer: a slice file is missing"
	case Range:
		return "slicer: invalid slice size or min-digits configuration"
	case Unsupported:
		return "slicer: operation not supported"
	}
	return ""
}
