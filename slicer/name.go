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

package slicer

import (
	"fmt"
	"os"
	"strconv"
)

// sliceName formats the path of slice number s, zero-padded to at least
// minDigits digits: "basename.NNNNN.ext".
func sliceName(basename string, ext string, s uint64, minDigits int) string {
	digits := len(strconv.FormatUint(s, 10))
	if digits < minDigits {
		digits = minDigits
	}
	return fmt.Sprintf("%s.%0*d.%s", basename, digits, s, ext)
}

// probeSliceName tries sliceName with increasing pad widths from 1 up to
// minDigits until it finds a file that exists, for a reader that doesn't
// yet know how the archive's writer configured min-digits.
func probeSliceName(basename, ext string, s uint64, minDigits int) (string, bool) {
	for w := 1; w <= minDigits; w++ {
		name := sliceName(basename, ext, s, w)
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
	}
	return "", false
}
