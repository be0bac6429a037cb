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

import (
	"fmt"
	"runtime"
	"strings"
)

// frame is the call site a New/Newf invocation was raised from.
type frame struct {
	file string
	line int
}

func (f frame) String() string {
	if f.file == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", f.file, f.line)
}

// shortPath keeps the last two path segments (package directory and file
// name) of an absolute source path, so a trace reads e.g. "crc/crc.go:83"
// regardless of where the module was checked out.
func shortPath(file string) string {
	i := strings.LastIndexByte(file, '/')
	if i < 0 {
		return file
	}
	j := strings.LastIndexByte(file[:i], '/')
	if j < 0 {
		return file
	}
	return file[j+1:]
}

// caller walks the stack past this file's own frames to find where New or
// Newf was actually called from.
func caller() frame {
	for skip := 2; skip < 10; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			return frame{}
		}
		if strings.HasSuffix(file, "/errors/errors.go") {
			continue
		}
		return frame{file: shortPath(file), line: line}
	}
	return frame{}
}
