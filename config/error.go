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

// Package config loads the archive engine's tunables (block sizes, cipher
// and compression choices, slicing layout) from file, environment or flags
// through github.com/spf13/viper, with github.com/fsnotify/fsnotify live
// reload for long-running callers such as the manager's interactive mode.
package config

import "github/sabouaram/dargo/errors"

const (
	InvalidValue errors.CodeError = iota + errors.MinPkgConfig
	ReadFailed
	DecodeFailed
)

func init() {
	errors.RegisterIdFctMessage(InvalidValue, getMessage)
	errors.RegisterKind(InvalidValue, errors.KindRange)
	errors.RegisterKind(ReadFailed, errors.KindBug)
	errors.RegisterKind(DecodeFailed, errors.KindBug)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case InvalidValue:
		return "config: value out of range"
	case ReadFailed:
		return "config: could not read configuration file"
	case DecodeFailed:
		return "config: could not decode configuration into settings"
	}
	return ""
}
