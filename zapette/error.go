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

// Package zapette is the two-pipe master/slave pair that exposes a
// remote archive as a local read-only stream.Stream: the master sends
// small fixed-shape requests over one pipe and reads responses off
// another, while the slave serves them against the real archive one
// request at a time.
package zapette

import "github/sabouaram/dargo/errors"

const (
	Protocol errors.CodeError = iota + errors.MinPkgZapette
	Unsupported
	UserAbort
	Closed
)

func init() {
	errors.RegisterIdFctMessage(Protocol, getMessage)
	errors.RegisterKind(Protocol, errors.KindCorruptArchive)
	errors.RegisterKind(Unsupported, errors.KindFeature)
	errors.RegisterKind(UserAbort, errors.KindUserAbort)
	errors.RegisterKind(Closed, errors.KindBug)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case Protocol:
		return "zapette: malformed request/response on the wire"
	case Unsupported:
		return "zapette: operation not supported over a remote stream"
	case UserAbort:
		return "zapette: user aborted after a serial number mismatch"
	case Closed:
		return "zapette: pipe already terminated"
	}
	return ""
}
