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

// Each package of the archive engine owns a 100-wide code range, in the
// order the components are introduced in the design document. A package
// registers its own messages against its range with RegisterIdFctMessage;
// callers never need to know the range, only the shared Kind* sentinels
// in kind.go for cross-package matching.
const (
	MinPkgBigInt         = 100
	MinPkgStorage        = 200
	MinPkgStream         = 300
	MinPkgCRC            = 400
	MinPkgSlicer         = 500
	MinPkgHashedSink     = 600
	MinPkgCrypt          = 700
	MinPkgTronco         = 800
	MinPkgParTronco      = 900
	MinPkgBlockCompress  = 1000
	MinPkgStreamCompress = 1100
	MinPkgEscape         = 1200
	MinPkgSparseFile     = 1300
	MinPkgTerminator     = 1400
	MinPkgZapette        = 1500
	MinPkgDataTree       = 1600
	MinPkgPool           = 1700
	MinPkgHider          = 1800
	MinPkgElastic        = 1900
	MinPkgArchive        = 2000
	MinPkgConfig         = 2100
	MinPkgLogger         = 2200

	MinAvailable = 3000
)
