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

package archive

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress is the seam spec.md §1 calls out as an external "user
// interaction/progress abstraction": Writer and Reader report bytes
// moved through the stack without knowing or caring how that is
// displayed. NewMPBProgress builds one backed by
// github.com/vbauerster/mpb/v8; callers that pass nil (or no
// WithProgress at all) get a no-op.
type Progress interface {
	// Increment reports that n more bytes of the total have been
	// processed.
	Increment(n int64)
	// Done marks the tracked operation as finished.
	Done()
}

type mpbProgress struct {
	bar *mpb.Bar
}

// NewMPBProgress returns a Progress backed by a single mpb bar tracking
// total bytes against the shared container p.
func NewMPBProgress(p *mpb.Progress, name string, total int64) Progress {
	bar := p.AddBar(total,
		mpb.PrependDecorators(decor.Name(name)),
		mpb.AppendDecorators(
			decor.CountersKibiByte("% .2f / % .2f"),
			decor.Percentage(decor.WCSyncSpace),
			decor.AverageETA(decor.ET_STYLE_GO),
		),
	)
	return &mpbProgress{bar: bar}
}

func (m *mpbProgress) Increment(n int64) {
	m.bar.IncrInt64(n)
}

func (m *mpbProgress) Done() {
	m.bar.SetCurrent(m.bar.Current())
	m.bar.EnableTriggerComplete()
}

// noopProgress is the default when a caller supplies no Progress.
type noopProgress struct{}

func (noopProgress) Increment(int64) {}
func (noopProgress) Done()           {}

// progressWriter wraps an io.Writer (or stream.Stream used as one) to
// report every successful Write to a Progress, so Writer doesn't need to
// thread progress calls through every layer of the stack by hand.
type progressWriter struct {
	under io.Writer
	p     Progress
}

func (w *progressWriter) Write(p []byte) (int, error) {
	n, err := w.under.Write(p)
	if n > 0 {
		w.p.Increment(int64(n))
	}
	return n, err
}
