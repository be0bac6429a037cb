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

package hider_test

import (
	"io"
	"testing"

	"github/sabouaram/dargo/hider"
	"github/sabouaram/dargo/stream"
)

func readAll(t *testing.T, h *hider.Hider) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 4)
	for {
		n, err := h.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	return out
}

func TestStripComments(t *testing.T) {
	content := []byte("clear_block_size 1024\n# a comment\ncompression zstd\n# another\niteration_count 100000\n")
	segs := hider.StripComments(content)

	under := stream.NewMemFrom(content)
	h := hider.New(under, segs)
	got := readAll(t, h)

	want := "clear_block_size 1024\ncompression zstd\niteration_count 100000\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSelectSection(t *testing.T) {
	content := []byte("[slicer]\nfirst_size 100M\nother_size 100M\n[crypt]\nalgo aes\n")
	segs := hider.SelectSection(content, "slicer")
	if segs == nil {
		t.Fatal("expected to find the slicer section")
	}
	under := stream.NewMemFrom(content)
	h := hider.New(under, segs)
	got := readAll(t, h)

	want := "[slicer]\nfirst_size 100M\nother_size 100M\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSelectSectionMissing(t *testing.T) {
	content := []byte("[crypt]\nalgo aes\n")
	if segs := hider.SelectSection(content, "slicer"); segs != nil {
		t.Fatalf("expected nil for a missing section, got %v", segs)
	}
}

func TestHiderSkipAndLen(t *testing.T) {
	content := []byte("AAAABBBBCCCC")
	segs := []hider.Segment{{Start: 4, Length: 4}, {Start: 0, Length: 4}}
	h := hider.New(stream.NewMemFrom(content), segs)
	if h.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", h.Len())
	}
	if ok, err := h.Skip(4); err != nil || !ok {
		t.Fatalf("Skip: ok=%v err=%v", ok, err)
	}
	got := readAll(t, h)
	if string(got) != "AAAA" {
		t.Fatalf("got %q, want AAAA", got)
	}
}
