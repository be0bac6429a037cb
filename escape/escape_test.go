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

package escape_test

import (
	"io"
	"testing"

	"github/sabouaram/dargo/escape"
	"github/sabouaram/dargo/stream"
)

func readAllData(t *testing.T, e *escape.Escape) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 3)
	for {
		isMark, err := e.NextToReadIsMark(escape.MarkFile)
		if err != nil {
			t.Fatalf("NextToReadIsMark: %v", err)
		}
		if isMark {
			return out
		}
		n, err := e.Read(buf)
		out = append(out, buf[:n]...)
		if n == 0 && err == nil {
			continue
		}
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
}

func TestRoundTripNoMagicCollision(t *testing.T) {
	under := stream.NewMem()
	w := escape.New(under, stream.WriteOnly)
	raw := []byte("hello, world, no special bytes here")
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("Write: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	r := escape.New(under2, stream.ReadOnly)
	got := readAllData(t, r)
	if string(got) != string(raw) {
		t.Fatalf("got %q, want %q", got, raw)
	}
}

func TestRoundTripWithMark(t *testing.T) {
	under := stream.NewMem()
	w := escape.New(under, stream.WriteOnly)
	if _, err := w.Write([]byte("AAAAAAAAAA")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.AddMarkAtCurrentPosition(escape.MarkFile); err != nil {
		t.Fatalf("AddMarkAtCurrentPosition: %v", err)
	}
	if _, err := w.Write([]byte("BBBBB")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	r := escape.New(under2, stream.ReadOnly)

	got := readAllData(t, r)
	if string(got) != "AAAAAAAAAA" {
		t.Fatalf("first phase got %q", got)
	}
	found, err := r.SkipToNextMark(escape.MarkFile, true)
	if err != nil || !found {
		t.Fatalf("SkipToNextMark: found=%v err=%v", found, err)
	}

	var rest []byte
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		rest = append(rest, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if n == 0 {
			break
		}
	}
	if string(rest) != "BBBBB" {
		t.Fatalf("second phase got %q", rest)
	}
}
