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

package sparsefile_test

import (
	"bytes"
	"io"
	"testing"

	"github/sabouaram/dargo/escape"
	"github/sabouaram/dargo/sparsefile"
	"github/sabouaram/dargo/stream"
)

func readAll(t *testing.T, r *sparsefile.Reader) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 8)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
}

// TestSparseHoleRoundTrip mirrors the worked example: 10 'A' bytes,
// a 100-byte zero run with min_hole_size=15, then 5 'B' bytes.
func TestSparseHoleRoundTrip(t *testing.T) {
	under := stream.NewMem()
	esc := escape.New(under, stream.WriteOnly)
	w := sparsefile.NewWriter(esc, 15)

	input := append(append(bytes.Repeat([]byte{'A'}, 10), make([]byte, 100)...), bytes.Repeat([]byte{'B'}, 5)...)
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	escR := escape.New(under2, stream.ReadOnly)
	r := sparsefile.NewReader(escR)
	got := readAll(t, r)

	if !bytes.Equal(got, input) {
		t.Fatalf("got %d bytes, want %d bytes; equal=%v", len(got), len(input), bytes.Equal(got, input))
	}
}

func TestSparseShortRunStaysLiteral(t *testing.T) {
	under := stream.NewMem()
	esc := escape.New(under, stream.WriteOnly)
	w := sparsefile.NewWriter(esc, 15)

	input := append(append(bytes.Repeat([]byte{'A'}, 3), make([]byte, 5)...), bytes.Repeat([]byte{'B'}, 3)...)
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	escR := escape.New(under2, stream.ReadOnly)
	r := sparsefile.NewReader(escR)
	got := readAll(t, r)

	if !bytes.Equal(got, input) {
		t.Fatalf("got %v, want %v", got, input)
	}
	if len(under.Bytes()) != len(input) {
		t.Fatalf("short zero run should be written literally, encoded length = %d, want %d", len(under.Bytes()), len(input))
	}
}

func TestSparseTrailingHole(t *testing.T) {
	under := stream.NewMem()
	esc := escape.New(under, stream.WriteOnly)
	w := sparsefile.NewWriter(esc, 4)

	input := append(bytes.Repeat([]byte{'A'}, 4), make([]byte, 20)...)
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	escR := escape.New(under2, stream.ReadOnly)
	r := sparsefile.NewReader(escR)
	got := readAll(t, r)

	if !bytes.Equal(got, input) {
		t.Fatalf("got %d bytes, want %d", len(got), len(input))
	}
}

func TestSparseSkipUnsupported(t *testing.T) {
	under := stream.NewMemFrom([]byte{})
	escR := escape.New(under, stream.ReadOnly)
	r := sparsefile.NewReader(escR)
	if _, err := r.Skip(10); err == nil {
		t.Fatal("expected Skip to be unsupported")
	}
}
