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

package stream_test

import (
	"io"
	"testing"

	"github/sabouaram/dargo/stream"
)

func TestMemReadWriteRoundTrip(t *testing.T) {
	m := stream.NewMem()
	if _, err := m.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := m.Skip(0); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	buf := make([]byte, 11)
	n, err := m.Read(buf)
	if err != nil || n != 11 {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
	if string(buf) != "hello world" {
		t.Fatalf("got %q", buf)
	}
}

func TestMemShortReadIsEOF(t *testing.T) {
	m := stream.NewMemFrom([]byte("abc"))
	buf := make([]byte, 10)
	n, err := m.Read(buf)
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if err != nil {
		t.Fatalf("first read should not itself report EOF when it returned bytes, got %v", err)
	}
	n, err = m.Read(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("second read: n=%d err=%v, want 0, io.EOF", n, err)
	}
}

func TestMemSkipPastEOF(t *testing.T) {
	m := stream.NewMemFrom([]byte("abc"))
	ok, err := m.Skip(100)
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if ok {
		t.Fatal("expected Skip past EOF to report ok=false")
	}
	pos, _ := m.GetPosition()
	if pos != 3 {
		t.Fatalf("position = %d, want 3 (clamped to length)", pos)
	}
}

func TestMemTerminateIdempotent(t *testing.T) {
	m := stream.NewMem()
	if err := m.Terminate(); err != nil {
		t.Fatalf("first Terminate: %v", err)
	}
	if err := m.Terminate(); err != nil {
		t.Fatalf("second Terminate should be a no-op, got %v", err)
	}
	if m.Skippable(stream.Forward, 1) {
		t.Fatal("a terminated stream should report unskippable")
	}
}

func TestMemCRC(t *testing.T) {
	m := stream.NewMem()
	if err := m.ResetCRC(4); err != nil {
		t.Fatalf("ResetCRC: %v", err)
	}
	if _, err := m.Write([]byte("abcdefgh")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	c1, err := m.GetCRC()
	if err != nil {
		t.Fatalf("GetCRC: %v", err)
	}
	if _, err := m.GetCRC(); err == nil {
		t.Fatal("a second GetCRC without a new ResetCRC should fail")
	}

	if err := m.ResetCRC(4); err != nil {
		t.Fatalf("ResetCRC: %v", err)
	}
	if _, err := m.Skip(0); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if _, err := m.Write([]byte("abcdefgh")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	c2, err := m.GetCRC()
	if err != nil {
		t.Fatalf("GetCRC: %v", err)
	}
	if !c1.Equal(c2) {
		t.Fatal("identical data at the same offsets should produce equal CRCs")
	}
}

func TestCopyToAndDiff(t *testing.T) {
	src := stream.NewMemFrom([]byte("the quick brown fox"))
	dst := stream.NewMem()

	n, crcVal, err := stream.CopyTo(dst, src, 4)
	if err != nil {
		t.Fatalf("CopyTo: %v", err)
	}
	if n != 19 {
		t.Fatalf("copied %d bytes, want 19", n)
	}
	if crcVal == nil {
		t.Fatal("expected a CRC result")
	}

	dst.Skip(0)
	src.Skip(0)
	off, _, err := stream.Diff(src, dst, 0, 0, 0)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if off != -1 {
		t.Fatalf("expected identical streams, got first diff at %d", off)
	}

	other := stream.NewMemFrom([]byte("the quick brown box"))
	src.Skip(0)
	off, _, err = stream.Diff(src, other, 0, 0, 0)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if off != 16 {
		t.Fatalf("got first diff at %d, want 16", off)
	}
}
