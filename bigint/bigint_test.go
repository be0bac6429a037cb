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

package bigint_test

import (
	"bytes"
	"testing"

	"github/sabouaram/dargo/bigint"

	"github.com/google/go-cmp/cmp"
)

func dump(t *testing.T, n bigint.Num) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := n.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.Bytes()
}

func TestZeroEncoding(t *testing.T) {
	got := dump(t, bigint.Zero())
	want := []byte{0x01, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("zero encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoding300(t *testing.T) {
	got := dump(t, bigint.New(uint32(300)))
	want := []byte{0x40, 0x01, 0x2C}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("300 encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 63, 64, 127, 128, 255, 256, 300,
		1 << 16, 1 << 32, 1<<56 - 1, 1 << 56, 1<<63 + 17}
	for _, v := range values {
		n := bigint.New(v)
		buf := dump(t, n)

		got, consumed, err := bigint.Read(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("Read(%d): %v", v, err)
		}
		if consumed != int64(len(buf)) {
			t.Fatalf("Read(%d): consumed %d, want %d", v, consumed, len(buf))
		}
		gv, overflow := got.Uint64()
		if overflow || gv != v {
			t.Fatalf("Read(%d): got %v (overflow=%v)", v, got, overflow)
		}
	}
}

func TestRoundTripBeyondUint64(t *testing.T) {
	v := bigint.New(uint64(1)).Shl(512).Add(bigint.New(uint64(12345)))

	var buf bytes.Buffer
	if _, err := v.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, _, err := bigint.Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Compare(v) != 0 {
		t.Fatalf("round trip mismatch: got %s want %s", got, v)
	}
}

func TestCompare(t *testing.T) {
	a := bigint.New(uint64(5))
	b := bigint.New(uint64(9))
	if a.Compare(b) >= 0 {
		t.Fatalf("expected a < b")
	}
	if b.Compare(a) <= 0 {
		t.Fatalf("expected b > a")
	}
	if a.Compare(a.Copy()) != 0 {
		t.Fatalf("expected equality")
	}
}

func TestSubUnderflow(t *testing.T) {
	_, err := bigint.New(uint64(1)).Sub(bigint.New(uint64(2)))
	if err == nil {
		t.Fatal("expected an error for underflowing subtraction")
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := bigint.New(uint64(10)).Div(bigint.Zero()); err == nil {
		t.Fatal("expected DivByZero")
	}
	if _, err := bigint.New(uint64(10)).Mod(bigint.Zero()); err == nil {
		t.Fatal("expected DivByZero")
	}
}

func TestUnstackDrainsFully(t *testing.T) {
	n := bigint.New(uint64(40))
	cur, rest := n.Unstack(0, 255)
	if cur != 40 || !rest.IsZero() {
		t.Fatalf("got cur=%d rest=%s, want cur=40 rest=0", cur, rest)
	}
}

func TestUnstackCaps(t *testing.T) {
	n := bigint.New(uint64(300))
	cur, rest := n.Unstack(200, 255)
	if cur != 255 {
		t.Fatalf("got cur=%d, want 255", cur)
	}
	rv, overflow := rest.Uint64()
	if overflow || rv != 245 {
		t.Fatalf("got rest=%d, want 245", rv)
	}
}

func TestReadCorruptTag(t *testing.T) {
	// 0x03 has two bits set (bit0 and bit1); not a valid tag.
	_, _, err := bigint.Read(bytes.NewReader([]byte{0x03, 0x00}))
	if err == nil {
		t.Fatal("expected Corrupt on a malformed tag")
	}
}

func TestReadTruncatedPayload(t *testing.T) {
	_, _, err := bigint.Read(bytes.NewReader([]byte{0x40, 0x01}))
	if err == nil {
		t.Fatal("expected Corrupt on a truncated payload")
	}
}
