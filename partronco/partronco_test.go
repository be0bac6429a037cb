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

package partronco_test

import (
	"bytes"
	"io"
	"testing"

	"github/sabouaram/dargo/crypt"
	"github/sabouaram/dargo/partronco"
	"github/sabouaram/dargo/stream"
)

func newCore(t *testing.T, blockSize int) *crypt.Core {
	t.Helper()
	core, err := crypt.NewCore(bytes.Repeat([]byte{0x5A}, 32), blockSize)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	return core
}

func readAll(t *testing.T, pt *partronco.ParTronco) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 7)
	for {
		n, err := pt.Read(buf)
		out = append(out, buf[:n]...)
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
	return out
}

func TestParTroncoWriteReadRoundTrip(t *testing.T) {
	core := newCore(t, 16)
	under := stream.NewMem()

	w, err := partronco.New(under, core, 0, 1, nil, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := bytes.Repeat([]byte("0123456789"), 50) // 500 bytes across many blocks
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	r, err := partronco.New(under2, core, 0, 1, nil, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := readAll(t, r)
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestParTroncoSkipRecoversIntraBlockOffset(t *testing.T) {
	core := newCore(t, 16)
	under := stream.NewMem()

	w, err := partronco.New(under, core, 0, 1, nil, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := bytes.Repeat([]byte("0123456789ABCDEF"), 8) // 128 bytes, 8 full blocks
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	r, err := partronco.New(under2, core, 0, 1, nil, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok, err := r.Skip(20) // block 1, intra offset 4
	if err != nil || !ok {
		t.Fatalf("Skip: ok=%v err=%v", ok, err)
	}
	buf := make([]byte, 5)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read after Skip: %v", err)
	}
	want := payload[20 : 20+n]
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("got %q, want %q", buf[:n], want)
	}
}

func TestParTroncoReadWithTrailingClearData(t *testing.T) {
	core := newCore(t, 16)
	under := stream.NewMem()

	w, err := partronco.New(under, core, 0, 1, nil, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := bytes.Repeat([]byte("A"), 40)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	encryptedLen := int64(len(under.Bytes()))
	trailer := []byte("TRAILER-NOT-ENCRYPTED")
	combined := append(append([]byte(nil), under.Bytes()...), trailer...)

	trailing := func(_ stream.Stream, _ byte) (int64, error) {
		return encryptedLen, nil
	}

	under2 := stream.NewMemFrom(combined)
	r, err := partronco.New(under2, core, 0, 1, trailing, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := readAll(t, r)
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}
