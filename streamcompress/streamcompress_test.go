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

package streamcompress_test

import (
	"bytes"
	"io"
	"testing"

	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/streamcompress"
)

func roundTrip(t *testing.T, algo streamcompress.Algorithm, payload []byte) []byte {
	t.Helper()

	under := stream.NewMem()
	w, err := streamcompress.New(under, algo, streamcompress.Compress)
	if err != nil {
		t.Fatalf("New(write): %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate(write): %v", err)
	}

	under2 := stream.NewMemFrom(under.Bytes())
	r, err := streamcompress.New(under2, algo, streamcompress.Decompress)
	if err != nil {
		t.Fatalf("New(read): %v", err)
	}
	var out bytes.Buffer
	buf := make([]byte, 512)
	for {
		n, rerr := r.Read(buf)
		out.Write(buf[:n])
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			t.Fatalf("Read: %v", rerr)
		}
	}
	if err := r.Terminate(); err != nil {
		t.Fatalf("Terminate(read): %v", err)
	}
	return out.Bytes()
}

func TestRoundTripEachAlgorithm(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 64)

	for _, algo := range []streamcompress.Algorithm{
		streamcompress.Gzip,
		streamcompress.Bzip2,
		streamcompress.LZ4,
		streamcompress.XZ,
		streamcompress.Zstd,
	} {
		algo := algo
		t.Run(algo.String(), func(t *testing.T) {
			got := roundTrip(t, algo, payload)
			if !bytes.Equal(got, payload) {
				t.Fatalf("%s round trip mismatch: got %d bytes, want %d", algo, len(got), len(payload))
			}
		})
	}
}

func TestLzoIsAFeatureStub(t *testing.T) {
	if streamcompress.Lzo.Available() {
		t.Fatal("Lzo.Available() = true, want false (no pure Go codec)")
	}
	under := stream.NewMem()
	if _, err := streamcompress.New(under, streamcompress.Lzo, streamcompress.Compress); err == nil {
		t.Fatal("expected an error opening a Lzo write stream")
	}
}

func TestSuspendResumePassesDataUncompressed(t *testing.T) {
	under := stream.NewMem()
	w, err := streamcompress.New(under, streamcompress.Gzip, streamcompress.Compress)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := w.Write([]byte("compressed-prefix-compressed-prefix-compressed-prefix")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.SuspendCompression(); err != nil {
		t.Fatalf("SuspendCompression: %v", err)
	}
	raw := []byte("RAW-ALREADY-COMPRESSED-PAYLOAD")
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("Write(raw): %v", err)
	}
	if err := w.ResumeCompression(); err != nil {
		t.Fatalf("ResumeCompression: %v", err)
	}
	if _, err := w.Write([]byte("compressed-suffix-compressed-suffix-compressed-suffix")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	if !bytes.Contains(under.Bytes(), raw) {
		t.Fatal("raw payload written during suspension was not found verbatim in the underlying stream")
	}
}

func TestModeMismatchRejected(t *testing.T) {
	under := stream.NewMem()
	w, err := streamcompress.New(under, streamcompress.Gzip, streamcompress.Compress)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := w.Read(make([]byte, 8)); err == nil {
		t.Fatal("expected an error reading from a write-only compression stream")
	}
}
