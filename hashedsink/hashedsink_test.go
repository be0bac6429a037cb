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

package hashedsink_test

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github/sabouaram/dargo/hashedsink"
	"github/sabouaram/dargo/stream"
)

func TestSinkWritesThroughAndEmitsDigest(t *testing.T) {
	under := stream.NewMem()
	var sidecar bytes.Buffer

	s, err := hashedsink.New(under, &sidecar, "data.1.dar", hashedsink.MD5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := []byte("the quick brown fox jumps over the lazy dog")
	if _, err := s.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	if !bytes.Equal(under.Bytes(), payload) {
		t.Fatalf("underlying stream did not receive the payload")
	}

	want := hex.EncodeToString(md5.New().Sum(nil))
	sum := md5.Sum(payload)
	want = hex.EncodeToString(sum[:])
	if sidecar.String() != want+"  data.1.dar\n" {
		t.Fatalf("sidecar = %q, want %q", sidecar.String(), want+"  data.1.dar\n")
	}
}

func TestSinkTerminateIdempotent(t *testing.T) {
	under := stream.NewMem()
	var sidecar bytes.Buffer
	s, _ := hashedsink.New(under, &sidecar, "x", hashedsink.SHA1)
	if err := s.Terminate(); err != nil {
		t.Fatalf("first Terminate: %v", err)
	}
	n := sidecar.Len()
	if err := s.Terminate(); err != nil {
		t.Fatalf("second Terminate: %v", err)
	}
	if sidecar.Len() != n {
		t.Fatal("second Terminate should not write again")
	}
}
