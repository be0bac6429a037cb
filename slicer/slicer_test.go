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

package slicer

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github/sabouaram/dargo/errors"
)

func testConfig(t *testing.T, dir string, first, other int64) Config {
	t.Helper()
	return Config{
		Basename:  filepath.Join(dir, "archive"),
		Ext:       "dar",
		DataName:  NewLabel(),
		FirstSize: first,
		OtherSize: other,
		MinDigits: 3,
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, 1024, 512)

	payload := bytes.Repeat([]byte("abcdefghij"), 400) // 4000 bytes, forces many rotations

	w, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	if _, ok := probeSliceName(cfg.Basename, cfg.Ext, 1, cfg.MinDigits); !ok {
		t.Fatalf("expected slice 1 to exist")
	}

	r, err := NewReader(cfg)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
	if err := r.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
}

func TestReaderSkipToEOF(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, 256, 256)
	payload := bytes.Repeat([]byte{0x42}, 3000)

	w, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	r, err := NewReader(cfg)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Terminate()

	if err := r.SkipToEOF(); err != nil {
		t.Fatalf("SkipToEOF: %v", err)
	}
	pos, err := r.GetPosition()
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if pos != int64(len(payload)) {
		t.Fatalf("SkipToEOF landed at %d, want %d", pos, len(payload))
	}
}

func TestReaderDetectsDataNameMismatch(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, 1024, 1024)

	w, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(bytes.Repeat([]byte("x"), 100)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	wrong := cfg
	wrong.DataName = NewLabel()
	_, err = NewReader(wrong)
	if err == nil {
		t.Fatalf("expected a data_name mismatch error")
	}
	if !errors.IsKind(err, errors.KindCorruptArchive) {
		t.Fatalf("expected KindCorruptArchive, got %v", err)
	}
}

func TestReaderReportsMissingSlice(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, 256, 256)
	payload := bytes.Repeat([]byte{0x7a}, 2000)

	w, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	victim, ok := probeSliceName(cfg.Basename, cfg.Ext, 3, cfg.MinDigits)
	if !ok {
		t.Fatalf("expected slice 3 to exist before removal")
	}
	if err := os.Remove(victim); err != nil {
		t.Fatalf("removing slice: %v", err)
	}

	r, err := NewReader(cfg)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Terminate()

	_, err = io.ReadAll(r)
	if err == nil {
		t.Fatalf("expected a SliceMissing error when slice 3 is gone")
	}
	n, ok := MissingSlice(err)
	if !ok {
		t.Fatalf("MissingSlice did not recognize %v", err)
	}
	if n != 3 {
		t.Fatalf("MissingSlice reported slice %d, want 3", n)
	}
}

func TestWriterResumeAppendsToLastSlice(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, 1024, 1024)

	w, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	first := bytes.Repeat([]byte("p"), 50)
	if _, err := w.Write(first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	cfg.Resume = true
	w2, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("NewWriter (resume): %v", err)
	}
	second := bytes.Repeat([]byte("q"), 50)
	if _, err := w2.Write(second); err != nil {
		t.Fatalf("Write (resume): %v", err)
	}
	if err := w2.Terminate(); err != nil {
		t.Fatalf("Terminate (resume): %v", err)
	}

	cfg.Resume = false
	r, err := NewReader(cfg)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Terminate()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := append(append([]byte{}, first...), second...)
	if !bytes.Equal(got, want) {
		t.Fatalf("resume round trip mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestSliceNamePadding(t *testing.T) {
	got := sliceName("archive", "dar", 7, 3)
	want := "archive.007.dar"
	if got != want {
		t.Fatalf("sliceName padding: got %q, want %q", got, want)
	}
	got = sliceName("archive", "dar", 123456, 3)
	want = "archive.123456.dar"
	if got != want {
		t.Fatalf("sliceName overflow: got %q, want %q", got, want)
	}
}
