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

package storage_test

import (
	"bytes"
	"testing"

	"github/sabouaram/dargo/storage"
)

func TestNewAndBytes(t *testing.T) {
	s, err := storage.New(10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", s.Len())
	}
	if !bytes.Equal(s.Bytes(), make([]byte, 10)) {
		t.Fatalf("expected a fresh storage to be all zero")
	}
}

func TestEmptyBeginEqualsEnd(t *testing.T) {
	s, _ := storage.New(0)
	if !s.Begin().AtEnd() {
		t.Fatal("Begin on empty storage should equal End")
	}
}

func TestWriteThenRead(t *testing.T) {
	s, _ := storage.New(5)
	n, _, err := s.Begin().Write([]byte{1, 2, 3, 4, 5})
	if err != nil || n != 5 {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	buf := make([]byte, 5)
	n, end, err := s.Begin().Read(buf)
	if err != nil || n != 5 {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
	if !end.AtEnd() {
		t.Fatal("expected Read to reach End after consuming all bytes")
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("got %v", buf)
	}
}

func TestInsertAtBeginning(t *testing.T) {
	s, _ := storage.New(0)
	end, err := s.Begin().Insert([]byte{9, 9})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !end.AtEnd() {
		t.Fatal("inserting into an empty storage should land back at End")
	}
	if !bytes.Equal(s.Bytes(), []byte{9, 9}) {
		t.Fatalf("got %v", s.Bytes())
	}
}

func TestInsertMidCell(t *testing.T) {
	s, _ := storage.New(4)
	s.Begin().Write([]byte{1, 2, 3, 4})

	it := s.Begin().Next().Next() // pointing at the third byte (value 3)
	if _, err := it.Insert([]byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	want := []byte{1, 2, 0xAA, 0xBB, 3, 4}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("got %v, want %v", s.Bytes(), want)
	}
}

func TestInsertZeros(t *testing.T) {
	s, _ := storage.New(2)
	s.Begin().Write([]byte{1, 2})
	if _, err := s.Begin().Next().InsertZeros(3); err != nil {
		t.Fatalf("InsertZeros: %v", err)
	}
	want := []byte{1, 0, 0, 0, 2}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("got %v, want %v", s.Bytes(), want)
	}
}

func TestRemoveWithinCell(t *testing.T) {
	s, _ := storage.New(5)
	s.Begin().Write([]byte{1, 2, 3, 4, 5})
	it := s.Begin().Next()
	rest, err := it.Remove(2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	want := []byte{1, 4, 5}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("got %v, want %v", s.Bytes(), want)
	}
	var got byte
	buf := make([]byte, 1)
	rest.Read(buf)
	got = buf[0]
	if got != 4 {
		t.Fatalf("resulting iterator points at %d, want 4", got)
	}
}

func TestRemoveAcrossCells(t *testing.T) {
	s, _ := storage.New(0)
	s.Begin().Insert([]byte{1, 2, 3})
	s.End().Insert([]byte{4, 5, 6})

	it := s.Begin().Next() // at value 2
	rest, err := it.Remove(3)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	want := []byte{1, 5, 6}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("got %v, want %v", s.Bytes(), want)
	}
	buf := make([]byte, 1)
	rest.Read(buf)
	if buf[0] != 5 {
		t.Fatalf("resulting iterator points at %d, want 5", buf[0])
	}
}

func TestRemoveBeyondLengthErrors(t *testing.T) {
	s, _ := storage.New(2)
	if _, err := s.Begin().Remove(10); err == nil {
		t.Fatal("expected an error removing past the end")
	}
}

func TestReduceMergesCells(t *testing.T) {
	s, _ := storage.New(0)
	s.Begin().Insert([]byte{1, 2})
	s.End().Insert([]byte{3, 4})
	before := s.Bytes()
	s.Reduce()
	after := s.Bytes()
	if !bytes.Equal(before, after) {
		t.Fatalf("Reduce changed content: %v -> %v", before, after)
	}
}

func TestOutOfMemory(t *testing.T) {
	orig := storage.SetAllocatorForTest(func(n int) ([]byte, error) {
		return nil, bytes.ErrTooLarge
	})
	defer storage.SetAllocatorForTest(orig)

	if _, err := storage.New(16); err == nil {
		t.Fatal("expected OutOfMemory when every allocation attempt fails")
	}
}
