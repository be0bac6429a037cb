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

package zapette_test

import (
	"bytes"
	"io"
	"testing"

	"github/sabouaram/dargo/stream"
	"github/sabouaram/dargo/zapette"
)

func newPair(t *testing.T, payload []byte, dataName [10]byte) (*zapette.Master, func()) {
	t.Helper()
	toSlaveR, toSlaveW := io.Pipe()
	fromSlaveR, fromSlaveW := io.Pipe()

	archive := stream.NewMemFrom(payload)
	slave := zapette.NewSlave(archive, int64(len(payload)), 64, dataName)
	done := make(chan error, 1)
	go func() {
		done <- slave.Serve(toSlaveR, fromSlaveW)
	}()

	master := zapette.NewMaster(toSlaveW, fromSlaveR, nil)
	cleanup := func() {
		_ = master.Terminate()
		<-done
	}
	return master, cleanup
}

func TestMasterReadMatchesArchive(t *testing.T) {
	payload := bytes.Repeat([]byte("remote-bytes-"), 50)
	var name [10]byte
	copy(name[:], "ARCHIVE01")

	master, cleanup := newPair(t, payload, name)
	defer cleanup()

	got := make([]byte, len(payload))
	n, err := io.ReadFull(master, got)
	if err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if n != len(payload) || !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes", n)
	}

	if _, err := master.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected io.EOF past end of remote file, got %v", err)
	}
}

func TestMasterFileSizeAndDataName(t *testing.T) {
	payload := []byte("some archive content")
	var name [10]byte
	copy(name[:], "LABELXYZ")

	master, cleanup := newPair(t, payload, name)
	defer cleanup()

	size, err := master.FileSize()
	if err != nil {
		t.Fatalf("FileSize: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("FileSize = %d, want %d", size, len(payload))
	}

	gotName, err := master.DataName()
	if err != nil {
		t.Fatalf("DataName: %v", err)
	}
	if gotName != name {
		t.Fatalf("DataName = %v, want %v", gotName, name)
	}
}

func TestMasterSkipThenRead(t *testing.T) {
	payload := []byte("0123456789ABCDEF")
	var name [10]byte

	master, cleanup := newPair(t, payload, name)
	defer cleanup()

	ok, err := master.Skip(10)
	if err != nil || !ok {
		t.Fatalf("Skip: ok=%v err=%v", ok, err)
	}
	buf := make([]byte, 6)
	n, err := master.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf[:n], payload[10:10+n]) {
		t.Fatalf("got %q, want %q", buf[:n], payload[10:10+n])
	}
}
