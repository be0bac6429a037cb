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

package pool_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github/sabouaram/dargo/pool"
)

func TestHeapAcquireReleaseRoundTrip(t *testing.T) {
	h, err := pool.NewHeap(2, 8, 16)
	if err != nil {
		t.Fatalf("NewHeap: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	a, err := h.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	b, err := h.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	shortCtx, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if _, err := h.Acquire(shortCtx); err == nil {
		t.Fatalf("expected Acquire to block once the heap is exhausted")
	}

	h.Release(a)
	c, err := h.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after Release: %v", err)
	}
	h.Release(b)
	h.Release(c)
}

func TestRatelierPreservesOrderUnderScrambledProducers(t *testing.T) {
	r, err := pool.NewRatelier(4)
	if err != nil {
		t.Fatalf("NewRatelier: %v", err)
	}

	const n = 50
	order := rand.New(rand.NewSource(1)).Perm(n)

	var wg sync.WaitGroup
	for _, seq := range order {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			time.Sleep(time.Duration(seq%5) * time.Millisecond)
			if err := r.Put(pool.Message{Seq: seq, Val: seq}); err != nil {
				t.Errorf("Put(%d): %v", seq, err)
			}
		}(uint64(seq))
	}

	go func() {
		wg.Wait()
		r.Close()
	}()

	var got []uint64
	for {
		msg, ok := r.Get()
		if !ok {
			break
		}
		got = append(got, msg.Val.(uint64))
	}

	if len(got) != n {
		t.Fatalf("got %d messages, want %d", len(got), n)
	}
	for i, v := range got {
		if v != uint64(i) {
			t.Fatalf("out of order at position %d: got %d", i, v)
		}
	}
}

func TestRatelierCloseUnblocksPut(t *testing.T) {
	r, err := pool.NewRatelier(1)
	if err != nil {
		t.Fatalf("NewRatelier: %v", err)
	}
	if err := r.Put(pool.Message{Seq: 0}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- r.Put(pool.Message{Seq: 1})
	}()

	time.Sleep(10 * time.Millisecond)
	r.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected Put to report the ratelier closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Put did not unblock after Close")
	}
}
