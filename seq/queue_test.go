// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq_test

import (
	"bytes"
	"context"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/parsec/seq"
)

// produce pushes data in chunks of n, retrying while the queue is full,
// then closes the queue.
func produce(q *seq.QueueSource[byte], data []byte, n int) {
	var bo iox.Backoff
	for len(data) > 0 {
		k := min(n, len(data))
		if err := q.Push(data[:k]); err != nil {
			bo.Wait()
			continue
		}
		bo.Reset()
		data = data[k:]
	}
	q.Close()
}

func TestQueueSourceCooperative(t *testing.T) {
	skipRace(t)
	data := bytes.Repeat([]byte("queue-"), 500)
	q := seq.NewQueueSource[byte](4)
	go produce(q, data, 7)

	s := seq.Open[byte](q, seq.Options{MinCapacity: 16})
	if got := mustDrain(t, s); got != string(data) {
		t.Fatalf("got %d bytes, want %d", len(got), len(data))
	}
}

func TestQueueSourceDriver(t *testing.T) {
	skipRace(t)
	data := bytes.Repeat([]byte("driver-"), 500)
	q := seq.NewQueueSource[byte](0)
	go produce(q, data, 13)

	d, s := seq.Start[byte](context.Background(), q, seq.Options{MinCapacity: 32})
	got := mustDrain(t, s)
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got != string(data) {
		t.Fatalf("got %d bytes, want %d", len(got), len(data))
	}
}

func TestQueueSourceEmptyWouldBlock(t *testing.T) {
	skipRace(t)
	q := seq.NewQueueSource[byte](2)
	l, _ := seq.NewLoader[byte](q, seq.Options{})
	if _, err := l.Load(context.Background()); !iox.IsWouldBlock(err) {
		t.Fatalf("got %v, want ErrWouldBlock", err)
	}
	q.Close()
	if st, err := l.Load(context.Background()); err != nil || st != seq.Finished {
		t.Fatalf("got %v, %v, want finished", st, err)
	}
}

func TestQueueSourceFullWouldBlock(t *testing.T) {
	skipRace(t)
	q := seq.NewQueueSource[byte](2)
	var err error
	for range 64 {
		if err = q.Push([]byte("x")); err != nil {
			break
		}
	}
	if !iox.IsWouldBlock(err) {
		t.Fatalf("got %v, want ErrWouldBlock from a full queue", err)
	}
}

func TestQueueSourceCapacityOne(t *testing.T) {
	skipRace(t)
	q := seq.NewQueueSource[byte](1)
	if err := q.Push([]byte("ab")); err != nil {
		t.Fatalf("push: %v", err)
	}
	q.Close()
	if got := mustDrain(t, seq.Open[byte](q, seq.Options{})); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}
