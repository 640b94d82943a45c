// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/parsec/seq"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestDriverDeliversAll(t *testing.T) {
	skipRace(t)
	data := bytes.Repeat([]byte("abcdefghij"), 300)
	d, s := seq.Start[byte](context.Background(), seq.SplitEvery(data, 7), seq.Options{
		MinCapacity: 32,
		Logger:      zaptest.NewLogger(t),
	})
	got := mustDrain(t, s)
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got != string(data) {
		t.Fatalf("got %d bytes, want %d", len(got), len(data))
	}
}

// visible counts committed items without examining them.
func visible(s seq.Seq[byte]) int {
	segs := s.Segments()
	n := 0
	for {
		seg, err := segs.TryNext()
		if err != nil {
			return n
		}
		n += len(seg)
	}
}

func TestDriverBackpressure(t *testing.T) {
	skipRace(t)
	const chunk, resume, suspend = 16, 32, 64
	d, s := seq.Start[byte](context.Background(), fill[byte]('x'), seq.Options{
		MinCapacity: chunk,
		Resume:      resume,
		Suspend:     suspend,
		Logger:      zap.NewNop(),
	})
	defer d.Close()

	// The loader suspends once unexamined items reach the threshold.
	deadline := time.Now().Add(5 * time.Second)
	for visible(s) < suspend && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	n := visible(s)
	if n < suspend || n >= suspend+chunk {
		t.Fatalf("got %d committed items, want %d..%d", n, suspend, suspend+chunk-1)
	}

	// Examining the items drops unexamined below resume and wakes it.
	s, err := s.Advance(context.Background(), n)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.Segments().Next(ctx); err != nil {
		t.Fatalf("loader did not resume: %v", err)
	}
}

func TestDriverCloseWakesConsumers(t *testing.T) {
	skipRace(t)
	d, s := seq.Start[byte](context.Background(), seq.SourceFunc[byte](func(context.Context, *seq.Control[byte], int) error {
		return iox.ErrWouldBlock
	}), seq.Options{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Segments().Next(context.Background())
		done <- err
	}()
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case err := <-done:
		var se *seq.StreamError
		if !errors.As(err, &se) || !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want stream error wrapping context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("consumer not woken by close")
	}
}

func TestDriverSourceError(t *testing.T) {
	skipRace(t)
	boom := errors.New("boom")
	d, s := seq.Start[byte](context.Background(), seq.SourceFunc[byte](func(_ context.Context, ctl *seq.Control[byte], _ int) error {
		ctl.Cancel(boom)
		return nil
	}), seq.Options{})
	if _, err := drain(context.Background(), s); !errors.Is(err, boom) {
		t.Fatalf("consumer got %v, want %v", err, boom)
	}
	if err := d.Close(); !errors.Is(err, boom) {
		t.Fatalf("close got %v, want %v", err, boom)
	}
}

func TestDriverWait(t *testing.T) {
	skipRace(t)
	d, s := seq.Start[byte](context.Background(), seq.NewSliceSource([]byte("abc")), seq.Options{})
	if err := d.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := mustDrain(t, s); got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}
