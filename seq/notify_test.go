// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/parsec/seq"
)

func TestNotifySendBeforeWait(t *testing.T) {
	var n seq.Notify
	w := n.Wait()
	if w.Ready() {
		t.Fatal("waiter ready before send")
	}
	n.Send()
	if !w.Ready() {
		t.Fatal("waiter not ready after send")
	}
	if err := w.Wait(context.Background()); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if got := n.Version(); got != 1 {
		t.Fatalf("got version %d, want 1", got)
	}
}

func TestNotifyWaitAfterSendIsFresh(t *testing.T) {
	var n seq.Notify
	n.Send()
	w := n.Wait()
	if w.Ready() {
		t.Fatal("waiter captured after send is ready")
	}
}

func TestNotifyWakesAllWaiters(t *testing.T) {
	var n seq.Notify
	const waiters = 16
	var wg sync.WaitGroup
	errs := make(chan error, waiters)
	for range waiters {
		w := n.Wait()
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			errs <- w.Wait(ctx)
		}()
	}
	n.Send()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("waiter: got %v, want nil", err)
		}
	}
}

func TestNotifyWaitCancelled(t *testing.T) {
	var n seq.Notify
	w := n.Wait()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Wait(ctx) }()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	// The cancelled waiter is unregistered; Send must not block on it.
	n.Send()
}

// TestNotifyNoLostWake races Send against fresh waits: every waiter
// captured before a Send must complete.
func TestNotifyNoLostWake(t *testing.T) {
	var n seq.Notify
	for range 1000 {
		w := n.Wait()
		done := make(chan struct{})
		go func() {
			_ = w.Wait(context.Background())
			close(done)
		}()
		n.Send()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("lost wake")
		}
	}
}
