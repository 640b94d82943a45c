// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
)

// Notify is a multi-waiter version signal.
//
// Every Send bumps the version and wakes all registered waiters. A [Waiter]
// captured at version v becomes ready as soon as the version differs from v,
// so a Send that races with a fresh registration is never lost.
// Spurious wakes are allowed; missed wakes are not.
//
// The zero value is ready to use.
type Notify struct {
	version atomix.Uint64
	mu      sync.Mutex
	waiters []chan struct{}
}

// Waiter is a version captured by [Notify.Wait].
type Waiter struct {
	n *Notify
	v uint64
}

// Wait captures the current version. The returned Waiter completes on
// any Send that happens after the capture.
func (n *Notify) Wait() Waiter {
	return Waiter{n: n, v: n.version.Load()}
}

// Send bumps the version and wakes every registered waiter.
func (n *Notify) Send() {
	n.version.Add(1)
	n.mu.Lock()
	ws := n.waiters
	n.waiters = nil
	n.mu.Unlock()
	for _, c := range ws {
		close(c)
	}
}

// Version returns the number of Send calls observed so far.
func (n *Notify) Version() uint64 {
	return n.version.Load()
}

// forget drops c if it is still registered.
func (n *Notify) forget(c chan struct{}) {
	n.mu.Lock()
	for i, w := range n.waiters {
		if w == c {
			last := len(n.waiters) - 1
			n.waiters[i] = n.waiters[last]
			n.waiters[last] = nil
			n.waiters = n.waiters[:last]
			break
		}
	}
	n.mu.Unlock()
}

// Ready reports whether a Send happened after the capture. Never blocks.
func (w Waiter) Ready() bool {
	return w.n.version.Load() != w.v
}

// Wait blocks until a Send happened after the capture or ctx is done.
// The version is rechecked under the waiter lock before registering,
// which pairs with Send bumping the version before taking the lock.
func (w Waiter) Wait(ctx context.Context) error {
	if w.Ready() {
		return nil
	}
	n := w.n
	n.mu.Lock()
	if w.Ready() {
		n.mu.Unlock()
		return nil
	}
	c := make(chan struct{})
	n.waiters = append(n.waiters, c)
	n.mu.Unlock()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		n.forget(c)
		return ctx.Err()
	}
}
