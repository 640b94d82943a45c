// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"go.uber.org/zap"
)

// Defaults for [Options].
const (
	DefaultMinCapacity = 4096
	DefaultResume      = 64 << 10
	DefaultSuspend     = 256 << 10
)

// Options configures a chain. The zero value selects the defaults.
type Options struct {
	// MinCapacity is the smallest staging vector the loader allocates.
	MinCapacity int

	// Resume and Suspend are the backpressure thresholds of [Start], in
	// items. The loader suspends once committed-but-unexamined items reach
	// Suspend and resumes when they drop below Resume. Resume < Suspend.
	Resume  int
	Suspend int

	// Logger receives loader and driver lifecycle events.
	// Default is zap.NewNop().
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MinCapacity <= 0 {
		o.MinCapacity = DefaultMinCapacity
	}
	if o.Suspend <= 0 {
		o.Suspend = DefaultSuspend
	}
	if o.Resume <= 0 || o.Resume >= o.Suspend {
		o.Resume = min(DefaultResume, o.Suspend/2)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// node is one sealed chunk of the chain. next transitions from nil to
// set exactly once; a reader observing it set sees a fully built node.
// A sentinel (end) node marks end of source and carries the stream error.
type node[T any] struct {
	chunk []T
	base  int64
	next  atomic.Pointer[node[T]]
	end   bool
	err   error
}

// buffer is the state shared by a loader and every cursor of its chain.
// It holds no node: prefix nodes become garbage as soon as no cursor
// references them.
type buffer[T any] struct {
	serial   Serial
	appended Notify
	resumed  Notify

	committed atomix.Uint64
	examined  atomix.Uint64
	resume    uint64
	suspend   uint64

	// pull is set in cooperative mode: consumers drive the loader
	// themselves, one load at a time.
	pull   *Loader[T]
	pullMu sync.Mutex
}

// unexamined returns committed items no consumer has examined yet.
func (b *buffer[T]) unexamined() uint64 {
	c, e := b.committed.Load(), b.examined.Load()
	if e >= c {
		return 0
	}
	return c - e
}

// noteExamined raises the examined high-water mark to pos. Crossing the
// resume threshold downward wakes a suspended loader. Positions behind
// the mark are ignored, so rewound cursors never count twice.
func (b *buffer[T]) noteExamined(pos int64) {
	p := uint64(pos)
	for {
		old := b.examined.Load()
		if p <= old {
			return
		}
		if b.examined.CompareAndSwap(old, p) {
			if b.suspend == 0 {
				return
			}
			c := b.committed.Load()
			var before, after uint64
			if c > old {
				before = c - old
			}
			if c > p {
				after = c - p
			}
			if before >= b.resume && after < b.resume {
				b.resumed.Send()
			}
			return
		}
	}
}

// await blocks until more of the chain may be visible. In cooperative
// mode the caller runs one load itself; otherwise it waits for the
// loader's append signal captured in w.
func (b *buffer[T]) await(ctx context.Context, w Waiter, bo *iox.Backoff) error {
	if b.pull == nil {
		return w.Wait(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b.pullMu.Lock()
	if w.Ready() {
		b.pullMu.Unlock()
		return nil
	}
	_, err := b.pull.Load(ctx)
	if err == nil {
		b.pull.ForceCommit()
	}
	b.pullMu.Unlock()
	if iox.IsWouldBlock(err) {
		bo.Wait()
		return ctx.Err()
	}
	bo.Reset()
	return nil
}
