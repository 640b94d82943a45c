// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"

	"code.hybscloud.com/iox"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Driver runs a loader on its own goroutine. Consumers on other
// goroutines wait for its append signal; the loader in turn suspends
// while too many committed items are left unexamined.
type Driver[T any] struct {
	l      *Loader[T]
	cancel context.CancelFunc
	g      *errgroup.Group
	log    *zap.Logger
}

// Start builds a chain over src and spawns its loader. The loader stops
// when the source finishes, fails, or when ctx or [Driver.Close] cancels
// it; in the latter case consumers observe a [*StreamError] wrapping the
// context error instead of waiting forever.
func Start[T any](ctx context.Context, src Source[T], opts Options) (*Driver[T], Seq[T]) {
	opts = opts.withDefaults()
	l, s := NewLoader(src, opts)
	l.buf.resume = uint64(opts.Resume)
	l.buf.suspend = uint64(opts.Suspend)

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	d := &Driver[T]{l: l, cancel: cancel, g: g, log: l.log}
	d.log.Debug("seq: driver started",
		zap.String("resume", humanize.Comma(int64(opts.Resume))),
		zap.String("suspend", humanize.Comma(int64(opts.Suspend))))
	g.Go(func() error { return d.run(gctx) })
	return d, s
}

// Close cancels the loader at its next suspension point and joins it.
// It returns the source failure, if any; cancellation by Close itself is
// not an error.
func (d *Driver[T]) Close() error {
	d.cancel()
	err := d.g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	d.log.Debug("seq: driver stopped", zap.Error(err))
	return err
}

// Wait blocks until the loader has finished on its own, without
// cancelling it.
func (d *Driver[T]) Wait() error {
	return d.g.Wait()
}

func (d *Driver[T]) run(ctx context.Context) error {
	var bo iox.Backoff
	for {
		if err := d.throttle(ctx); err != nil {
			d.l.Abort(err)
			return err
		}
		st, err := d.l.Load(ctx)
		switch {
		case iox.IsWouldBlock(err):
			d.l.ForceCommit()
			if err := ctx.Err(); err != nil {
				d.l.Abort(err)
				return err
			}
			bo.Wait()
			continue
		case st == Finished:
			return err
		}
		bo.Reset()
		// The consumer may be waiting for exactly these items.
		d.l.ForceCommit()
	}
}

// throttle suspends the loader while unexamined items are at or above
// the suspend threshold, until they drop below the resume threshold.
func (d *Driver[T]) throttle(ctx context.Context) error {
	b := d.l.buf
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.unexamined() < b.suspend {
		return nil
	}
	d.log.Debug("seq: loader suspended", zap.String("unexamined", humanize.Comma(int64(b.unexamined()))))
	for {
		w := b.resumed.Wait()
		if b.unexamined() < b.resume {
			d.log.Debug("seq: loader resumed", zap.String("unexamined", humanize.Comma(int64(b.unexamined()))))
			return nil
		}
		if err := w.Wait(ctx); err != nil {
			return err
		}
	}
}
