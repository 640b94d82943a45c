// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"

	"code.hybscloud.com/iox"
	"go.uber.org/zap"
)

// LoadStatus is the result of a successful [Loader.Load].
type LoadStatus uint8

const (
	// Appended: items were staged; the staging vector still has spare
	// capacity and nothing new is visible yet.
	Appended LoadStatus = iota + 1
	// Advanced: the staging vector was sealed into a new visible node.
	Advanced
	// Finished: the source ended (or was cancelled) and the sentinel is linked.
	Finished
)

func (s LoadStatus) String() string {
	switch s {
	case Appended:
		return "appended"
	case Advanced:
		return "advanced"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Loader owns the tail of a chain and the staging vector. It pulls items
// from a [Source] and links sealed chunks for consumers.
//
// A Loader is not safe for concurrent use: at most one load is
// outstanding at any time.
type Loader[T any] struct {
	src  Source[T]
	buf  *buffer[T]
	ctl  Control[T]
	tail *node[T]
	pos  int64
	done bool
	log  *zap.Logger
}

// NewLoader builds an empty chain over src and returns its loader and a
// cursor at the head of the chain. The caller drives the loader: every
// [Loader.Load] is one step, so it can be integrated with an external
// event loop. Blocking consumers wait for the loader's append signal.
func NewLoader[T any](src Source[T], opts Options) (*Loader[T], Seq[T]) {
	opts = opts.withDefaults()
	b := &buffer[T]{serial: nextSerial()}
	root := &node[T]{}
	l := &Loader[T]{
		src:  src,
		buf:  b,
		tail: root,
		log:  opts.Logger.With(zap.Uint32("chain", b.serial)),
	}
	l.ctl.minCap = opts.MinCapacity
	return l, Seq[T]{nd: root, buf: b}
}

// Open builds a chain over src in cooperative mode: consumers that reach
// the unloaded tail run the loader themselves, one load at a time, and
// back off with iox.Backoff while the source would block.
// No goroutine is spawned.
func Open[T any](src Source[T], opts Options) Seq[T] {
	l, s := NewLoader(src, opts)
	l.buf.pull = l
	return s
}

// FromSlice returns a cursor over a fully loaded chain holding items.
// The chain takes ownership of items.
func FromSlice[T any](items []T) Seq[T] {
	b := &buffer[T]{serial: nextSerial()}
	root := &node[T]{chunk: items[:len(items):len(items)]}
	root.next.Store(&node[T]{base: int64(len(items)), end: true})
	b.committed.Store(uint64(len(items)))
	return Seq[T]{nd: root, buf: b}
}

// Load performs one step: it calls the source once and applies its
// outcome.
//
// Non-blocking: returns iox.ErrWouldBlock when the source cannot make
// progress; nothing changes and the call may be retried.
// A cancelled or misbehaving source terminates the chain with a
// [*StreamError], which Load returns together with Finished.
func (l *Loader[T]) Load(ctx context.Context) (LoadStatus, error) {
	if l.done {
		return Finished, nil
	}
	l.ctl.reset()
	err := l.src.Next(ctx, &l.ctl, l.ctl.minCap)
	if err != nil && l.ctl.outcome == outcomeNone {
		if iox.IsWouldBlock(err) {
			return 0, iox.ErrWouldBlock
		}
		l.ctl.outcome, l.ctl.err = outcomeCancel, err
	}

	switch l.ctl.outcome {
	case outcomeAdvance:
		if cap(l.ctl.buf) > len(l.ctl.buf) {
			return Appended, nil
		}
		l.seal()
		return Advanced, nil
	case outcomeFinish:
		l.seal()
		l.terminate(nil)
		return Finished, nil
	case outcomeCancel:
		se := newStreamError(l.ctl.err)
		l.seal()
		l.terminate(se)
		return Finished, se
	default:
		se := newStreamError(ErrNoOutcome)
		l.seal()
		l.terminate(se)
		return Finished, se
	}
}

// ForceCommit seals the staging vector, making staged items visible
// immediately. It is a no-op when nothing is staged.
func (l *Loader[T]) ForceCommit() {
	if !l.done {
		l.seal()
	}
}

// Abort terminates the chain with err as a stream error. Consumers see
// the items committed so far, then err.
func (l *Loader[T]) Abort(err error) {
	if l.done {
		return
	}
	l.seal()
	l.terminate(newStreamError(err))
}

// Done reports whether the sentinel is linked.
func (l *Loader[T]) Done() bool {
	return l.done
}

// Committed returns the number of items made visible so far.
func (l *Loader[T]) Committed() int64 {
	return l.pos
}

// seal moves the staged items into a new node linked onto the tail.
// The remaining spare capacity stays with the staging vector: the sealed
// chunk is capacity-clipped, so later writes never alias visible items.
func (l *Loader[T]) seal() {
	n := len(l.ctl.buf)
	if n == 0 {
		return
	}
	nd := &node[T]{chunk: l.ctl.buf[:n:n], base: l.pos}
	l.ctl.buf = l.ctl.buf[n:n]
	if cap(l.ctl.buf) == 0 {
		l.ctl.buf = nil
	}
	l.tail.next.Store(nd)
	l.tail = nd
	l.pos += int64(n)
	l.buf.committed.Store(uint64(l.pos))
	l.buf.appended.Send()
}

func (l *Loader[T]) terminate(err error) {
	l.tail.next.Store(&node[T]{base: l.pos, end: true, err: err})
	l.done = true
	l.ctl.buf = nil
	l.buf.appended.Send()
	// A suspended driver re-checks its context on wake.
	l.buf.resumed.Send()
	if err != nil {
		l.log.Debug("seq: source cancelled", zap.Int64("items", l.pos), zap.Error(err))
		return
	}
	l.log.Debug("seq: source finished", zap.Int64("items", l.pos))
}
