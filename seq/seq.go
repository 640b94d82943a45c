// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"

	"code.hybscloud.com/iox"
	"github.com/pkg/errors"
)

// Seq is a cursor into a chain: the head node, an offset within that
// node's chunk, the shared buffer handle and an optional meter.
//
// Seq is a value. Operations that move the head return a new Seq and
// leave the receiver untouched, which makes every copy an independent
// cursor over shared storage. A single Seq value must not be used by two
// goroutines at once; copies may.
type Seq[T any] struct {
	nd    *node[T]
	off   int
	buf   *buffer[T]
	meter Meter[T]
}

// Anchor pins a position of a chain for [Seq.Rewind]. While an anchor is
// alive its node and every successor stay reachable.
type Anchor[T any] struct {
	s Seq[T]
}

// Pos returns the absolute position of the head, in items.
func (s Seq[T]) Pos() int64 {
	if s.nd == nil {
		return 0
	}
	return s.nd.base + int64(s.off)
}

// Serial returns the identifier of the chain s belongs to.
func (s Seq[T]) Serial() Serial {
	if s.buf == nil {
		return 0
	}
	return s.buf.serial
}

// Anchor captures the current position, including the meter value.
func (s Seq[T]) Anchor() Anchor[T] {
	return Anchor[T]{s: s}
}

// Rewind returns a cursor positioned at a. The receiver should not be
// used afterwards. Rewinding to an anchor of another chain panics.
func (s Seq[T]) Rewind(a Anchor[T]) Seq[T] {
	if a.s.buf != s.buf {
		panic("seq: rewind to an anchor of another chain")
	}
	return a.s
}

// Peek returns an independent cursor at the same position. Advancing it
// does not affect s.
func (s Seq[T]) Peek() Seq[T] {
	return s
}

// Measured returns s with m attached. Every later advance feeds the
// consumed items to m.
func (s Seq[T]) Measured(m Meter[T]) Seq[T] {
	s.meter = m
	return s
}

// Meter returns the meter accumulated up to the head, or nil.
func (s Seq[T]) Meter() Meter[T] {
	return s.meter
}

// Segments returns a lazy stream of the contiguous slices starting at
// the head.
func (s Seq[T]) Segments() *Segments[T] {
	return &Segments[T]{nd: s.nd, off: s.off, buf: s.buf}
}

// Advance consumes n items, waiting for the loader when it crosses an
// unloaded node boundary. The result addresses exactly n items past s.
// On error the returned cursor is where the walk stopped.
func (s Seq[T]) Advance(ctx context.Context, n int) (Seq[T], error) {
	var bo iox.Backoff
	return s.walk(ctx, n, &bo)
}

// TryAdvance is the non-blocking Advance. It returns iox.ErrWouldBlock
// and the unmoved receiver when fewer than n items are loaded.
func (s Seq[T]) TryAdvance(n int) (Seq[T], error) {
	out, err := s.walk(nil, n, nil)
	if iox.IsWouldBlock(err) {
		return s, err
	}
	return out, err
}

// walk moves the head n items forward. A nil backoff selects the
// non-blocking mode.
func (s Seq[T]) walk(ctx context.Context, n int, bo *iox.Backoff) (Seq[T], error) {
	if n < 0 {
		panic("seq: negative advance")
	}
	for n > 0 {
		if avail := len(s.nd.chunk) - s.off; avail > 0 {
			k := min(avail, n)
			if s.meter != nil {
				s.meter = s.meter.Advance(s.nd.chunk[s.off : s.off+k])
			}
			s.off += k
			n -= k
			continue
		}
		w := s.buf.appended.Wait()
		next := s.nd.next.Load()
		switch {
		case next == nil:
			if bo == nil {
				return s, iox.ErrWouldBlock
			}
			s.buf.noteExamined(s.Pos())
			if err := s.buf.await(ctx, w, bo); err != nil {
				return s, err
			}
		case next.end:
			if next.err != nil {
				return s, next.err
			}
			return s, errors.WithStack(ErrUnexpectedEnd)
		default:
			s.nd, s.off = next, 0
		}
	}
	s = s.hop()
	s.buf.noteExamined(s.Pos())
	return s, nil
}

// hop moves an exhausted head onto an already linked successor so the
// exhausted node can be reclaimed.
func (s Seq[T]) hop() Seq[T] {
	for s.off == len(s.nd.chunk) {
		next := s.nd.next.Load()
		if next == nil || next.end {
			break
		}
		s.nd, s.off = next, 0
	}
	return s
}
