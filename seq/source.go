// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import "context"

// Source is the pull side of a chain: a producer of raw items.
//
// Each call to Next must record exactly one outcome on ctl:
// [Control.Advance], [Control.Cancel] or [Control.Finish].
// Returning a non-nil error is equivalent to Cancel(err).
//
// Non-blocking: a source that cannot make progress returns
// iox.ErrWouldBlock without recording an outcome. The caller retries later.
// Finish is terminal; Next is not called again after it.
type Source[T any] interface {
	Next(ctx context.Context, ctl *Control[T], hint int) error
}

// SourceFunc adapts a function to [Source].
type SourceFunc[T any] func(ctx context.Context, ctl *Control[T], hint int) error

// Next calls f(ctx, ctl, hint).
func (f SourceFunc[T]) Next(ctx context.Context, ctl *Control[T], hint int) error {
	return f(ctx, ctl, hint)
}

type outcome uint8

const (
	outcomeNone outcome = iota
	outcomeAdvance
	outcomeCancel
	outcomeFinish
)

// Control negotiates buffer ownership between a Source and its loader
// for a single Next call. buf holds the staged items: len(buf) items are
// committed to the staging vector, the rest of cap(buf) is spare capacity.
type Control[T any] struct {
	buf     []T
	minCap  int
	w       Writer[T]
	outcome outcome
	err     error
}

// Writer returns a writer over at least n items of spare capacity.
// When the staging vector is too small a new one of
// max(MinCapacity, n) spare items is allocated and the staged prefix migrates.
// Items written through an earlier writer of the same Next call and not
// yet advanced carry over to the returned writer.
func (c *Control[T]) Writer(n int) *Writer[T] {
	if n < 1 {
		n = 1
	}
	staged, pending := len(c.buf), c.w.n
	if cap(c.buf)-staged-pending < n {
		grow := max(c.minCap, n)
		nb := make([]T, staged, staged+pending+grow)
		copy(nb[:staged+pending], c.buf[:staged+pending])
		c.buf = nb
	}
	c.w = Writer[T]{spare: c.buf[staged:cap(c.buf)], n: pending}
	return &c.w
}

// Advance commits the prefix written through w.
func (c *Control[T]) Advance(w *Writer[T]) {
	c.settle(outcomeAdvance)
	if w != &c.w {
		panic("seq: writer does not belong to this control")
	}
	c.buf = c.buf[:len(c.buf)+w.n]
	c.w = Writer[T]{}
}

// Cancel aborts the source with err. Nothing written by the current
// writer is committed.
func (c *Control[T]) Cancel(err error) {
	c.settle(outcomeCancel)
	if err == nil {
		err = ErrNoOutcome
	}
	c.err = err
	c.w = Writer[T]{}
}

// Finish signals end of source.
func (c *Control[T]) Finish() {
	c.settle(outcomeFinish)
	c.w = Writer[T]{}
}

func (c *Control[T]) settle(o outcome) {
	if c.outcome != outcomeNone {
		panic("seq: source recorded more than one outcome")
	}
	c.outcome = o
}

// reset prepares c for the next Next call.
func (c *Control[T]) reset() {
	c.outcome = outcomeNone
	c.err = nil
	c.w = Writer[T]{}
}

// consume drops the first k staged items, keeping capacity.
func (c *Control[T]) consume(k int) {
	n := copy(c.buf, c.buf[k:])
	clear(c.buf[n:])
	c.buf = c.buf[:n]
}

// Writer writes items into spare staging capacity. Items become part of
// the source's output only once the writer is passed to [Control.Advance].
type Writer[T any] struct {
	spare []T
	n     int
}

// Push appends v. It reports false when the writer is full.
func (w *Writer[T]) Push(v T) bool {
	if w.n == len(w.spare) {
		return false
	}
	w.spare[w.n] = v
	w.n++
	return true
}

// Copy appends as much of src as fits and returns the count copied.
func (w *Writer[T]) Copy(src []T) int {
	k := copy(w.spare[w.n:], src)
	w.n += k
	return k
}

// Spare returns the unwritten capacity for direct fills such as
// io.Reader.Read. Call Commit with the number of items written.
func (w *Writer[T]) Spare() []T {
	return w.spare[w.n:]
}

// Commit marks k items of Spare as written.
func (w *Writer[T]) Commit(k int) {
	if k < 0 || w.n+k > len(w.spare) {
		panic("seq: writer commit out of range")
	}
	w.n += k
}

// Len returns the number of items written.
func (w *Writer[T]) Len() int { return w.n }

// Cap returns the writer capacity.
func (w *Writer[T]) Cap() int { return len(w.spare) }
