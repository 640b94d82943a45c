// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/parsec/seq"
)

// Driver is the state of one run of an iterative parser.
//
// Next parses one output. The run ends with the first error: a
// recoverable miss is the normal end and leaves the sequence at the
// position before the attempt; a terminating error is a failure.
type Driver[T, O any] interface {
	Next(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error)
}

// Iterative is a factory of drivers. Every Start begins a fresh run.
type Iterative[T, O any] interface {
	Start() Driver[T, O]
}

// DriverFunc adapts a function to [Driver].
type DriverFunc[T, O any] func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error)

// Next calls f(ctx, s).
func (f DriverFunc[T, O]) Next(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
	return f(ctx, s)
}

// IterativeFunc adapts a driver constructor to [Iterative].
type IterativeFunc[T, O any] func() Driver[T, O]

// Start calls f().
func (f IterativeFunc[T, O]) Start() Driver[T, O] { return f() }

// Each iterates p: every step anchors, runs p and rewinds a recoverable
// miss.
func Each[T, O any](p Parser[T, O]) Iterative[T, O] {
	return IterativeFunc[T, O](func() Driver[T, O] {
		return DriverFunc[T, O](func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
			a := s.Anchor()
			v, rest, err := p.Parse(ctx, s)
			if err != nil && !ShouldTerminate(err) {
				return v, s.Rewind(a), err
			}
			return v, rest, err
		})
	})
}

// drain runs d until it ends, feeding every output to yield. A
// recoverable end is returned as the reason; a terminating one as err.
func drain[T, O any](ctx context.Context, d Driver[T, O], s seq.Seq[T], yield func(O)) (reason error, rest seq.Seq[T], err error) {
	for {
		v, next, err := d.Next(ctx, s)
		if err != nil {
			if ShouldTerminate(err) {
				return nil, next, err
			}
			return err, next, nil
		}
		yield(v)
		s = next
	}
}

// Fold threads an accumulator through the outputs of it.
func Fold[T, O, A any](it Iterative[T, O], init A, f func(A, O) A) Parser[T, Stopped[A]] {
	return Func[T, Stopped[A]](func(ctx context.Context, s seq.Seq[T]) (Stopped[A], seq.Seq[T], error) {
		acc := init
		reason, rest, err := drain(ctx, it.Start(), s, func(v O) { acc = f(acc, v) })
		return Stopped[A]{Value: acc, Reason: reason}, rest, err
	})
}

// Collect gathers the outputs of it in order.
func Collect[T, O any](it Iterative[T, O]) Parser[T, Stopped[[]O]] {
	return Func[T, Stopped[[]O]](func(ctx context.Context, s seq.Seq[T]) (Stopped[[]O], seq.Seq[T], error) {
		var out []O
		reason, rest, err := drain(ctx, it.Start(), s, func(v O) { out = append(out, v) })
		return Stopped[[]O]{Value: out, Reason: reason}, rest, err
	})
}

// CollectSet gathers the distinct outputs of it.
func CollectSet[T any, O comparable](it Iterative[T, O]) Parser[T, Stopped[map[O]struct{}]] {
	return Func[T, Stopped[map[O]struct{}]](func(ctx context.Context, s seq.Seq[T]) (Stopped[map[O]struct{}], seq.Seq[T], error) {
		out := make(map[O]struct{})
		reason, rest, err := drain(ctx, it.Start(), s, func(v O) { out[v] = struct{}{} })
		return Stopped[map[O]struct{}]{Value: out, Reason: reason}, rest, err
	})
}

// CollectMap gathers key-value outputs of it. Later keys overwrite
// earlier ones. Go maps do not keep insertion order; [Fold] builds
// ordered containers.
func CollectMap[T any, K comparable, V any](it Iterative[T, kont.Pair[K, V]]) Parser[T, Stopped[map[K]V]] {
	return Func[T, Stopped[map[K]V]](func(ctx context.Context, s seq.Seq[T]) (Stopped[map[K]V], seq.Seq[T], error) {
		out := make(map[K]V)
		reason, rest, err := drain(ctx, it.Start(), s, func(kv kont.Pair[K, V]) { out[kv.Fst] = kv.Snd })
		return Stopped[map[K]V]{Value: out, Reason: reason}, rest, err
	})
}

// Drain runs it for its effect on the sequence and counts the outputs.
func Drain[T, O any](it Iterative[T, O]) Parser[T, Stopped[int]] {
	return Func[T, Stopped[int]](func(ctx context.Context, s seq.Seq[T]) (Stopped[int], seq.Seq[T], error) {
		n := 0
		reason, rest, err := drain(ctx, it.Start(), s, func(O) { n++ })
		return Stopped[int]{Value: n, Reason: reason}, rest, err
	})
}
