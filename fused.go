// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/parsec/seq"
)

// Preceded runs p then q and keeps the output of q.
// Fuses Join + Map(Snd) without the intermediate pair.
func Preceded[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Func[T, B](func(ctx context.Context, s seq.Seq[T]) (B, seq.Seq[T], error) {
		var zero B
		_, s, err := p.Parse(ctx, s)
		if err != nil {
			return zero, s, &JoinError{Side: First[error, error](err)}
		}
		b, s, err := q.Parse(ctx, s)
		if err != nil {
			return zero, s, &JoinError{Side: Last[error](err)}
		}
		return b, s, nil
	})
}

// Terminated runs p then q and keeps the output of p.
// Fuses Join + Map(Fst).
func Terminated[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Func[T, A](func(ctx context.Context, s seq.Seq[T]) (A, seq.Seq[T], error) {
		var zero A
		a, s, err := p.Parse(ctx, s)
		if err != nil {
			return zero, s, &JoinError{Side: First[error, error](err)}
		}
		_, s, err = q.Parse(ctx, s)
		if err != nil {
			return zero, s, &JoinError{Side: Last[error](err)}
		}
		return a, s, nil
	})
}

// Delimited runs left, p and right and keeps the output of p.
// Fuses Preceded + Terminated.
func Delimited[T, L, O, R any](left Parser[T, L], p Parser[T, O], right Parser[T, R]) Parser[T, O] {
	return Preceded(left, Terminated(p, right))
}

// SeparatedBy parses items separated by sep, with the item count in r.
//
// A separator is only consumed together with the item that follows it:
// when the item after a separator misses recoverably, the sequence is
// rewound to before the separator.
func SeparatedBy[T, O, S any](p Parser[T, O], sep Parser[T, S], r Range) Parser[T, Stopped[[]O]] {
	next := Preceded(sep, p)
	return Func[T, Stopped[[]O]](func(ctx context.Context, s seq.Seq[T]) (Stopped[[]O], seq.Seq[T], error) {
		out := make([]O, 0, r.Min)
		item := p
		for {
			if r.Bounded() && len(out) >= r.Max {
				return Stopped[[]O]{Value: out, Reason: ErrLimit}, s, nil
			}
			a := s.Anchor()
			v, rest, err := item.Parse(ctx, s)
			if err != nil {
				if ShouldTerminate(err) || len(out) < r.Min {
					return Stopped[[]O]{Value: out}, rest, err
				}
				return Stopped[[]O]{Value: out, Reason: Unify(err)}, s.Rewind(a), nil
			}
			out = append(out, v)
			s = rest
			item = next
		}
	})
}
