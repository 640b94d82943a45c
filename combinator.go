// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/parsec/seq"
)

// Or tries p, then q at the same position if p missed recoverably.
//
// Errors are [*AltError]: a terminating failure of p is reported alone;
// if both miss, both misses are reported.
func Or[T, O any](p, q Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
		a := s.Anchor()
		v, rest, errP := p.Parse(ctx, s)
		if errP == nil {
			return v, rest, nil
		}
		if ShouldTerminate(errP) {
			return v, rest, &AltError{Side: FirstOnly[error, error](errP)}
		}
		v, rest, errQ := q.Parse(ctx, s.Rewind(a))
		switch {
		case errQ == nil:
			return v, rest, nil
		case ShouldTerminate(errQ):
			return v, rest, &AltError{Side: LastOnly[error](errQ)}
		}
		return v, rest, &AltError{Side: Both(errP, errQ)}
	})
}

// Choice tries each parser in turn, like a chain of [Or], and reports
// the miss of the last one.
func Choice[T, O any](ps ...Parser[T, O]) Parser[T, O] {
	if len(ps) == 0 {
		panic("parsec: empty choice")
	}
	return Func[T, O](func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
		a := s.Anchor()
		var (
			v    O
			rest seq.Seq[T]
			err  error
		)
		for _, p := range ps {
			v, rest, err = p.Parse(ctx, s.Rewind(a))
			if err == nil || ShouldTerminate(err) {
				return v, rest, err
			}
		}
		return v, s.Rewind(a), err
	})
}

// Join runs p then q and pairs their outputs. Errors are [*JoinError]
// naming the failing side.
func Join[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, kont.Pair[A, B]] {
	return Func[T, kont.Pair[A, B]](func(ctx context.Context, s seq.Seq[T]) (kont.Pair[A, B], seq.Seq[T], error) {
		var out kont.Pair[A, B]
		a, s, err := p.Parse(ctx, s)
		if err != nil {
			return out, s, &JoinError{Side: First[error, error](err)}
		}
		b, s, err := q.Parse(ctx, s)
		if err != nil {
			return out, s, &JoinError{Side: Last[error](err)}
		}
		return kont.Pair[A, B]{Fst: a, Snd: b}, s, nil
	})
}

// Optional runs p. A recoverable miss is returned as the Left of the
// output with the sequence rewound; a terminating failure propagates.
func Optional[T, O any](p Parser[T, O]) Parser[T, kont.Either[error, O]] {
	return Func[T, kont.Either[error, O]](func(ctx context.Context, s seq.Seq[T]) (kont.Either[error, O], seq.Seq[T], error) {
		a := s.Anchor()
		v, rest, err := p.Parse(ctx, s)
		switch {
		case err == nil:
			return kont.Right[error](v), rest, nil
		case ShouldTerminate(err):
			return kont.Either[error, O]{}, rest, err
		}
		return kont.Left[error, O](err), s.Rewind(a), nil
	})
}

// Map applies f to the output of p.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return Func[T, B](func(ctx context.Context, s seq.Seq[T]) (B, seq.Seq[T], error) {
		a, s, err := p.Parse(ctx, s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		return f(a), s, nil
	})
}

// AndThen applies a fallible f to the output of p. An error from f is a
// miss at the position after p: recoverable unless it classifies itself
// as terminating.
func AndThen[T, A, B any](p Parser[T, A], f func(A) (B, error)) Parser[T, B] {
	return Func[T, B](func(ctx context.Context, s seq.Seq[T]) (B, seq.Seq[T], error) {
		a, s, err := p.Parse(ctx, s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		b, err := f(a)
		if err != nil {
			return b, s, lift(err)
		}
		return b, s, nil
	})
}

// Then runs p and hands its result, success or failure, to f, which
// chooses the parser that continues from where p stopped.
func Then[T, A, B any](p Parser[T, A], f func(A, error) Parser[T, B]) Parser[T, B] {
	return Func[T, B](func(ctx context.Context, s seq.Seq[T]) (B, seq.Seq[T], error) {
		a, s, err := p.Parse(ctx, s)
		return f(a, err).Parse(ctx, s)
	})
}

// Discard drops the output of p.
func Discard[T, O any](p Parser[T, O]) Parser[T, struct{}] {
	return Map(p, func(O) struct{} { return struct{}{} })
}
