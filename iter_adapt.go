// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/parsec/seq"
	"github.com/pkg/errors"
)

// Scan threads a state through the outputs of it. Every run starts
// from a copy of init; f updates the state and derives the output.
func Scan[T, O, S, U any](it Iterative[T, O], init S, f func(*S, O) U) Iterative[T, U] {
	return IterativeFunc[T, U](func() Driver[T, U] {
		d := it.Start()
		state := init
		return DriverFunc[T, U](func(ctx context.Context, s seq.Seq[T]) (U, seq.Seq[T], error) {
			v, rest, err := d.Next(ctx, s)
			if err != nil {
				var zero U
				return zero, rest, err
			}
			return f(&state, v), rest, nil
		})
	})
}

// MapEach applies f to every output of it.
func MapEach[T, O, U any](it Iterative[T, O], f func(O) U) Iterative[T, U] {
	return IterativeFunc[T, U](func() Driver[T, U] {
		d := it.Start()
		return DriverFunc[T, U](func(ctx context.Context, s seq.Seq[T]) (U, seq.Seq[T], error) {
			v, rest, err := d.Next(ctx, s)
			if err != nil {
				var zero U
				return zero, rest, err
			}
			return f(v), rest, nil
		})
	})
}

// MapWhile applies a partial f to the outputs of it. The run ends with
// [ErrStop] at the first output f declines, rewound to before it.
func MapWhile[T, O, U any](it Iterative[T, O], f func(O) (U, bool)) Iterative[T, U] {
	return IterativeFunc[T, U](func() Driver[T, U] {
		d := it.Start()
		return DriverFunc[T, U](func(ctx context.Context, s seq.Seq[T]) (U, seq.Seq[T], error) {
			a := s.Anchor()
			v, rest, err := d.Next(ctx, s)
			if err != nil {
				var zero U
				return zero, rest, err
			}
			u, ok := f(v)
			if !ok {
				return u, s.Rewind(a), ErrStop
			}
			return u, rest, nil
		})
	})
}

// TryMapEach applies a fallible f to the outputs of it. A recoverable
// error from f ends the run, rewound to before the output; a terminating
// one fails it. Errors that do not classify themselves are recoverable.
func TryMapEach[T, O, U any](it Iterative[T, O], f func(O) (U, error)) Iterative[T, U] {
	return IterativeFunc[T, U](func() Driver[T, U] {
		d := it.Start()
		return DriverFunc[T, U](func(ctx context.Context, s seq.Seq[T]) (U, seq.Seq[T], error) {
			a := s.Anchor()
			v, rest, err := d.Next(ctx, s)
			if err != nil {
				var zero U
				return zero, rest, err
			}
			u, err := f(v)
			if err != nil {
				err = lift(err)
				if ShouldTerminate(err) {
					return u, rest, err
				}
				return u, s.Rewind(a), err
			}
			return u, rest, nil
		})
	})
}

// Take ends the run of it with [ErrLimit] after n outputs, without
// another attempt.
func Take[T, O any](it Iterative[T, O], n int) Iterative[T, O] {
	return IterativeFunc[T, O](func() Driver[T, O] {
		d := it.Start()
		taken := 0
		return DriverFunc[T, O](func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
			if taken >= n {
				var zero O
				return zero, s, ErrLimit
			}
			v, rest, err := d.Next(ctx, s)
			if err == nil {
				taken++
			}
			return v, rest, err
		})
	})
}

// AtLeast replaces a recoverable end of it that comes before n outputs
// with an [*InsufficientCountError].
//
// The shortfall is still a recoverable end, so a collecting parser
// succeeds with it as the Reason of its output. Callers check
// Stopped.Reason, or wrap the parser with [Require] to turn the
// shortfall into a miss.
func AtLeast[T, O any](it Iterative[T, O], n int) Iterative[T, O] {
	return IterativeFunc[T, O](func() Driver[T, O] {
		d := it.Start()
		got := 0
		return DriverFunc[T, O](func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
			v, rest, err := d.Next(ctx, s)
			switch {
			case err == nil:
				got++
			case got < n && !ShouldTerminate(err):
				err = &InsufficientCountError{Want: n, Got: got, Err: err}
			}
			return v, rest, err
		})
	})
}

// Require fails with the Reason of p's output when it is an
// [*InsufficientCountError], so a collection that came up short is a
// recoverable miss, as for [Repeat] below its minimum.
func Require[T, V any](p Parser[T, Stopped[V]]) Parser[T, Stopped[V]] {
	return Func[T, Stopped[V]](func(ctx context.Context, s seq.Seq[T]) (Stopped[V], seq.Seq[T], error) {
		out, rest, err := p.Parse(ctx, s)
		if err != nil {
			return out, rest, err
		}
		var ice *InsufficientCountError
		if errors.As(out.Reason, &ice) {
			return out, rest, out.Reason
		}
		return out, rest, nil
	})
}
