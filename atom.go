// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"code.hybscloud.com/parsec/seq"
)

// Atom matches pattern exactly. On success the sequence advances by
// len(pattern) and the output is pattern itself, shared with the caller.
func Atom[T comparable](pattern ...T) Parser[T, []T] {
	return atom(pattern, fmt.Sprint(pattern))
}

func atom[T comparable](pattern []T, want string) Func[T, []T] {
	return func(ctx context.Context, s seq.Seq[T]) ([]T, seq.Seq[T], error) {
		rest := pattern
		segs := s.Segments()
		for len(rest) > 0 {
			seg, err := segs.Next(ctx)
			if err == io.EOF {
				return nil, s, &Mismatch{Pos: s.Pos(), Want: want}
			}
			if err != nil {
				return nil, s, err
			}
			k := min(len(seg), len(rest))
			for i := range k {
				if seg[i] != rest[i] {
					return nil, s, &Mismatch{Pos: s.Pos(), Want: want}
				}
			}
			rest = rest[k:]
		}
		s, err := s.Advance(ctx, len(pattern))
		if err != nil {
			return nil, s, err
		}
		return pattern, s, nil
	}
}

// Text matches the bytes of text.
func Text(text string) Parser[byte, string] {
	p := atom([]byte(text), strconv.Quote(text))
	return Func[byte, string](func(ctx context.Context, s seq.Seq[byte]) (string, seq.Seq[byte], error) {
		_, rest, err := p(ctx, s)
		if err != nil {
			return "", rest, err
		}
		return text, rest, nil
	})
}

// Item matches a single item satisfying pred.
func Item[T any](pred func(T) bool) Parser[T, T] {
	return Func[T, T](func(ctx context.Context, s seq.Seq[T]) (T, seq.Seq[T], error) {
		var zero T
		seg, err := s.Segments().Next(ctx)
		if err == io.EOF {
			return zero, s, &Mismatch{Pos: s.Pos(), Want: "item"}
		}
		if err != nil {
			return zero, s, err
		}
		v := seg[0]
		if !pred(v) {
			return zero, s, &Mismatch{Pos: s.Pos(), Want: "item"}
		}
		s, err = s.Advance(ctx, 1)
		return v, s, err
	})
}

// TakeWhile consumes the longest prefix whose items satisfy pred and
// returns a copy of it. It never misses; the prefix may be empty.
func TakeWhile[T any](pred func(T) bool) Parser[T, []T] {
	return Func[T, []T](func(ctx context.Context, s seq.Seq[T]) ([]T, seq.Seq[T], error) {
		var out []T
		segs := s.Segments()
	scan:
		for {
			seg, err := segs.Next(ctx)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, s, err
			}
			for i, v := range seg {
				if !pred(v) {
					out = append(out, seg[:i]...)
					break scan
				}
			}
			out = append(out, seg...)
		}
		s, err := s.Advance(ctx, len(out))
		return out, s, err
	})
}

// End succeeds only at the end of the source.
func End[T any]() Parser[T, struct{}] {
	return Func[T, struct{}](func(ctx context.Context, s seq.Seq[T]) (struct{}, seq.Seq[T], error) {
		_, err := s.Segments().Next(ctx)
		switch err {
		case io.EOF:
			return struct{}{}, s, nil
		case nil:
			return struct{}{}, s, &Mismatch{Pos: s.Pos(), Want: "end of input"}
		}
		return struct{}{}, s, err
	})
}

// Pure succeeds with v without consuming input.
func Pure[T, O any](v O) Parser[T, O] {
	return Func[T, O](func(_ context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
		return v, s, nil
	})
}

// Fail fails with err without consuming input.
func Fail[T, O any](err error) Parser[T, O] {
	return Func[T, O](func(_ context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
		var zero O
		return zero, s, err
	})
}
