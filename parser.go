// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"
	"sync"

	"code.hybscloud.com/parsec/seq"
)

// Parser parses a prefix of a sequence of T into an O.
//
// On success Parse returns the output and the sequence past the consumed
// prefix. On failure it returns the error and the sequence where parsing
// stopped; that position is not meaningful to the caller, which restores
// a known one by rewinding to an anchor captured beforehand.
//
// A Parser may be used repeatedly and, unless documented otherwise, by
// concurrent parses.
type Parser[T, O any] interface {
	Parse(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error)
}

// Func adapts a function to [Parser].
type Func[T, O any] func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error)

// Parse calls f(ctx, s).
func (f Func[T, O]) Parse(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
	return f(ctx, s)
}

// Lazy defers building a parser until its first use. Recursive grammars
// refer to themselves through Lazy.
func Lazy[T, O any](build func() Parser[T, O]) Parser[T, O] {
	get := sync.OnceValue(build)
	return Func[T, O](func(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
		return get().Parse(ctx, s)
	})
}
