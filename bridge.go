// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/parsec/seq"
	"github.com/pkg/errors"
)

// OnceParser is a parser that may run at most once. It holds the parse
// as an affine continuation: the first ParseOnce resumes it, later calls
// fail with [ErrReused] without running the parser.
type OnceParser[T, O any] struct {
	k *kont.Affine[onceResult[T, O], onceCall[T]]
}

type onceCall[T any] struct {
	ctx context.Context
	s   seq.Seq[T]
}

type onceResult[T, O any] struct {
	out  O
	rest seq.Seq[T]
	err  error
}

// Once wraps p so that it can be used a single time.
func Once[T, O any](p Parser[T, O]) *OnceParser[T, O] {
	return &OnceParser[T, O]{k: kont.Once(func(c onceCall[T]) onceResult[T, O] {
		out, rest, err := p.Parse(c.ctx, c.s)
		return onceResult[T, O]{out: out, rest: rest, err: err}
	})}
}

// ParseOnce runs the wrapped parser on its first call.
func (p *OnceParser[T, O]) ParseOnce(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
	r, ok := p.k.TryResume(onceCall[T]{ctx: ctx, s: s})
	if !ok {
		var zero O
		return zero, s, errors.WithStack(ErrReused)
	}
	return r.out, r.rest, r.err
}

// Parse implements [Parser] by delegating to ParseOnce, so a one-shot
// parser composes with every combinator. Only the first call parses.
func (p *OnceParser[T, O]) Parse(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
	return p.ParseOnce(ctx, s)
}

// Discard consumes the parser without running it.
func (p *OnceParser[T, O]) Discard() {
	p.k.Discard()
}
