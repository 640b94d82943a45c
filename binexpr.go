// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"
	"fmt"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/parsec/seq"
)

// DefaultRecursionLimit is the recursion budget of [BinExpr].
const DefaultRecursionLimit = 256

// BinExprOptions configures [BinExpr].
type BinExprOptions struct {
	// RecursionLimit is the number of nested operands parsed by
	// recursion before switching to an explicit stack. Zero selects
	// DefaultRecursionLimit; a negative value always uses the stack.
	RecursionLimit int
}

// BinExpr parses term (op term)* by precedence climbing and builds the
// tree with leaf and node.
//
// A miss of the first term is the parser's miss. After a term, a
// recoverable operator miss ends the expression cleanly; after an
// operator, a recoverable term miss rewinds to before that operator and
// ends the expression. In both cases the miss is the Reason of the
// output. Terminating failures of either parser propagate.
//
// Recursion depth is bounded by the recursion limit. Beyond it the
// parser continues on an explicit stack and builds the same tree.
func BinExpr[T, Term any, Op Operator, E any](
	term Parser[T, Term],
	op Parser[T, Op],
	leaf func(Term) E,
	node func(E, Op, E) E,
	opts BinExprOptions,
) Parser[T, Stopped[E]] {
	limit := opts.RecursionLimit
	if limit == 0 {
		limit = DefaultRecursionLimit
	}
	b := &binExpr[T, Term, Op, E]{term: term, op: op, leaf: leaf, node: node}
	return Func[T, Stopped[E]](func(ctx context.Context, s seq.Seq[T]) (Stopped[E], seq.Seq[T], error) {
		r, err := b.climb(ctx, s, 0, limit)
		if err != nil {
			return Stopped[E]{}, r.rest, err
		}
		reason, ok := r.reason.GetLeft()
		if !ok {
			// An operator binding looser than every level: give it back.
			p, _ := r.reason.GetRight()
			r.rest = r.rest.Rewind(p.before)
			reason = &Mismatch{Pos: r.rest.Pos(), Want: fmt.Sprintf("operator of precedence >= 0, got %d", p.op.Precedence())}
		}
		return Stopped[E]{Value: r.lhs, Reason: reason}, r.rest, nil
	})
}

type binExpr[T, Term any, Op Operator, E any] struct {
	term Parser[T, Term]
	op   Parser[T, Op]
	leaf func(Term) E
	node func(E, Op, E) E
}

// pending is an operator parsed by a nested level that binds too loosely
// for it, handed back to the level that owns it. before anchors the
// position just before the operator.
type pending[T any, Op Operator] struct {
	op     Op
	before seq.Anchor[T]
}

// climbed is the result of one level: its tree, the sequence after it,
// and why it stopped. The reason is Left(miss), with rest already
// rewound, or Right(pending operator), with rest after the operator.
type climbed[T any, Op Operator, E any] struct {
	lhs    E
	rest   seq.Seq[T]
	reason kont.Either[error, pending[T, Op]]
}

// climb parses an expression whose operators bind at least minPrec.
func (b *binExpr[T, Term, Op, E]) climb(ctx context.Context, s seq.Seq[T], minPrec, budget int) (climbed[T, Op, E], error) {
	if budget <= 0 {
		return b.iterate(ctx, s, minPrec)
	}
	lhs, o, before, s, stop, err := b.operand(ctx, s)
	if err != nil || stop != nil {
		return climbed[T, Op, E]{lhs: lhs, rest: s, reason: kont.Left[error, pending[T, Op]](stop)}, err
	}
	for {
		if o.Precedence() < minPrec {
			return climbed[T, Op, E]{lhs: lhs, rest: s, reason: kont.Right[error](pending[T, Op]{op: o, before: before})}, nil
		}
		r, err := b.climb(ctx, s, nextPrecedence(o), budget-1)
		if err != nil {
			if ShouldTerminate(err) {
				return r, err
			}
			// Term miss after the operator: the operator is not ours.
			return climbed[T, Op, E]{lhs: lhs, rest: r.rest.Rewind(before), reason: kont.Left[error, pending[T, Op]](err)}, nil
		}
		lhs = b.node(lhs, o, r.lhs)
		p, ok := r.reason.GetRight()
		if !ok {
			return climbed[T, Op, E]{lhs: lhs, rest: r.rest, reason: r.reason}, nil
		}
		o, before, s = p.op, p.before, r.rest
	}
}

// operand parses a term and the operator after it. stop is the
// recoverable operator miss, with s rewound to before the attempt.
// A term miss is returned as err.
func (b *binExpr[T, Term, Op, E]) operand(ctx context.Context, s seq.Seq[T]) (lhs E, o Op, before seq.Anchor[T], rest seq.Seq[T], stop, err error) {
	t, s, err := b.term.Parse(ctx, s)
	if err != nil {
		return lhs, o, before, s, nil, err
	}
	lhs = b.leaf(t)
	before = s.Anchor()
	o, rest, err = b.op.Parse(ctx, s)
	if err != nil {
		if ShouldTerminate(err) {
			return lhs, o, before, rest, nil, err
		}
		return lhs, o, before, s.Rewind(before), err, nil
	}
	return lhs, o, before, rest, nil, nil
}

// frame is a suspended level of climb: its tree so far, the operator
// whose right operand is being parsed, and its minimum precedence.
type frame[T any, Op Operator, E any] struct {
	lhs     E
	op      Op
	before  seq.Anchor[T]
	minPrec int
}

// iterate is climb on an explicit stack. Every frame is a level climb
// would have on the goroutine stack, so both build the same tree.
func (b *binExpr[T, Term, Op, E]) iterate(ctx context.Context, s seq.Seq[T], minPrec int) (climbed[T, Op, E], error) {
	var stack []frame[T, Op, E]
call:
	for {
		var (
			r   climbed[T, Op, E]
			err error
		)
		lhs, o, before, rest, stop, perr := b.operand(ctx, s)
		switch {
		case perr != nil:
			r, err = climbed[T, Op, E]{lhs: lhs, rest: rest}, perr
		case stop != nil:
			r = climbed[T, Op, E]{lhs: lhs, rest: rest, reason: kont.Left[error, pending[T, Op]](stop)}
		case o.Precedence() < minPrec:
			r = climbed[T, Op, E]{lhs: lhs, rest: rest, reason: kont.Right[error](pending[T, Op]{op: o, before: before})}
		default:
			stack = append(stack, frame[T, Op, E]{lhs: lhs, op: o, before: before, minPrec: minPrec})
			s, minPrec = rest, nextPrecedence(o)
			continue call
		}

		// Return r to the suspended levels.
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err != nil {
				if ShouldTerminate(err) {
					return r, err
				}
				r = climbed[T, Op, E]{lhs: f.lhs, rest: r.rest.Rewind(f.before), reason: kont.Left[error, pending[T, Op]](err)}
				err = nil
				continue
			}
			lhs := b.node(f.lhs, f.op, r.lhs)
			if p, ok := r.reason.GetRight(); ok && p.op.Precedence() >= f.minPrec {
				stack = append(stack, frame[T, Op, E]{lhs: lhs, op: p.op, before: p.before, minPrec: f.minPrec})
				s, minPrec = r.rest, nextPrecedence(p.op)
				continue call
			}
			r.lhs = lhs
		}
		return r, err
	}
}
