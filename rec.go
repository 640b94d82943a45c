// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/parsec/seq"
)

// Loop runs a state machine of parsers.
// step returns a parser producing Left(nextState) to continue or
// Right(result) to finish. The loop is a trampoline: arbitrarily long
// runs use constant stack.
func Loop[T, S, A any](initial S, step func(S) Parser[T, kont.Either[S, A]]) Parser[T, A] {
	return Func[T, A](func(ctx context.Context, s seq.Seq[T]) (A, seq.Seq[T], error) {
		state := initial
		for {
			e, rest, err := step(state).Parse(ctx, s)
			if err != nil {
				var zero A
				return zero, rest, err
			}
			s = rest
			if left, ok := e.GetLeft(); ok {
				state = left
				continue
			}
			right, _ := e.GetRight()
			return right, s, nil
		}
	})
}
