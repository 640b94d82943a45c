// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/parsec/seq"
)

// Exec parses the whole of a pre-built sequence with p. Input left over
// after p is a [*Mismatch] at its first item.
func Exec[T, O any](ctx context.Context, p Parser[T, O], s seq.Seq[T]) (O, error) {
	out, rest, err := p.Parse(ctx, s)
	if err != nil {
		return out, err
	}
	_, _, err = End[T]().Parse(ctx, rest)
	return out, err
}
