// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"

	"code.hybscloud.com/parsec/seq"
)

// Run parses src with p on the calling goroutine. The parse drives the
// loader itself whenever it reaches unloaded input, backing off with
// iox.Backoff while the source would block. Does not spawn goroutines.
func Run[T, O any](ctx context.Context, p Parser[T, O], src seq.Source[T], opts seq.Options) (O, seq.Seq[T], error) {
	return p.Parse(ctx, seq.Open(src, opts))
}

// RunConcurrent parses src with p while a loader goroutine fills the
// chain ahead of the parse, bounded by the backpressure thresholds of
// opts. The loader is stopped and joined before RunConcurrent returns.
//
// The error is the parse error if any, else the source failure.
func RunConcurrent[T, O any](ctx context.Context, p Parser[T, O], src seq.Source[T], opts seq.Options) (O, error) {
	d, s := seq.Start(ctx, src, opts)
	out, _, err := p.Parse(ctx, s)
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	return out, err
}
