// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq_test

import (
	"context"
	"io"
	"testing"

	"code.hybscloud.com/parsec/seq"
)

// drain concatenates the segments of s up to the end of the source.
// The returned error is nil at a clean end.
func drain[T any](ctx context.Context, s seq.Seq[T]) ([]T, error) {
	var out []T
	segs := s.Segments()
	for {
		seg, err := segs.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, seg...)
	}
}

// mustDrain is drain for tests that expect a clean end.
func mustDrain(tb testing.TB, s seq.Seq[byte]) string {
	tb.Helper()
	out, err := drain(context.Background(), s)
	if err != nil {
		tb.Fatalf("drain: %v", err)
	}
	return string(out)
}

// fill returns a source that fills every writer completely with v,
// forever.
func fill[T any](v T) seq.SourceFunc[T] {
	return func(_ context.Context, ctl *seq.Control[T], hint int) error {
		w := ctl.Writer(hint)
		for w.Push(v) {
		}
		ctl.Advance(w)
		return nil
	}
}
