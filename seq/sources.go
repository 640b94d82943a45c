// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// SliceSource emits pre-split pieces, one piece per Next call, then
// finishes. It is the simplest way to exercise chunk boundaries.
type SliceSource[T any] struct {
	pieces [][]T
}

// NewSliceSource returns a source yielding pieces in order.
func NewSliceSource[T any](pieces ...[]T) *SliceSource[T] {
	return &SliceSource[T]{pieces: pieces}
}

// SplitEvery returns a source yielding items in pieces of n items.
func SplitEvery[T any](items []T, n int) *SliceSource[T] {
	if n < 1 {
		n = 1
	}
	pieces := make([][]T, 0, (len(items)+n-1)/n)
	for len(items) > n {
		pieces = append(pieces, items[:n])
		items = items[n:]
	}
	if len(items) > 0 {
		pieces = append(pieces, items)
	}
	return &SliceSource[T]{pieces: pieces}
}

// Next implements [Source].
func (s *SliceSource[T]) Next(_ context.Context, ctl *Control[T], _ int) error {
	if len(s.pieces) == 0 {
		ctl.Finish()
		return nil
	}
	p := s.pieces[0]
	s.pieces = s.pieces[1:]
	w := ctl.Writer(len(p))
	w.Copy(p)
	ctl.Advance(w)
	return nil
}

// ReaderSource reads bytes from an io.Reader. Each Next performs at
// most one Read into the staging vector.
type ReaderSource struct {
	r   io.Reader
	eof bool
}

// NewReaderSource returns a source reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Next implements [Source].
func (s *ReaderSource) Next(ctx context.Context, ctl *Control[byte], hint int) error {
	if s.eof {
		ctl.Finish()
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	w := ctl.Writer(hint)
	n, err := s.r.Read(w.Spare())
	w.Commit(n)
	switch {
	case err == io.EOF:
		if n == 0 {
			ctl.Finish()
			return nil
		}
		s.eof = true
	case err != nil:
		ctl.Cancel(errors.Wrap(err, "seq: read"))
		return nil
	}
	ctl.Advance(w)
	return nil
}
