// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"
	"io"

	"code.hybscloud.com/iox"
)

// Segments is a lazy stream of contiguous slices of a chain.
//
// The concatenation of the yielded segments equals the content of the
// cursor it was cut from, up to what the loader has committed. The end
// of the stream is reported only once the source finished.
// Yielded slices are shared with the chain and must not be modified.
type Segments[T any] struct {
	nd  *node[T]
	off int
	buf *buffer[T]
}

// TryNext returns the next segment without blocking.
//
// It returns io.EOF at the end of the source, the [*StreamError] if the
// source was cancelled, and iox.ErrWouldBlock at an unloaded tail.
func (s *Segments[T]) TryNext() ([]T, error) {
	for {
		if s.off < len(s.nd.chunk) {
			seg := s.nd.chunk[s.off:]
			s.off = len(s.nd.chunk)
			return seg, nil
		}
		next := s.nd.next.Load()
		switch {
		case next == nil:
			return nil, iox.ErrWouldBlock
		case next.end:
			if next.err != nil {
				return nil, next.err
			}
			return nil, io.EOF
		}
		s.nd, s.off = next, 0
	}
}

// Next returns the next segment, waiting for the loader at the tail.
// Reaching the tail marks every committed item as examined, so a
// consumer scanning ahead without advancing never stalls a suspended
// loader.
func (s *Segments[T]) Next(ctx context.Context) ([]T, error) {
	var bo iox.Backoff
	for {
		w := s.buf.appended.Wait()
		seg, err := s.TryNext()
		if !iox.IsWouldBlock(err) {
			return seg, err
		}
		s.buf.noteExamined(s.nd.base + int64(s.off))
		if err := s.buf.await(ctx, w, &bo); err != nil {
			return nil, err
		}
	}
}

// Pos returns the absolute position of the next item the stream yields.
func (s *Segments[T]) Pos() int64 {
	return s.nd.base + int64(s.off)
}
