// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// DefaultQueueCapacity is the queue capacity used when
// [NewQueueSource] is given a non-positive capacity.
const DefaultQueueCapacity = 64

// QueueSource is a channel adapter: one producer goroutine pushes chunks
// through a bounded lock-free SPSC queue and the loader dequeues them.
//
// Both sides are non-blocking. Push returns iox.ErrWouldBlock when the
// queue is full; Next returns iox.ErrWouldBlock when it is empty and the
// producer has not closed.
type QueueSource[T any] struct {
	q       lfq.SPSC[[]T]
	closed  atomix.Uint32
	pending []T
}

// NewQueueSource creates a queue source holding up to capacity chunks.
// A non-positive capacity selects DefaultQueueCapacity; the queue holds
// at least 2 chunks, and its capacity rounds up to a power of two.
func NewQueueSource[T any](capacity int) *QueueSource[T] {
	switch {
	case capacity <= 0:
		capacity = DefaultQueueCapacity
	case capacity < 2:
		capacity = 2
	}
	s := &QueueSource[T]{}
	s.q.Init(capacity)
	return s
}

// Push enqueues a chunk. The queue keeps a reference to items; the
// producer must not modify them afterwards.
// Non-blocking: returns iox.ErrWouldBlock if the queue is full.
func (s *QueueSource[T]) Push(items []T) error {
	return s.q.Enqueue(&items)
}

// Close signals that no further chunks will be pushed. Chunks pushed
// before Close are still delivered.
func (s *QueueSource[T]) Close() {
	s.closed.Add(1)
}

// Next implements [Source].
func (s *QueueSource[T]) Next(_ context.Context, ctl *Control[T], _ int) error {
	if len(s.pending) == 0 {
		items, err := s.q.Dequeue()
		if err != nil {
			if s.closed.Load() == 0 {
				return iox.ErrWouldBlock
			}
			// Close happens after the final Enqueue; drain once more.
			if items, err = s.q.Dequeue(); err != nil {
				ctl.Finish()
				return nil
			}
		}
		s.pending = items
	}
	w := ctl.Writer(len(s.pending))
	k := w.Copy(s.pending)
	s.pending = s.pending[k:]
	ctl.Advance(w)
	return nil
}
