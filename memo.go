// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/parsec/seq"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

// DefaultMemoCapacity is the number of results a [Memo] keeps.
const DefaultMemoCapacity = 1 << 12

// MemoOptions configures [NewMemo].
type MemoOptions struct {
	// Capacity is the number of cached results. Zero selects
	// DefaultMemoCapacity.
	Capacity int64
}

// Memo caches the results of a parser by position (packrat parsing).
//
// Entries belong to one chain: parsing a sequence of another chain
// drops every entry. Entries whose origin lies behind the position of a
// call are dropped by that call, so the cache only ever holds results
// for the region from the current head onwards.
//
// A Memo must not be shared between parses running concurrently.
type Memo[T, O any] struct {
	p     Parser[T, O]
	cache *ristretto.Cache[uint64, *memoEntry[O]]

	mu      sync.Mutex
	serial  seq.Serial
	origins []int64
	low     int64

	hits   atomix.Uint64
	misses atomix.Uint64
}

type memoEntry[O any] struct {
	out   O
	width int
	err   error
}

// NewMemo wraps p with a result cache.
func NewMemo[T, O any](p Parser[T, O], opts MemoOptions) (*Memo[T, O], error) {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultMemoCapacity
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *memoEntry[O]]{
		NumCounters:        capacity * 10,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
		Cost: func(*memoEntry[O]) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "parsec: memo cache")
	}
	return &Memo[T, O]{p: p, cache: cache}, nil
}

// Parse implements [Parser].
func (m *Memo[T, O]) Parse(ctx context.Context, s seq.Seq[T]) (O, seq.Seq[T], error) {
	pos := s.Pos()
	m.invalidate(s.Serial(), pos)
	if e, ok := m.cache.Get(uint64(pos)); ok {
		m.hits.Add(1)
		if e.err != nil {
			return e.out, s, e.err
		}
		rest, err := s.Advance(ctx, e.width)
		return e.out, rest, err
	}
	m.misses.Add(1)

	out, rest, err := m.p.Parse(ctx, s)
	if ShouldTerminate(err) {
		return out, rest, err
	}
	e := &memoEntry[O]{out: out, err: err}
	if err == nil {
		e.width = int(rest.Pos() - pos)
	}
	m.store(s.Serial(), pos, e)
	return out, rest, err
}

// invalidate drops the cache for a new chain and every entry whose
// origin lies behind pos.
func (m *Memo[T, O]) invalidate(serial seq.Serial, pos int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if serial != m.serial {
		m.cache.Clear()
		m.serial, m.origins, m.low = serial, m.origins[:0], 0
		return
	}
	if len(m.origins) == 0 || m.low >= pos {
		return
	}
	kept := m.origins[:0]
	m.low = pos
	for _, o := range m.origins {
		if o < pos {
			m.cache.Del(uint64(o))
			continue
		}
		kept = append(kept, o)
		m.low = min(m.low, o)
	}
	m.origins = kept
}

func (m *Memo[T, O]) store(serial seq.Serial, pos int64, e *memoEntry[O]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if serial != m.serial {
		return
	}
	if !m.cache.Set(uint64(pos), e, 1) {
		return
	}
	// Make the entry visible to the next Get.
	m.cache.Wait()
	if len(m.origins) == 0 || pos < m.low {
		m.low = pos
	}
	m.origins = append(m.origins, pos)
}

// Stats returns the number of cache hits and misses so far.
func (m *Memo[T, O]) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// Close releases the cache.
func (m *Memo[T, O]) Close() {
	m.cache.Close()
}
