// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"context"
	"fmt"

	"code.hybscloud.com/parsec/seq"
)

// Stopped is the output of a parser that runs until a recoverable miss:
// the accumulated value and the miss that ended it.
type Stopped[V any] struct {
	Value  V
	Reason error
}

// Range is an inclusive cardinality range. Max < 0 means unbounded.
type Range struct {
	Min, Max int
}

// Any is the range 0 or more.
func Any() Range { return Range{Min: 0, Max: -1} }

// AtLeastN is the range n or more.
func AtLeastN(n int) Range {
	if n < 0 {
		panic("parsec: negative range bound")
	}
	return Range{Min: n, Max: -1}
}

// Below is the range 0 to n, n excluded. n must be positive.
func Below(n int) Range {
	if n < 1 {
		panic("parsec: empty range")
	}
	return Range{Min: 0, Max: n - 1}
}

// UpTo is the range 0 to n, n included.
func UpTo(n int) Range {
	if n < 0 {
		panic("parsec: negative range bound")
	}
	return Range{Min: 0, Max: n}
}

// Between is the range n to m, m excluded. m must exceed n.
func Between(n, m int) Range {
	if n < 0 || m <= n {
		panic("parsec: empty range")
	}
	return Range{Min: n, Max: m - 1}
}

// Exactly is the range n to n.
func Exactly(n int) Range {
	if n < 0 {
		panic("parsec: negative range bound")
	}
	return Range{Min: n, Max: n}
}

// Contains reports whether n lies in r.
func (r Range) Contains(n int) bool {
	return n >= r.Min && (r.Max < 0 || n <= r.Max)
}

// Bounded reports whether r has an upper bound.
func (r Range) Bounded() bool { return r.Max >= 0 }

func (r Range) String() string {
	if r.Max < 0 {
		return fmt.Sprintf("%d..", r.Min)
	}
	return fmt.Sprintf("%d..=%d", r.Min, r.Max)
}

// Repeat runs p as many times as r allows.
//
// Each attempt is anchored; the first recoverable miss is rewound and
// becomes the Reason of the output. A miss before r.Min outputs is
// returned as the error instead. Once the count reaches a bounded
// r.Max, Repeat stops without another attempt and reports [ErrLimit].
// Terminating failures propagate.
//
// The output slice is pre-allocated for r.Min items.
func Repeat[T, O any](p Parser[T, O], r Range) Parser[T, Stopped[[]O]] {
	return Func[T, Stopped[[]O]](func(ctx context.Context, s seq.Seq[T]) (Stopped[[]O], seq.Seq[T], error) {
		out := make([]O, 0, r.Min)
		for {
			if r.Bounded() && len(out) >= r.Max {
				return Stopped[[]O]{Value: out, Reason: ErrLimit}, s, nil
			}
			a := s.Anchor()
			v, rest, err := p.Parse(ctx, s)
			if err != nil {
				if ShouldTerminate(err) || len(out) < r.Min {
					return Stopped[[]O]{Value: out}, rest, err
				}
				return Stopped[[]O]{Value: out, Reason: err}, s.Rewind(a), nil
			}
			out = append(out, v)
			s = rest
		}
	})
}
