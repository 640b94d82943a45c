// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq_test

import (
	"bytes"
	"context"
	"testing"
	"testing/quick"

	"code.hybscloud.com/parsec/seq"
)

// TestPropertyAdvanceAdditive proves that advancing by m then n leaves
// the same remaining content as advancing by m+n, for any chunking of
// the source.
func TestPropertyAdvanceAdditive(t *testing.T) {
	ctx := context.Background()
	property := func(data []byte, m, n, chunk uint8) bool {
		total := len(data)
		mm := int(m) % (total + 1)
		nn := int(n) % (total - mm + 1)
		open := func() seq.Seq[byte] {
			return seq.Open[byte](seq.SplitEvery(data, int(chunk)%7+1), seq.Options{})
		}

		a, err := open().Advance(ctx, mm)
		if err != nil {
			return false
		}
		a, err = a.Advance(ctx, nn)
		if err != nil {
			return false
		}
		b, err := open().Advance(ctx, mm+nn)
		if err != nil {
			return false
		}
		ra, err := drain(ctx, a)
		if err != nil {
			return false
		}
		rb, err := drain(ctx, b)
		if err != nil {
			return false
		}
		return bytes.Equal(ra, rb) && bytes.Equal(ra, data[mm+nn:]) && a.Pos() == b.Pos()
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyRewindReplays proves that a cursor rewound to an anchor
// yields the same segment concatenation as it did when the anchor was
// captured.
func TestPropertyRewindReplays(t *testing.T) {
	ctx := context.Background()
	property := func(data []byte, skip, ahead, chunk uint8) bool {
		s := seq.Open[byte](seq.SplitEvery(data, int(chunk)%5+1), seq.Options{})
		s, err := s.Advance(ctx, int(skip)%(len(data)+1))
		if err != nil {
			return false
		}
		a := s.Anchor()
		before, err := drain(ctx, s)
		if err != nil {
			return false
		}
		moved, err := s.Advance(ctx, int(ahead)%(len(before)+1))
		if err != nil {
			return false
		}
		after, err := drain(ctx, moved.Rewind(a))
		if err != nil {
			return false
		}
		return bytes.Equal(before, after)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}
