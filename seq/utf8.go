// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"context"
	"unicode/utf8"
)

// ValidateUTF8 wraps a byte source so that only complete, valid UTF-8
// reaches the chain. Incomplete trailing sequences are held back until
// the next chunk completes them; an invalid sequence, or an incomplete
// one at end of source, cancels the source with a [*UTF8Error].
//
// Every chunk the wrapper commits therefore ends on a rune boundary.
func ValidateUTF8(src Source[byte]) Source[byte] {
	return &utf8Source{inner: src}
}

type utf8Source struct {
	inner Source[byte]
	ctl   Control[byte]
	off   int64
	eof   bool
}

func (v *utf8Source) Next(ctx context.Context, ctl *Control[byte], hint int) error {
	if v.ctl.minCap == 0 {
		v.ctl.minCap = max(hint, utf8.UTFMax)
	}
	for {
		staged := v.ctl.buf
		k, bad := completePrefix(staged)
		if bad >= 0 {
			ctl.Cancel(&UTF8Error{Offset: v.off + int64(bad)})
			return nil
		}
		if k > 0 {
			w := ctl.Writer(k)
			w.Copy(staged[:k])
			ctl.Advance(w)
			v.ctl.consume(k)
			v.off += int64(k)
			return nil
		}
		if v.eof {
			if len(staged) > 0 {
				ctl.Cancel(&UTF8Error{Offset: v.off})
				return nil
			}
			ctl.Finish()
			return nil
		}

		v.ctl.reset()
		err := v.inner.Next(ctx, &v.ctl, hint)
		if err != nil && v.ctl.outcome == outcomeNone {
			return err
		}
		switch v.ctl.outcome {
		case outcomeFinish:
			v.eof = true
		case outcomeCancel:
			ctl.Cancel(v.ctl.err)
			return nil
		case outcomeNone:
			ctl.Cancel(ErrNoOutcome)
			return nil
		}
	}
}

// completePrefix returns the length of the longest prefix of b made of
// complete runes. bad is the index of the first invalid byte, or -1.
// A truncated sequence at the end of b is not invalid: it is excluded
// from the prefix.
func completePrefix(b []byte) (k, bad int) {
	for k < len(b) {
		if b[k] < utf8.RuneSelf {
			k++
			continue
		}
		r, size := utf8.DecodeRune(b[k:])
		if r == utf8.RuneError && size == 1 {
			if !utf8.FullRune(b[k:]) {
				return k, -1
			}
			return k, k
		}
		k += size
	}
	return k, -1
}
