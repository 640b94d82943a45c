// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec_test

import (
	"context"
	"io"
	"testing"

	"code.hybscloud.com/parsec"
	"code.hybscloud.com/parsec/seq"
)

// split returns a cursor over input delivered in pieces of n bytes, so
// every parser under test also crosses chunk boundaries.
func split(input string, n int) seq.Seq[byte] {
	return seq.Open[byte](seq.SplitEvery([]byte(input), n), seq.Options{})
}

// rest returns what is left of s.
func rest(tb testing.TB, s seq.Seq[byte]) string {
	tb.Helper()
	var out []byte
	segs := s.Segments()
	for {
		seg, err := segs.Next(context.Background())
		if err == io.EOF {
			return string(out)
		}
		if err != nil {
			tb.Fatalf("rest: %v", err)
		}
		out = append(out, seg...)
	}
}

// parse runs p over input split at every byte and returns the output,
// the rest of the input and the error.
func parse[O any](tb testing.TB, p parsec.Parser[byte, O], input string) (O, string, error) {
	tb.Helper()
	out, s, err := p.Parse(context.Background(), split(input, 1))
	if err != nil {
		return out, "", err
	}
	return out, rest(tb, s), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool { return b == ' ' }
