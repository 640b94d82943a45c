// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec_test

import (
	"context"
	"strings"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/parsec"
	"code.hybscloud.com/parsec/seq"
)

// BenchmarkText measures a short atom over a loaded chain.
func BenchmarkText(b *testing.B) {
	p := parsec.Text("hello")
	s := seq.FromSlice([]byte("hello world"))
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		p.Parse(ctx, s)
	}
}

// BenchmarkOrBacktrack measures an alternative that rewinds.
func BenchmarkOrBacktrack(b *testing.B) {
	p := parsec.Or(parsec.Text("hellx"), parsec.Text("hello"))
	s := seq.FromSlice([]byte("hello world"))
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		p.Parse(ctx, s)
	}
}

// BenchmarkRepeatSplit measures a repetition across 16-byte chunks.
func BenchmarkRepeatSplit(b *testing.B) {
	input := []byte(strings.Repeat("ab", 4096))
	p := parsec.Repeat(parsec.Text("ab"), parsec.Any())
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		p.Parse(ctx, seq.Open[byte](seq.SplitEvery(input, 16), seq.Options{MinCapacity: 16}))
	}
}

// BenchmarkLoop measures the trampoline of Loop.
func BenchmarkLoop(b *testing.B) {
	input := []byte(strings.Repeat("a", 1024) + ";")
	step := func(n int) parsec.Parser[byte, kont.Either[int, int]] {
		return parsec.Or(
			parsec.Map(parsec.Text("a"), func(string) kont.Either[int, int] { return kont.Left[int, int](n + 1) }),
			parsec.Map(parsec.Text(";"), func(string) kont.Either[int, int] { return kont.Right[int](n) }),
		)
	}
	p := parsec.Loop(0, step)
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		p.Parse(ctx, seq.FromSlice(input))
	}
}

// BenchmarkBinExpr measures a flat left-associative chain.
func BenchmarkBinExpr(b *testing.B) {
	input := []byte("1" + strings.Repeat(" + 2 * 3", 256))
	p := arith(0)
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		p.Parse(ctx, seq.FromSlice(input))
	}
}

// BenchmarkBinExprDeep compares recursion and the explicit stack on a
// right spine.
func BenchmarkBinExprDeep(b *testing.B) {
	input := []byte("0" + strings.Repeat(" ~ 0", 4096))
	for _, bb := range []struct {
		name  string
		limit int
	}{
		{"recursive", 1 << 20},
		{"default", 0},
		{"iterative", -1},
	} {
		b.Run(bb.name, func(b *testing.B) {
			p := arith(bb.limit)
			ctx := context.Background()
			b.ReportAllocs()
			for b.Loop() {
				p.Parse(ctx, seq.FromSlice(input))
			}
		})
	}
}

// BenchmarkMemoHit measures a cached parse.
func BenchmarkMemoHit(b *testing.B) {
	m := newMemo(b, parsec.Parser[byte, []byte](parsec.TakeWhile(isDigit)))
	s := seq.FromSlice([]byte("1234567890;"))
	ctx := context.Background()
	m.Parse(ctx, s)
	b.ReportAllocs()
	for b.Loop() {
		m.Parse(ctx, s)
	}
}

// BenchmarkRunConcurrent measures a parse fed by a loader goroutine.
func BenchmarkRunConcurrent(b *testing.B) {
	skipRace(b)
	input := []byte(strings.Repeat("ab", 4096))
	p := parsec.Drain(parsec.Each(parsec.Text("ab")))
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		parsec.RunConcurrent(ctx, p, seq.SplitEvery(input, 512), seq.Options{MinCapacity: 512})
	}
}
