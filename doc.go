// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package parsec provides streaming parser combinators over the rewindable
// segmented sequences of [code.hybscloud.com/parsec/seq].
//
// A parser consumes a [seq.Seq] and returns its output together with the
// rest of the sequence. Sequences are values: backtracking is a copy of
// an anchor, never a re-read of the source.
//
// # Architecture
//
//   - Input: [seq.Seq] cursors over a chain filled by a [seq.Loader], inline ([seq.Open]) or on its own goroutine ([seq.Start]).
//   - Outcomes: success, recoverable miss, or fatal. [ShouldTerminate] tells misses from failures; stream errors are always fatal.
//   - Backtracking: combinators capture an anchor before a speculative call and rewind on a recoverable miss only.
//   - Sum types: [Either], [EitherBoth] and [Optional] outputs are built on [code.hybscloud.com/kont].
//
// # API Topologies
//
//   - Primitives: [Atom], [Text], [Item], [TakeWhile], [End], [Pure], [Fail].
//   - Combinators: [Or], [Join], [Optional], [Repeat], [Map], [AndThen], [Then], [Loop].
//   - Fused: [Preceded], [Terminated], [Delimited], [SeparatedBy].
//   - Iterative: [Each] with [Collect], [CollectSet], [CollectMap], [Fold], [Drain], and the adapters [Scan], [MapEach], [MapWhile], [TryMapEach], [Take], [AtLeast].
//   - Expressions: [BinExpr] precedence climbing with a bounded recursion budget and an explicit-stack fallback.
//   - Recursion and reuse: [Lazy] for recursive grammars, [Once] for one-shot parsers, [NewMemo] for packrat caching.
//
// # Integration
//
//   - Blocking: [Run] parses a source inline, [RunConcurrent] with a loader goroutine, [Exec] a pre-built sequence to its end.
//   - Stepping: drive a [seq.Loader] from an event loop and parse once [seq.Loader.Done] reports true.
//
// # Example
//
//	digits := parsec.TakeWhile(func(b byte) bool { return b >= '0' && b <= '9' })
//	out, err := parsec.Exec(ctx, digits, seq.FromSlice([]byte("2026")))
package parsec
