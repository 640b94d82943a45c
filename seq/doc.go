// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package seq provides lazy, rewindable, segmented sequences over
// pull-based sources.
//
// A [Loader] pulls items from a [Source] into a staging vector and seals
// them into an append-only chain of chunks. A [Seq] is a value cursor
// into that chain: copying it is free, and an [Anchor] is just a saved
// cursor. Prefix chunks no cursor references are reclaimed by the
// garbage collector.
//
// # Architecture
//
//   - Chain: forward-linked nodes whose next link is set exactly once; sealed chunks are immutable and read without locks.
//   - Signals: [Notify] is a multi-waiter version counter on [code.hybscloud.com/atomix]; a Send racing a fresh Wait is never lost.
//   - Non-blocking: [Source.Next], [Loader.Load], [Seq.TryAdvance] and [Segments.TryNext] return [code.hybscloud.com/iox.ErrWouldBlock] instead of waiting.
//   - Transport: [QueueSource] hands chunks from a producer goroutine through a lock-free SPSC queue of [code.hybscloud.com/lfq].
//
// # Runners
//
//   - Stepping: [NewLoader] returns the loader to an external event loop; every [Loader.Load] is one step.
//   - Cooperative: [Open] lets consumers run the loader themselves when they reach unloaded input, backing off while the source would block.
//   - Concurrent: [Start] runs the loader on its own goroutine with resume/suspend backpressure; [Driver.Close] cancels and joins it.
//
// # Example
//
//	s := seq.Open[byte](seq.NewReaderSource(r), seq.Options{})
//	segs := s.Segments()
//	for {
//		seg, err := segs.Next(ctx)
//		if err != nil {
//			break // io.EOF at end of source
//		}
//		consume(seg)
//	}
package seq
