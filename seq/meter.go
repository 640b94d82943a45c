// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"fmt"
	"unicode/utf8"
)

// Meter accumulates metrics as a cursor advances. Meters are values:
// Advance returns the updated meter and leaves the receiver unchanged,
// so anchors keep the snapshot they were captured with.
type Meter[T any] interface {
	Advance(seg []T) Meter[T]
}

// Count counts consumed items.
type Count[T any] struct {
	N int64
}

// Advance implements [Meter].
func (c Count[T]) Advance(seg []T) Meter[T] {
	return Count[T]{N: c.N + int64(len(seg))}
}

// LineCol tracks the 1-based line and column of a UTF-8 byte stream.
// Columns count runes.
type LineCol struct {
	Line, Col int
}

// StartLineCol is the position of the first byte of a stream.
var StartLineCol = LineCol{Line: 1, Col: 1}

// Advance implements [Meter].
func (p LineCol) Advance(seg []byte) Meter[byte] {
	if p.Line == 0 {
		p = StartLineCol
	}
	for _, b := range seg {
		switch {
		case b == '\n':
			p.Line++
			p.Col = 1
		case utf8.RuneStart(b):
			p.Col++
		}
	}
	return p
}

func (p LineCol) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
