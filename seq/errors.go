// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnexpectedEnd is returned by Advance when the source finished
	// before the requested number of items was available.
	ErrUnexpectedEnd = errors.New("seq: advance past end of source")

	// ErrNoOutcome is the stream error recorded when a Source returned
	// from Next without advancing, cancelling or finishing.
	ErrNoOutcome = errors.New("seq: source returned without an outcome")
)

// StreamError is an I/O failure reported by the underlying source.
// It is always fatal to a parse.
type StreamError struct {
	err error
}

// newStreamError wraps err with a stack trace unless it already is a
// StreamError.
func newStreamError(err error) *StreamError {
	var se *StreamError
	if errors.As(err, &se) {
		return se
	}
	return &StreamError{err: errors.WithStack(err)}
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("seq: stream: %v", e.err)
}

// Unwrap returns the source error.
func (e *StreamError) Unwrap() error {
	return e.err
}

// ShouldTerminate reports true: stream errors stop backtracking.
func (*StreamError) ShouldTerminate() bool {
	return true
}

// UTF8Error reports an invalid UTF-8 sequence found by [ValidateUTF8].
type UTF8Error struct {
	// Offset is the byte offset of the first invalid byte.
	Offset int64
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("seq: invalid utf-8 at byte %d", e.Offset)
}

// ShouldTerminate reports true.
func (*UTF8Error) ShouldTerminate() bool {
	return true
}
