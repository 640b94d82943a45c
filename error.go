// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import (
	"fmt"

	"code.hybscloud.com/parsec/seq"
	"github.com/pkg/errors"
)

var (
	// ErrLimit ends a repetition that reached its upper bound. It is
	// recoverable: no further parse was attempted.
	ErrLimit = Recoverable(errors.New("parsec: limit reached"))

	// ErrStop ends an iteration whose map function declined an item.
	ErrStop = Recoverable(errors.New("parsec: iteration stopped"))

	// ErrReused is returned by a [OnceParser] used more than once.
	ErrReused = errors.New("parsec: one-shot parser reused")
)

// terminator is implemented by errors that classify themselves.
type terminator interface {
	ShouldTerminate() bool
}

// ShouldTerminate reports whether err must stop backtracking.
//
// The outermost error in err's chain that implements
// ShouldTerminate() bool decides. Errors that do not classify
// themselves are fatal, so unknown failures never trigger an
// alternative. A nil error does not terminate.
func ShouldTerminate(err error) bool {
	if err == nil {
		return false
	}
	var t terminator
	if errors.As(err, &t) {
		return t.ShouldTerminate()
	}
	return true
}

// Mismatch is the recoverable miss reported by primitives when the input
// does not match.
type Mismatch struct {
	// Pos is the absolute position of the mismatch.
	Pos int64
	// Want describes the expected input.
	Want string
}

func (e *Mismatch) Error() string {
	return fmt.Sprintf("parsec: mismatch at %d: want %s", e.Pos, e.Want)
}

// ShouldTerminate reports false.
func (*Mismatch) ShouldTerminate() bool { return false }

type fatal struct{ err error }

func (e *fatal) Error() string         { return e.err.Error() }
func (e *fatal) Unwrap() error         { return e.err }
func (e *fatal) ShouldTerminate() bool { return true }

// Terminate promotes err to a terminating failure. Used by parsers that
// committed to a branch and found it malformed.
func Terminate(err error) error {
	if err == nil {
		return nil
	}
	return &fatal{err: err}
}

type recoverable struct{ err error }

func (e *recoverable) Error() string         { return e.err.Error() }
func (e *recoverable) Unwrap() error         { return e.err }
func (e *recoverable) ShouldTerminate() bool { return false }

// Recoverable marks err as a recoverable miss. Stream errors stay fatal.
func Recoverable(err error) error {
	if err == nil {
		return nil
	}
	var se *seq.StreamError
	if errors.As(err, &se) {
		return err
	}
	return &recoverable{err: err}
}

// lift turns an error returned by user code into a parse miss: errors
// that classify themselves keep their classification, others become
// recoverable.
func lift(err error) error {
	var t terminator
	if errors.As(err, &t) {
		return err
	}
	return Recoverable(err)
}

// InsufficientCountError is reported by [AtLeast] when an iteration ends
// before producing enough outputs. It is recoverable.
type InsufficientCountError struct {
	Want, Got int
	// Err is the miss that ended the iteration.
	Err error
}

func (e *InsufficientCountError) Error() string {
	return fmt.Sprintf("parsec: got %d items, want at least %d: %v", e.Got, e.Want, e.Err)
}

// Unwrap returns the miss that ended the iteration.
func (e *InsufficientCountError) Unwrap() error { return e.Err }

// ShouldTerminate reports false.
func (*InsufficientCountError) ShouldTerminate() bool { return false }

// JoinError is the error of [Join]: the failure of its first or its
// last parser.
type JoinError struct {
	Side Either[error, error]
}

func (e *JoinError) Error() string {
	if e.Side.IsFirst() {
		return "parsec: join first: " + e.Unwrap().Error()
	}
	return "parsec: join last: " + e.Unwrap().Error()
}

// Unwrap returns the failure.
func (e *JoinError) Unwrap() error {
	if err, ok := e.Side.First(); ok {
		return err
	}
	err, _ := e.Side.Last()
	return err
}

// ShouldTerminate reports whether the failure terminates.
func (e *JoinError) ShouldTerminate() bool {
	return ShouldTerminate(e.Unwrap())
}

// AltError is the error of [Or]: the failure of the first alternative,
// of the last one, or both misses.
type AltError struct {
	Side EitherBoth[error, error]
}

func (e *AltError) Error() string {
	a, aok := e.Side.First()
	b, bok := e.Side.Last()
	switch {
	case aok && bok:
		return fmt.Sprintf("parsec: no alternative matched: %v; %v", a, b)
	case aok:
		return "parsec: first alternative: " + a.Error()
	default:
		return "parsec: last alternative: " + b.Error()
	}
}

// Unwrap returns the failures present.
func (e *AltError) Unwrap() []error {
	var errs []error
	if a, ok := e.Side.First(); ok {
		errs = append(errs, a)
	}
	if b, ok := e.Side.Last(); ok {
		errs = append(errs, b)
	}
	return errs
}

// ShouldTerminate reports whether either failure terminates.
func (e *AltError) ShouldTerminate() bool {
	for _, err := range e.Unwrap() {
		if ShouldTerminate(err) {
			return true
		}
	}
	return false
}

// Unify flattens a [JoinError] or [AltError] into the underlying error.
// For two misses of an [Or] it returns the last one, which is the miss
// of the alternative tried last. Other errors are returned unchanged.
func Unify(err error) error {
	var je *JoinError
	if errors.As(err, &je) {
		return je.Unwrap()
	}
	var ae *AltError
	if errors.As(err, &ae) {
		if b, ok := ae.Side.Last(); ok {
			return b
		}
		a, _ := ae.Side.First()
		return a
	}
	return err
}
