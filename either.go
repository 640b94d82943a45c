// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

import "code.hybscloud.com/kont"

// Either holds a value of the first or of the last kind.
type Either[A, B any] struct {
	e kont.Either[A, B]
}

// First returns an Either holding a.
func First[A, B any](a A) Either[A, B] {
	return Either[A, B]{e: kont.Left[A, B](a)}
}

// Last returns an Either holding b.
func Last[A, B any](b B) Either[A, B] {
	return Either[A, B]{e: kont.Right[A, B](b)}
}

// First returns the first value, if held.
func (e Either[A, B]) First() (A, bool) { return e.e.GetLeft() }

// Last returns the last value, if held.
func (e Either[A, B]) Last() (B, bool) { return e.e.GetRight() }

// IsFirst reports whether e holds a first value.
func (e Either[A, B]) IsFirst() bool { return e.e.IsLeft() }

// Kont returns e as a [kont.Either], first on the left.
func (e Either[A, B]) Kont() kont.Either[A, B] { return e.e }

// EitherBoth holds a first value, a last value, or both.
type EitherBoth[A, B any] struct {
	a   A
	b   B
	aok bool
	bok bool
}

// FirstOnly returns an EitherBoth holding a.
func FirstOnly[A, B any](a A) EitherBoth[A, B] {
	return EitherBoth[A, B]{a: a, aok: true}
}

// LastOnly returns an EitherBoth holding b.
func LastOnly[A, B any](b B) EitherBoth[A, B] {
	return EitherBoth[A, B]{b: b, bok: true}
}

// Both returns an EitherBoth holding a and b.
func Both[A, B any](a A, b B) EitherBoth[A, B] {
	return EitherBoth[A, B]{a: a, b: b, aok: true, bok: true}
}

// First returns the first value, if held.
func (e EitherBoth[A, B]) First() (A, bool) { return e.a, e.aok }

// Last returns the last value, if held.
func (e EitherBoth[A, B]) Last() (B, bool) { return e.b, e.bok }

// IsBoth reports whether both values are held.
func (e EitherBoth[A, B]) IsBoth() bool { return e.aok && e.bok }
