// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq_test

import (
	"context"
	"testing"

	"code.hybscloud.com/parsec/seq"
)

func TestSerialMonotonic(t *testing.T) {
	s1 := seq.FromSlice([]byte("a")).Serial()
	s2 := seq.Open[byte](seq.NewSliceSource[byte](), seq.Options{}).Serial()
	_, c3 := seq.NewLoader[byte](seq.NewSliceSource[byte](), seq.Options{})
	s3 := c3.Serial()

	if s1 >= s2 {
		t.Fatalf("serials not increasing: %d >= %d", s1, s2)
	}
	if s2 >= s3 {
		t.Fatalf("serials not increasing: %d >= %d", s2, s3)
	}
}

func TestCursorSerial(t *testing.T) {
	s := seq.FromSlice([]byte("abc"))
	rest, err := s.Advance(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Serial() != rest.Serial() {
		t.Fatalf("cursor serials differ: %d != %d", s.Serial(), rest.Serial())
	}
	if s.Peek().Serial() != s.Serial() {
		t.Fatalf("peek serial differs")
	}
}
