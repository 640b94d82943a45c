// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parsec

// Assoc is the associativity of a binary operator.
type Assoc uint8

const (
	// AssocLeft groups a ∘ b ∘ c as (a ∘ b) ∘ c.
	AssocLeft Assoc = iota
	// AssocRight groups a ∘ b ∘ c as a ∘ (b ∘ c).
	AssocRight
)

func (a Assoc) String() string {
	if a == AssocRight {
		return "right"
	}
	return "left"
}

// Operator is the output of an operator parser given to [BinExpr].
// Precedences are non-negative; higher binds tighter.
type Operator interface {
	Precedence() int
	Associativity() Assoc
}

// nextPrecedence is the minimum precedence of the right operand of op.
func nextPrecedence(op Operator) int {
	if op.Associativity() == AssocLeft {
		return op.Precedence() + 1
	}
	return op.Precedence()
}
