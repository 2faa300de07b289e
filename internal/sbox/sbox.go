// Package sbox implements the power maps x -> x^d used as S-boxes.
package sbox

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
)

// Degree is the S-box exponent. Only 3, 5 and 7 are supported.
type Degree uint64

const (
	Cube    Degree = 3
	Quintic Degree = 5
	Septic  Degree = 7
)

// Validate rejects unsupported exponents.
func (d Degree) Validate() error {
	switch d {
	case Cube, Quintic, Septic:
		return nil
	default:
		return fmt.Errorf("sbox: unsupported degree %d, expected 3, 5 or 7", uint64(d))
	}
}

// Apply sets x = x^d in place.
func Apply[E any, PE field.Element[E]](d Degree, x *E) {
	var x2 E
	PE(&x2).Square(x)
	switch d {
	case Cube:
		PE(x).Mul(x, &x2)
	case Quintic:
		var x4 E
		PE(&x4).Square(&x2)
		PE(x).Mul(x, &x4)
	case Septic:
		var x4 E
		PE(&x4).Square(&x2)
		PE(&x2).Mul(&x2, x)
		PE(x).Mul(&x2, &x4)
	default:
		panic(fmt.Sprintf("sbox: unsupported degree %d", uint64(d)))
	}
}

// ApplyAll applies the S-box to every element of state.
func ApplyAll[E any, PE field.Element[E]](d Degree, state []E) {
	for i := range state {
		Apply[E, PE](d, &state[i])
	}
}
