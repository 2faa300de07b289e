// Package circuit holds the helpers shared by the native-field gadgets.
package circuit

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Pow raises v to the S-box degree d.
func Pow(api frontend.API, d sbox.Degree, v frontend.Variable) frontend.Variable {
	v2 := api.Mul(v, v)
	switch d {
	case sbox.Cube:
		return api.Mul(v2, v)
	case sbox.Quintic:
		v4 := api.Mul(v2, v2)
		return api.Mul(v4, v)
	case sbox.Septic:
		v3 := api.Mul(v2, v)
		v6 := api.Mul(v3, v3)
		return api.Mul(v6, v)
	}
	panic(fmt.Sprintf("circuit: unsupported S-box degree %d", d))
}

// Constants converts native elements into circuit constants.
func Constants[E any, PE field.Element[E]](v []E) []*big.Int {
	out := make([]*big.Int, len(v))
	for i := range v {
		out[i] = PE(&v[i]).BigInt(new(big.Int))
	}
	return out
}

// ConstantMatrix is Constants applied row by row.
func ConstantMatrix[E any, PE field.Element[E]](m [][]E) [][]*big.Int {
	out := make([][]*big.Int, len(m))
	for i := range m {
		out[i] = Constants[E, PE](m[i])
	}
	return out
}

// CheckField fails unless the circuit is being compiled over modulus.
func CheckField(api frontend.API, pkg string, modulus *big.Int) error {
	if got := api.Compiler().Field(); got.Cmp(modulus) != 0 {
		return fmt.Errorf("%s: circuit field %s differs from parameter field %s", pkg, got, modulus)
	}
	return nil
}

// Mix returns m·state.
func Mix(api frontend.API, state []frontend.Variable, m [][]*big.Int) []frontend.Variable {
	out := make([]frontend.Variable, len(m))
	for i := range m {
		sum := api.Mul(state[0], m[i][0])
		for j := 1; j < len(state); j++ {
			sum = api.Add(sum, api.Mul(state[j], m[i][j]))
		}
		out[i] = sum
	}
	return out
}

// AddConstants adds rc to the state in place.
func AddConstants(api frontend.API, state []frontend.Variable, rc []*big.Int) {
	for i := range state {
		state[i] = api.Add(state[i], rc[i])
	}
}
