// Package poseidon2 provides an in-circuit Poseidon2 permutation over the
// native field of the proving curve.
package poseidon2

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/gnark/internal/circuit"
	"github.com/vocdoni/zkhash/internal/params"
	native "github.com/vocdoni/zkhash/poseidon2"
)

// Permutation emits the constraints of one Poseidon2 permutation following
// the reference schedule, with full round-constant vectors in every round.
type Permutation struct {
	shape          params.Shape
	modulus        *big.Int
	roundConstants [][]*big.Int
	diagM1         []*big.Int
}

// New converts a native parameter set into a circuit gadget.
func New[E any, PE field.Element[E]](p *native.Params[E, PE]) *Permutation {
	return &Permutation{
		shape:          p.Shape,
		modulus:        p.Field.Modulus(),
		roundConstants: circuit.ConstantMatrix[E, PE](p.RoundConstants),
		diagM1:         circuit.Constants[E, PE](p.DiagM1),
	}
}

// NewBN254 returns the gadget of the catalogued BN254 instance of width t.
func NewBN254(t int) (*Permutation, error) {
	p, err := native.ForField(field.BN254, t)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// NewBLS12381 returns the gadget of the catalogued BLS12-381 instance of
// width t.
func NewBLS12381(t int) (*Permutation, error) {
	p, err := native.ForField(field.BLS12381, t)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

func (p *Permutation) Width() int { return p.shape.Width }

// Permute returns the permutation of state; state itself is left untouched.
func (p *Permutation) Permute(api frontend.API, state []frontend.Variable) ([]frontend.Variable, error) {
	if len(state) != p.shape.Width {
		return nil, fmt.Errorf("poseidon2: expected %d elements, got %d", p.shape.Width, len(state))
	}
	if err := circuit.CheckField(api, "poseidon2", p.modulus); err != nil {
		return nil, err
	}
	s := append([]frontend.Variable(nil), state...)
	rfb := p.shape.HalfFull()
	pEnd := rfb + p.shape.PartialRounds

	p.matMulExternal(api, s)
	for r := range p.shape.Rounds() {
		circuit.AddConstants(api, s, p.roundConstants[r])
		if r >= rfb && r < pEnd {
			s[0] = circuit.Pow(api, p.shape.Degree, s[0])
			p.matMulInternal(api, s)
			continue
		}
		for i := range s {
			s[i] = circuit.Pow(api, p.shape.Degree, s[i])
		}
		p.matMulExternal(api, s)
	}
	return s, nil
}

// Compress zero-pads (a, b) to the state width, permutes and returns the
// first element.
func (p *Permutation) Compress(api frontend.API, a, b frontend.Variable) (frontend.Variable, error) {
	state := make([]frontend.Variable, p.shape.Width)
	state[0], state[1] = a, b
	for i := 2; i < len(state); i++ {
		state[i] = 0
	}
	out, err := p.Permute(api, state)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// matMulM4 multiplies each 4-element block by M4, with the addition chain of
// the Poseidon2 paper (appendix B).
func matMulM4(api frontend.API, s []frontend.Variable) {
	for i := 0; i < len(s); i += 4 {
		t0 := api.Add(s[i], s[i+1])
		t1 := api.Add(s[i+2], s[i+3])
		t2 := api.Add(api.Mul(s[i+1], 2), t1)
		t3 := api.Add(api.Mul(s[i+3], 2), t0)
		t4 := api.Add(api.Mul(t1, 4), t3)
		t5 := api.Add(api.Mul(t0, 4), t2)
		s[i], s[i+1], s[i+2], s[i+3] = api.Add(t3, t5), t5, api.Add(t2, t4), t4
	}
}

func (p *Permutation) matMulExternal(api frontend.API, s []frontend.Variable) {
	if len(s) == 3 {
		sum := api.Add(s[0], s[1], s[2])
		for i := range s {
			s[i] = api.Add(s[i], sum)
		}
		return
	}
	matMulM4(api, s)
	var sums [4]frontend.Variable
	for l := range 4 {
		sums[l] = s[l]
		for j := 4 + l; j < len(s); j += 4 {
			sums[l] = api.Add(sums[l], s[j])
		}
	}
	for i := range s {
		s[i] = api.Add(s[i], sums[i%4])
	}
}

func (p *Permutation) matMulInternal(api frontend.API, s []frontend.Variable) {
	sum := s[0]
	for i := 1; i < len(s); i++ {
		sum = api.Add(sum, s[i])
	}
	for i := range s {
		s[i] = api.Add(api.Mul(s[i], p.diagM1[i]), sum)
	}
}
