// Package poseidon provides an in-circuit Poseidon permutation over the
// native field of the proving curve. It mirrors the optimized native
// schedule, so it shares its constants with package poseidon.
package poseidon

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/gnark/internal/circuit"
	"github.com/vocdoni/zkhash/internal/params"
	native "github.com/vocdoni/zkhash/poseidon"
)

// Permutation emits the constraints of one Poseidon permutation. It holds
// only constants and can be reused across circuits.
type Permutation struct {
	shape   params.Shape
	modulus *big.Int

	roundConstants [][]*big.Int
	mds, mi        [][]*big.Int
	v, wHat        [][]*big.Int
	opt            [][]*big.Int
}

// New converts a native parameter set into a circuit gadget.
func New[E any, PE field.Element[E]](p *native.Params[E, PE]) *Permutation {
	return &Permutation{
		shape:          p.Shape,
		modulus:        p.Field.Modulus(),
		roundConstants: circuit.ConstantMatrix[E, PE](p.RoundConstants),
		mds:            circuit.ConstantMatrix[E, PE](p.MDS),
		mi:             circuit.ConstantMatrix[E, PE](p.MI),
		v:              circuit.ConstantMatrix[E, PE](p.V),
		wHat:           circuit.ConstantMatrix[E, PE](p.WHat),
		opt:            circuit.ConstantMatrix[E, PE](p.OptRoundConstants),
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
		return nil, fmt.Errorf("poseidon: expected %d elements, got %d", p.shape.Width, len(state))
	}
	if err := circuit.CheckField(api, "poseidon", p.modulus); err != nil {
		return nil, err
	}
	s := append([]frontend.Variable(nil), state...)

	rfb := p.shape.HalfFull()
	pEnd := rfb + p.shape.PartialRounds

	for r := range rfb {
		s = p.fullRound(api, s, r)
	}

	circuit.AddConstants(api, s, p.opt[0])
	s = circuit.Mix(api, s, p.mi)

	for r := rfb; r < pEnd; r++ {
		s[0] = circuit.Pow(api, p.shape.Degree, s[0])
		if r < pEnd-1 {
			s[0] = api.Add(s[0], p.opt[r+1-rfb][0])
		}
		s = p.sparse(api, s, pEnd-r-1)
	}

	for r := pEnd; r < p.shape.Rounds(); r++ {
		s = p.fullRound(api, s, r)
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

func (p *Permutation) fullRound(api frontend.API, s []frontend.Variable, r int) []frontend.Variable {
	circuit.AddConstants(api, s, p.roundConstants[r])
	for i := range s {
		s[i] = circuit.Pow(api, p.shape.Degree, s[i])
	}
	return circuit.Mix(api, s, p.mds)
}

func (p *Permutation) sparse(api frontend.API, s []frontend.Variable, round int) []frontend.Variable {
	v, wHat := p.v[round], p.wHat[round]
	out := make([]frontend.Variable, len(s))
	newZero := api.Mul(s[0], p.mds[0][0])
	for i := 1; i < len(s); i++ {
		out[i] = api.Add(api.Mul(s[0], v[i-1]), s[i])
		newZero = api.Add(newZero, api.Mul(s[i], wHat[i-1]))
	}
	out[0] = newZero
	return out
}
