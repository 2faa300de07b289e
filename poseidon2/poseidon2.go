// Package poseidon2 implements the Poseidon2 permutation: cheap external
// layers built from 4×4 blocks, and a diagonal-plus-ones internal layer for
// the partial rounds.
package poseidon2

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Poseidon2 is a permutation instance. It is immutable and safe for
// concurrent use.
type Poseidon2[E any, PE field.Element[E]] struct {
	params *Params[E, PE]
}

// New returns the permutation defined by p.
func New[E any, PE field.Element[E]](p *Params[E, PE]) *Poseidon2[E, PE] {
	return &Poseidon2[E, PE]{params: p}
}

// Params returns the instance parameters.
func (p *Poseidon2[E, PE]) Params() *Params[E, PE] { return p.params }

// Width is the state size t.
func (p *Poseidon2[E, PE]) Width() int { return p.params.Width }

// Permutation applies the optimized schedule, where partial rounds only add
// a scalar constant to the first element, to a copy of in.
func (p *Poseidon2[E, PE]) Permutation(in []E) []E {
	state := p.load(in)
	p.permute(state)
	return state
}

// PermutationNotOpt adds the full round-constant vector in every round.
func (p *Poseidon2[E, PE]) PermutationNotOpt(in []E) []E {
	pr := p.params
	state := p.load(in)
	rfb, pEnd := pr.HalfFull(), pr.HalfFull()+pr.PartialRounds

	MatMulExternal[E, PE](state)
	for r := range pr.Rounds() {
		addRoundConstants[E, PE](state, pr.RoundConstants[r])
		if r >= rfb && r < pEnd {
			sbox.Apply[E, PE](pr.Degree, &state[0])
			MatMulInternal[E, PE](state, pr.DiagM1)
		} else {
			sbox.ApplyAll[E, PE](pr.Degree, state)
			MatMulExternal[E, PE](state)
		}
	}
	return state
}

// Compress zero-pads the pair to the state width, permutes and returns the
// first element.
func (p *Poseidon2[E, PE]) Compress(in [2]E) E {
	state := make([]E, p.params.Width)
	copy(state, in[:])
	p.permute(state)
	return state[0]
}

func (p *Poseidon2[E, PE]) load(in []E) []E {
	if len(in) != p.params.Width {
		panic(fmt.Sprintf("poseidon2: expected %d elements, got %d", p.params.Width, len(in)))
	}
	return append([]E(nil), in...)
}

func (p *Poseidon2[E, PE]) permute(state []E) {
	pr := p.params
	rfb := pr.HalfFull()
	pEnd := rfb + pr.PartialRounds

	MatMulExternal[E, PE](state)
	for r := range rfb {
		p.fullRound(state, r)
	}

	addRoundConstants[E, PE](state, pr.OptFirst)
	for k := range pr.PartialRounds {
		sbox.Apply[E, PE](pr.Degree, &state[0])
		PE(&state[0]).Add(&state[0], &pr.OptPartial[k])
		MatMulInternal[E, PE](state, pr.DiagM1)
	}

	for r := pEnd; r < pr.Rounds(); r++ {
		p.fullRound(state, r)
	}
}

func (p *Poseidon2[E, PE]) fullRound(state []E, r int) {
	addRoundConstants[E, PE](state, p.params.RoundConstants[r])
	sbox.ApplyAll[E, PE](p.params.Degree, state)
	MatMulExternal[E, PE](state)
}

func addRoundConstants[E any, PE field.Element[E]](state, rc []E) {
	for i := range state {
		PE(&state[i]).Add(&state[i], &rc[i])
	}
}
