// Package poseidon implements the Poseidon permutation over any supported
// prime field, in its reference form and in the optimized form that replaces
// the partial-round MDS layers by sparse matrices.
package poseidon

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Poseidon is a permutation instance. It is immutable and safe for
// concurrent use.
type Poseidon[E any, PE field.Element[E]] struct {
	params *Params[E, PE]
}

// New returns the permutation defined by p.
func New[E any, PE field.Element[E]](p *Params[E, PE]) *Poseidon[E, PE] {
	return &Poseidon[E, PE]{params: p}
}

// Params returns the instance parameters.
func (p *Poseidon[E, PE]) Params() *Params[E, PE] { return p.params }

// Width is the state size t.
func (p *Poseidon[E, PE]) Width() int { return p.params.Width }

// Permutation applies the optimized schedule to a copy of in. It panics if
// len(in) differs from the state width.
func (p *Poseidon[E, PE]) Permutation(in []E) []E {
	state := p.load(in)
	p.permute(state)
	return state
}

// PermutationNotOpt applies the textbook schedule: full round-constant
// vectors and the dense MDS in every round.
func (p *Poseidon[E, PE]) PermutationNotOpt(in []E) []E {
	state := p.load(in)
	rfb, pEnd := p.params.HalfFull(), p.params.HalfFull()+p.params.PartialRounds
	d := p.params.Degree
	for r := range p.params.Rounds() {
		addRoundConstants[E, PE](state, p.params.RoundConstants[r])
		if r >= rfb && r < pEnd {
			sbox.Apply[E, PE](d, &state[0])
		} else {
			sbox.ApplyAll[E, PE](d, state)
		}
		state = mixLayer[E, PE](state, p.params.MDS)
	}
	return state
}

// Compress is the 2-to-1 compression: the pair is zero-padded to the state
// width, permuted, and the first element is returned.
func (p *Poseidon[E, PE]) Compress(in [2]E) E {
	state := make([]E, p.params.Width)
	copy(state, in[:])
	p.permute(state)
	return state[0]
}

func (p *Poseidon[E, PE]) load(in []E) []E {
	if len(in) != p.params.Width {
		panic(fmt.Sprintf("poseidon: expected %d elements, got %d", p.params.Width, len(in)))
	}
	return append([]E(nil), in...)
}

// permute mutates the state in place.
func (p *Poseidon[E, PE]) permute(state []E) {
	pr := p.params
	rfb := pr.HalfFull()
	pEnd := rfb + pr.PartialRounds

	// First half of full rounds.
	for r := range rfb {
		p.fullRound(state, r)
	}

	// First partial round constants + dense mix (M_i).
	addRoundConstants[E, PE](state, pr.OptRoundConstants[0])
	copy(state, mixLayer[E, PE](state, pr.MI))

	// Partial rounds with sparse matrices.
	for r := rfb; r < pEnd; r++ {
		sbox.Apply[E, PE](pr.Degree, &state[0])
		if r < pEnd-1 {
			PE(&state[0]).Add(&state[0], &pr.OptRoundConstants[r+1-rfb][0])
		}
		p.sparseMatMul(state, pEnd-r-1)
	}

	// Second half of full rounds.
	for r := pEnd; r < pr.Rounds(); r++ {
		p.fullRound(state, r)
	}
}

func (p *Poseidon[E, PE]) fullRound(state []E, r int) {
	addRoundConstants[E, PE](state, p.params.RoundConstants[r])
	sbox.ApplyAll[E, PE](p.params.Degree, state)
	copy(state, mixLayer[E, PE](state, p.params.MDS))
}

// sparseMatMul multiplies by the sparse matrix of the given partial round:
// first row (mds[0][0], wHat...) and first column (mds[0][0], v...) with
// identity elsewhere.
func (p *Poseidon[E, PE]) sparseMatMul(state []E, round int) {
	v := p.params.V[round]
	wHat := p.params.WHat[round]

	var newZero, prod E
	PE(&newZero).Mul(&p.params.MDS[0][0], &state[0])
	for i := 1; i < len(state); i++ {
		PE(&prod).Mul(&wHat[i-1], &state[i])
		PE(&newZero).Add(&newZero, &prod)
	}
	for i := 1; i < len(state); i++ {
		PE(&prod).Mul(&state[0], &v[i-1])
		PE(&state[i]).Add(&state[i], &prod)
	}
	state[0] = newZero
}

func addRoundConstants[E any, PE field.Element[E]](state, rc []E) {
	for i := range state {
		PE(&state[i]).Add(&state[i], &rc[i])
	}
}

func mixLayer[E any, PE field.Element[E]](state []E, m [][]E) []E {
	out := make([]E, len(state))
	var prod E
	for i := range m {
		for j := range state {
			PE(&prod).Mul(&m[i][j], &state[j])
			PE(&out[i]).Add(&out[i], &prod)
		}
	}
	return out
}
