// Package neptune implements the Neptune permutation: Poseidon-like internal
// rounds and external rounds built from a non-monomial S-box on pairs of
// elements.
package neptune

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/matrix"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Neptune is a permutation instance. It is immutable and safe for concurrent
// use.
type Neptune[E any, PE field.Element[E]] struct {
	params *Params[E, PE]
}

// New returns the permutation defined by p.
func New[E any, PE field.Element[E]](p *Params[E, PE]) *Neptune[E, PE] {
	return &Neptune[E, PE]{params: p}
}

// Params returns the instance parameters.
func (n *Neptune[E, PE]) Params() *Params[E, PE] { return n.params }

// Width is the state size t.
func (n *Neptune[E, PE]) Width() int { return n.params.Width }

// Permutation returns the permutation of in. It panics if len(in) differs
// from the state width.
func (n *Neptune[E, PE]) Permutation(in []E) []E {
	pr := n.params
	if len(in) != pr.Width {
		panic(fmt.Sprintf("neptune: expected %d elements, got %d", pr.Width, len(in)))
	}
	state := n.MatMulExternal(in)

	rfb := pr.HalfFull()
	pEnd := rfb + pr.PartialRounds
	for r := range rfb {
		state = n.externalRound(state, r)
	}
	for r := rfb; r < pEnd; r++ {
		state = n.internalRound(state, r)
	}
	for r := pEnd; r < pr.Rounds(); r++ {
		state = n.externalRound(state, r)
	}
	return state
}

// Compress zero-pads the pair to the state width, permutes and returns the
// first element.
func (n *Neptune[E, PE]) Compress(in [2]E) E {
	state := make([]E, n.params.Width)
	copy(state, in[:])
	return n.Permutation(state)[0]
}

func (n *Neptune[E, PE]) externalRound(state []E, r int) []E {
	for i := 0; i < len(state); i += 2 {
		n.sboxPair(&state[i], &state[i+1])
	}
	out := n.MatMulExternal(state)
	addRoundConstants[E, PE](out, n.params.RoundConstants[r])
	return out
}

func (n *Neptune[E, PE]) internalRound(state []E, r int) []E {
	sbox.Apply[E, PE](n.params.Degree, &state[0])
	n.MatMulInternal(state)
	addRoundConstants[E, PE](state, n.params.RoundConstants[r])
	return state
}

// sboxPair is the external S-box on (x1, x2) with z = x1 - x2:
//
//	y1 = 2·x1 + x2 + 3z² + (z - x2 - z² + γ)²
//	y2 = x1 + 3·x2 + 4z² + (z - x2 - z² + γ)²
func (n *Neptune[E, PE]) sboxPair(x1, x2 *E) {
	var zi, zib, sum, y1, y2, tmp, q E
	PE(&zi).Sub(x1, x2)
	PE(&zib).Square(&zi)
	PE(&sum).Add(x1, x2)

	PE(&y1).Add(&sum, x1)
	PE(&y2).Double(x2)
	PE(&y2).Add(&y2, &sum)

	// 3z² and 4z²
	PE(&tmp).Double(&zib)
	PE(&q).Add(&tmp, &zib)
	PE(&y1).Add(&y1, &q)
	PE(&tmp).Double(&tmp)
	PE(&y2).Add(&y2, &tmp)

	PE(&tmp).Sub(&zi, x2)
	PE(&tmp).Sub(&tmp, &zib)
	PE(&tmp).Add(&tmp, &n.params.Gamma)
	PE(&tmp).Square(&tmp)

	PE(x1).Add(&y1, &tmp)
	PE(x2).Add(&y2, &tmp)
}

// MatMulExternal returns MatExternal·in. Widths 4 and 8 use dedicated
// addition chains; other widths multiply the even and odd halves by their
// blocks.
func (n *Neptune[E, PE]) MatMulExternal(in []E) []E {
	switch len(in) {
	case 4:
		return matMulExternal4[E, PE](in)
	case 8:
		return matMulExternal8[E, PE](in)
	}
	th := len(in) / 2
	even := make([]E, th)
	odd := make([]E, th)
	for i := range th {
		even[i] = in[2*i]
		odd[i] = in[2*i+1]
	}
	even = matrix.MulVec[E, PE](n.params.MatEven, even)
	odd = matrix.MulVec[E, PE](n.params.MatOdd, odd)
	out := make([]E, len(in))
	for i := range th {
		out[2*i] = even[i]
		out[2*i+1] = odd[i]
	}
	return out
}

// matMulExternal4 applies circ(2,1) to the even and circ(1,2) to the odd
// elements.
func matMulExternal4[E any, PE field.Element[E]](in []E) []E {
	out := append([]E(nil), in...)
	out[1], out[3] = out[3], out[1]

	var s1, s2 E
	PE(&s1).Add(&in[0], &in[2])
	PE(&s2).Add(&in[1], &in[3])
	PE(&out[0]).Add(&out[0], &s1)
	PE(&out[1]).Add(&out[1], &s2)
	PE(&out[2]).Add(&out[2], &s1)
	PE(&out[3]).Add(&out[3], &s2)
	return out
}

// matMulExternal8 applies circ(3,2,1,1) to the even and circ(1,1,2,3) to the
// odd elements.
func matMulExternal8[E any, PE field.Element[E]](in []E) []E {
	out := append([]E(nil), in...)
	out[1], out[7] = out[7], out[1]
	out[3], out[5] = out[5], out[3]

	var s1, s2 E
	PE(&s1).Add(&in[0], &in[2])
	PE(&s1).Add(&s1, &in[4])
	PE(&s1).Add(&s1, &in[6])
	PE(&s2).Add(&in[1], &in[3])
	PE(&s2).Add(&s2, &in[5])
	PE(&s2).Add(&s2, &in[7])

	var rot [8]E
	for i := range rot {
		rot[i] = out[(i+2)%8]
	}
	for i := range out {
		PE(&out[i]).Double(&out[i])
		PE(&out[i]).Add(&out[i], &rot[i])
		if i%2 == 0 {
			PE(&out[i]).Add(&out[i], &s1)
		} else {
			PE(&out[i]).Add(&out[i], &s2)
		}
	}
	out[3], out[7] = out[7], out[3]
	return out
}

// MatMulInternal applies the internal layer in place: s_i·DiagM1[i] + sum(s).
func (n *Neptune[E, PE]) MatMulInternal(state []E) {
	var sum E
	for i := range state {
		PE(&sum).Add(&sum, &state[i])
	}
	for i := range state {
		PE(&state[i]).Mul(&state[i], &n.params.DiagM1[i])
		PE(&state[i]).Add(&state[i], &sum)
	}
}

func addRoundConstants[E any, PE field.Element[E]](state, rc []E) {
	for i := range state {
		PE(&state[i]).Add(&state[i], &rc[i])
	}
}
