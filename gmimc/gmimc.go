// Package gmimc implements the unbalanced Feistel permutation GMiMC-erf.
// Each round raises state[0] plus a round constant to the S-box degree, adds
// the result to every other element and rotates the state right by one.
package gmimc

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// optimizedWidth is the smallest width for which the accumulator schedule is
// used.
const optimizedWidth = 8

// GMiMC is a permutation instance. It is immutable and safe for concurrent
// use.
type GMiMC[E any, PE field.Element[E]] struct {
	params *Params[E, PE]
}

// New returns the permutation defined by p.
func New[E any, PE field.Element[E]](p *Params[E, PE]) *GMiMC[E, PE] {
	return &GMiMC[E, PE]{params: p}
}

// Params returns the instance parameters.
func (g *GMiMC[E, PE]) Params() *Params[E, PE] { return g.params }

// Width is the state size t.
func (g *GMiMC[E, PE]) Width() int { return g.params.Width }

// Permutation returns the permutation of in. For t >= 8 it avoids the
// per-round O(t) additions by keeping a running sum of the last t-1 S-box
// outputs; smaller widths use the reference schedule.
func (g *GMiMC[E, PE]) Permutation(in []E) []E {
	state := g.load(in)
	if g.params.Width < optimizedWidth {
		g.permuteNotOpt(state)
		return state
	}
	return g.permuteOpt(state)
}

// PermutationNotOpt applies the textbook rounds.
func (g *GMiMC[E, PE]) PermutationNotOpt(in []E) []E {
	state := g.load(in)
	g.permuteNotOpt(state)
	return state
}

// Compress zero-pads the pair to the state width, permutes and returns the
// first element.
func (g *GMiMC[E, PE]) Compress(in [2]E) E {
	state := make([]E, g.params.Width)
	copy(state, in[:])
	return g.Permutation(state)[0]
}

func (g *GMiMC[E, PE]) load(in []E) []E {
	if len(in) != g.params.Width {
		panic(fmt.Sprintf("gmimc: expected %d elements, got %d", g.params.Width, len(in)))
	}
	return append([]E(nil), in...)
}

// roundFunction sets pw = (x + rc)^d.
func (g *GMiMC[E, PE]) roundFunction(pw, x, rc *E) {
	PE(pw).Add(x, rc)
	sbox.Apply[E, PE](g.params.Degree, pw)
}

func (g *GMiMC[E, PE]) permuteNotOpt(state []E) {
	rounds := g.params.Rounds()
	t := len(state)
	var pw E
	for r := range rounds {
		g.roundFunction(&pw, &state[0], &g.params.RoundConstants[r])
		for i := 1; i < t; i++ {
			PE(&state[i]).Add(&state[i], &pw)
		}
		if r < rounds-1 {
			last := state[t-1]
			copy(state[1:], state[:t-1])
			state[0] = last
		}
	}
}

// permuteOpt tracks the rotation with an offset into state and keeps the
// last t-1 S-box outputs in a ring. After each round, the new state[0] is the
// element that received all of those outputs, so it is updated with their
// sum only.
func (g *GMiMC[E, PE]) permuteOpt(state []E) []E {
	pr := g.params
	t := pr.Width
	n := t - 1
	rounds := pr.Rounds()

	queue := make([]E, n)
	var acc, pw E
	head, off := 0, 0
	at := func(i int) *E { return &state[(off+i)%t] }
	push := func(v *E) {
		head = (head + n - 1) % n
		PE(&acc).Sub(&acc, &queue[head])
		queue[head] = *v
		PE(&acc).Add(&acc, v)
	}

	for r := 0; r < rounds-1; r++ {
		g.roundFunction(&pw, at(0), &pr.RoundConstants[r])
		push(&pw)
		off = (off + n) % t
		PE(at(0)).Add(at(0), &acc)
	}

	// The last round does not rotate: flush the window into the remaining
	// elements, each seeing one output fewer than the previous.
	g.roundFunction(&pw, at(0), &pr.RoundConstants[rounds-1])
	push(&pw)
	PE(at(t-1)).Add(at(t-1), &acc)
	for i := t - 2; i > 0; i-- {
		head = (head + n - 1) % n
		PE(&acc).Sub(&acc, &queue[head])
		PE(at(i)).Add(at(i), &acc)
	}

	out := make([]E, t)
	for i := range out {
		out[i] = *at(i)
	}
	return out
}
