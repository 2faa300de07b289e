// Package poseidon2 provides Poseidon2 over an emulated field, so that
// small-field permutations such as Goldilocks can be proven inside a circuit
// over a pairing-friendly curve.
package poseidon2

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/vocdoni/zkhash/internal/sbox"
)

func (p *Permutation[T]) Width() int { return p.shape.Width }

// Permute returns the permutation of state. Outputs are reduced.
func (p *Permutation[T]) Permute(api frontend.API, state []emulated.Element[T]) ([]emulated.Element[T], error) {
	if len(state) != p.shape.Width {
		return nil, fmt.Errorf("poseidon2: expected %d elements, got %d", p.shape.Width, len(state))
	}
	f, err := emulated.NewField[T](api)
	if err != nil {
		return nil, err
	}

	s := make([]*emulated.Element[T], len(state))
	for i := range state {
		s[i] = f.NewElement(state[i])
	}
	p.permute(f, s)

	out := make([]emulated.Element[T], len(s))
	for i := range s {
		out[i] = *f.Reduce(s[i])
	}
	return out, nil
}

// Compress zero-pads (a, b) to the state width, permutes and returns the
// first element.
func (p *Permutation[T]) Compress(api frontend.API, a, b emulated.Element[T]) (emulated.Element[T], error) {
	state := make([]emulated.Element[T], p.shape.Width)
	state[0], state[1] = a, b
	for i := 2; i < len(state); i++ {
		state[i] = emulated.ValueOf[T](0)
	}
	out, err := p.Permute(api, state)
	if err != nil {
		var zero emulated.Element[T]
		return zero, err
	}
	return out[0], nil
}

func (p *Permutation[T]) permute(f *emulated.Field[T], s []*emulated.Element[T]) {
	rfb := p.shape.HalfFull()
	pEnd := rfb + p.shape.PartialRounds

	matMulExternal(f, s)
	for r := range p.shape.Rounds() {
		for i := range s {
			s[i] = f.Add(s[i], constElement(f, p.roundConstants[r][i]))
		}
		if r >= rfb && r < pEnd {
			s[0] = pow(f, p.shape.Degree, s[0])
			p.matMulInternal(f, s)
			continue
		}
		for i := range s {
			s[i] = pow(f, p.shape.Degree, s[i])
		}
		matMulExternal(f, s)
	}
}

func matMulExternal[T emulated.FieldParams](f *emulated.Field[T], s []*emulated.Element[T]) {
	if len(s) == 3 {
		sum := f.Add(f.Add(s[0], s[1]), s[2])
		for i := range s {
			s[i] = f.Add(s[i], sum)
		}
		return
	}
	for i := 0; i < len(s); i += 4 {
		matMulM4(f, s[i:i+4])
	}
	var sums [4]*emulated.Element[T]
	for l := range 4 {
		sums[l] = s[l]
		for j := 4 + l; j < len(s); j += 4 {
			sums[l] = f.Add(sums[l], s[j])
		}
	}
	for i := range s {
		s[i] = f.Add(s[i], sums[i%4])
	}
}

func matMulM4[T emulated.FieldParams](f *emulated.Field[T], s []*emulated.Element[T]) {
	t0 := f.Add(s[0], s[1])
	t1 := f.Add(s[2], s[3])
	t2 := f.Add(f.Add(s[1], s[1]), t1)
	t3 := f.Add(f.Add(s[3], s[3]), t0)
	t4 := f.Add(f.Add(t1, t1), f.Add(t1, t1))
	t4 = f.Add(t4, t3)
	t5 := f.Add(f.Add(t0, t0), f.Add(t0, t0))
	t5 = f.Add(t5, t2)
	s[0], s[1], s[2], s[3] = f.Add(t3, t5), t5, f.Add(t2, t4), t4
}

func (p *Permutation[T]) matMulInternal(f *emulated.Field[T], s []*emulated.Element[T]) {
	sum := s[0]
	for i := 1; i < len(s); i++ {
		sum = f.Add(sum, s[i])
	}
	for i := range s {
		s[i] = f.Add(f.Mul(s[i], constElement(f, p.diagM1[i])), sum)
	}
}

func pow[T emulated.FieldParams](f *emulated.Field[T], d sbox.Degree, x *emulated.Element[T]) *emulated.Element[T] {
	x2 := f.Mul(x, x)
	switch d {
	case sbox.Cube:
		return f.Mul(x2, x)
	case sbox.Quintic:
		x4 := f.Mul(x2, x2)
		return f.Mul(x4, x)
	case sbox.Septic:
		x3 := f.Mul(x2, x)
		x6 := f.Mul(x3, x3)
		return f.Mul(x6, x)
	}
	panic(fmt.Sprintf("poseidon2: unsupported S-box degree %d", d))
}
