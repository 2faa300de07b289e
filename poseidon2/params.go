package poseidon2

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/matrix"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Params bundles the constants of a Poseidon2 instance.
type Params[E any, PE field.Element[E]] struct {
	Field field.Field[E, PE]
	params.Shape

	// RoundConstants holds one t-vector per round.
	RoundConstants [][]E
	// DiagM1 is the diagonal of the internal matrix minus one: the internal
	// layer maps s to s_i*DiagM1[i] + sum(s).
	DiagM1 []E
	// MatInternal is the dense internal matrix, diag(DiagM1+1) with ones
	// elsewhere, and MatInternalInv its inverse.
	MatInternal    [][]E
	MatInternalInv [][]E

	// OptFirst is added to the whole state before the first partial round;
	// OptPartial[i] is added to state[0] after the S-box of partial round i.
	OptFirst   []E
	OptPartial []E
}

// SupportedWidth reports whether the external layer is defined for width t.
func SupportedWidth(t int) bool {
	return t == 3 || (t%4 == 0 && t >= 4 && t <= 24)
}

// NewParams derives a parameter set for a width-t instance with S-box degree
// d, rf full rounds and rp partial rounds over f.
func NewParams[E any, PE field.Element[E]](f field.Field[E, PE], t int, d sbox.Degree, rf, rp int) (*Params[E, PE], error) {
	shape := params.Shape{Width: t, Degree: d, FullRounds: rf, PartialRounds: rp}
	if err := params.ValidatePartial("poseidon2", shape); err != nil {
		return nil, err
	}
	if !SupportedWidth(t) {
		return nil, fmt.Errorf("poseidon2: unsupported state width %d, expected 3 or a multiple of 4 up to 24", t)
	}

	p := &Params[E, PE]{Field: f, Shape: shape}
	sampler := params.NewSampler("Poseidon2", f, uint64(t), uint64(d), uint64(rf), uint64(rp))
	p.RoundConstants = sampler.Matrix(shape.Rounds(), t)

	p.DiagM1 = make([]E, t)
	if t == 3 {
		PE(&p.DiagM1[0]).SetOne()
		PE(&p.DiagM1[1]).SetOne()
		PE(&p.DiagM1[2]).SetUint64(2)
	} else {
		one := f.One()
		for i := range p.DiagM1 {
			p.DiagM1[i] = sampler.NextNonZero()
			PE(&p.DiagM1[i]).Sub(&p.DiagM1[i], &one)
		}
	}

	p.MatInternal = matrix.New[E](t, t)
	for i := range t {
		for j := range t {
			if i == j {
				PE(&p.MatInternal[i][i]).SetOne()
				PE(&p.MatInternal[i][i]).Add(&p.MatInternal[i][i], &p.DiagM1[i])
			} else {
				PE(&p.MatInternal[i][j]).SetOne()
			}
		}
	}
	var err error
	if p.MatInternalInv, err = matrix.Inverse[E, PE](p.MatInternal); err != nil {
		return nil, fmt.Errorf("poseidon2: inverting internal matrix: %w", err)
	}
	p.equivalentRoundConstants()

	log := shape.Log("poseidon2", f.Name())
	log.Debug().Int("constants", shape.Rounds()*t).Msg("derived parameters")
	return p, nil
}

// MustParams is NewParams for static configurations; it panics on error.
func MustParams[E any, PE field.Element[E]](f field.Field[E, PE], t int, d sbox.Degree, rf, rp int) *Params[E, PE] {
	p, err := NewParams(f, t, d, rf, rp)
	if err != nil {
		panic(err)
	}
	return p
}

// equivalentRoundConstants moves the partial-round constants backwards
// through the internal layer. Walking from the last partial round, the
// constant vector w of round k is pulled back through the internal layer of
// round k-1 as u = M^-1 w. u[0] is added right after the S-box of round k-1;
// the other entries commute with that S-box and join the constants of round
// k-1.
func (p *Params[E, PE]) equivalentRoundConstants() {
	t, rfb, rp := p.Width, p.HalfFull(), p.PartialRounds
	p.OptPartial = make([]E, rp)
	acc := make([]E, t)

	for k := rp - 1; k >= 0; k-- {
		w := append([]E(nil), p.RoundConstants[rfb+k]...)
		for i := range w {
			PE(&w[i]).Add(&w[i], &acc[i])
		}
		if k == 0 {
			p.OptFirst = w
			break
		}
		u := matrix.MulVec[E, PE](p.MatInternalInv, w)
		p.OptPartial[k-1] = u[0]
		acc = u
		PE(&acc[0]).SetZero()
	}
}
