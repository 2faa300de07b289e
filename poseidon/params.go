package poseidon

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/matrix"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Params bundles all constants needed by the permutation, including the
// sparse factorisation of the partial rounds.
type Params[E any, PE field.Element[E]] struct {
	Field field.Field[E, PE]
	params.Shape

	// RoundConstants holds one t-vector per round.
	RoundConstants [][]E
	// MDS is the Cauchy matrix mds[i][j] = 1/(i+j+t).
	MDS    [][]E
	MDSInv [][]E

	// MI is the dense matrix applied once before the partial rounds.
	MI [][]E
	// V and WHat hold, for each partial round, the first row and the
	// first column of the sparse matrix (t-1 entries each).
	V    [][]E
	WHat [][]E
	// OptRoundConstants[0] is the full vector added before MI; entry 0 of
	// each later row is the scalar added to state[0] in partial round i.
	OptRoundConstants [][]E
}

// NewParams derives a parameter set for a width-t instance with S-box degree
// d, rf full rounds and rp partial rounds over f.
func NewParams[E any, PE field.Element[E]](f field.Field[E, PE], t int, d sbox.Degree, rf, rp int) (*Params[E, PE], error) {
	shape := params.Shape{Width: t, Degree: d, FullRounds: rf, PartialRounds: rp}
	if err := params.ValidatePartial("poseidon", shape); err != nil {
		return nil, err
	}
	if t < 2 {
		return nil, fmt.Errorf("poseidon: state width must be at least 2, got %d", t)
	}

	p := &Params[E, PE]{Field: f, Shape: shape}
	sampler := params.NewSampler("Poseidon", f, uint64(t), uint64(d), uint64(rf), uint64(rp))
	p.RoundConstants = sampler.Matrix(shape.Rounds(), t)
	p.MDS = cauchy(f, t)

	var err error
	if p.MDSInv, err = matrix.Inverse[E, PE](p.MDS); err != nil {
		return nil, fmt.Errorf("poseidon: inverting mds: %w", err)
	}
	if err = p.equivalentMatrices(); err != nil {
		return nil, err
	}
	p.equivalentRoundConstants()

	log := shape.Log("poseidon", f.Name())
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

func cauchy[E any, PE field.Element[E]](f field.Field[E, PE], t int) [][]E {
	m := matrix.New[E](t, t)
	for i := range t {
		for j := range t {
			PE(&m[i][j]).SetUint64(uint64(i + j + t))
			PE(&m[i][j]).Inverse(&m[i][j])
		}
	}
	return m
}

// equivalentMatrices factors the product of the rp partial-round MDS layers
// into one dense matrix MI followed by rp sparse matrices, each described by
// its first row V and the column WHat.
func (p *Params[E, PE]) equivalentMatrices() error {
	t := p.Width
	mds := matrix.Transpose(p.MDS)
	mMul := matrix.Clone(mds)
	var mi [][]E

	p.V = make([][]E, 0, p.PartialRounds)
	p.WHat = make([][]E, 0, p.PartialRounds)
	for range p.PartialRounds {
		mHat := matrix.New[E](t-1, t-1)
		w := make([]E, t-1)
		for r := 1; r < t; r++ {
			copy(mHat[r-1], mMul[r][1:])
			w[r-1] = mMul[r][0]
		}
		v := append([]E(nil), mMul[0][1:]...)

		mHatInv, err := matrix.Inverse[E, PE](mHat)
		if err != nil {
			return fmt.Errorf("poseidon: inverting m_hat: %w", err)
		}
		p.WHat = append(p.WHat, matrix.MulVec[E, PE](mHatInv, w))
		p.V = append(p.V, v)

		mi = matrix.Clone(mMul)
		PE(&mi[0][0]).SetOne()
		for i := 1; i < t; i++ {
			PE(&mi[0][i]).SetZero()
			PE(&mi[i][0]).SetZero()
		}
		mMul = matrix.Mul[E, PE](mds, mi)
	}
	p.MI = matrix.Transpose(mi)
	return nil
}

// equivalentRoundConstants pushes the partial-round constants through the
// inverse MDS so that only the first one is a full vector.
func (p *Params[E, PE]) equivalentRoundConstants() {
	t, rfb, rp := p.Width, p.HalfFull(), p.PartialRounds
	opt := matrix.New[E](rp, t)

	tmp := append([]E(nil), p.RoundConstants[rfb+rp-1]...)
	for i := rp - 2; i >= 0; i-- {
		invCip := matrix.MulVec[E, PE](p.MDSInv, tmp)
		opt[i+1][0] = invCip[0]

		tmp = append(tmp[:0], p.RoundConstants[rfb+i]...)
		for j := 1; j < t; j++ {
			PE(&tmp[j]).Add(&tmp[j], &invCip[j])
		}
	}
	opt[0] = tmp
	p.OptRoundConstants = opt
}
