package neptune

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/matrix"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Params bundles the constants of a Neptune instance.
type Params[E any, PE field.Element[E]] struct {
	Field field.Field[E, PE]
	params.Shape

	// RoundConstants holds one t-vector per round.
	RoundConstants [][]E
	// MatExternal is the dense external matrix: the (t/2)×(t/2) matrices
	// MatEven and MatOdd interleaved on the even and odd rows and columns.
	MatExternal [][]E
	MatEven     [][]E
	MatOdd      [][]E
	// DiagM1 is the diagonal of the internal matrix minus one.
	DiagM1      []E
	MatInternal [][]E
	// Gamma is the non-zero constant of the external S-box. The other two
	// quadratic-form coefficients (alpha, beta) are fixed to one.
	Gamma E
}

// NewParams derives a width-t instance with S-box degree d, rf external and
// rp internal rounds over f. Both t and rf must be even.
func NewParams[E any, PE field.Element[E]](f field.Field[E, PE], t int, d sbox.Degree, rf, rp int) (*Params[E, PE], error) {
	shape := params.Shape{Width: t, Degree: d, FullRounds: rf, PartialRounds: rp}
	if err := params.Validate("neptune", shape); err != nil {
		return nil, err
	}
	if t < 2 || t%2 != 0 {
		return nil, fmt.Errorf("neptune: state width must be even and at least 2, got %d", t)
	}

	p := &Params[E, PE]{Field: f, Shape: shape}
	sampler := params.NewSampler("Neptune", f, uint64(t), uint64(d), uint64(rf), uint64(rp))
	p.RoundConstants = sampler.Matrix(shape.Rounds(), t)

	th := t / 2
	switch t {
	case 4:
		p.MatEven = circulant(f, 2, 1)
		p.MatOdd = circulant(f, 1, 2)
	case 8:
		p.MatEven = circulant(f, 3, 2, 1, 1)
		p.MatOdd = circulant(f, 1, 1, 2, 3)
	default:
		p.MatEven = nonZeroMatrix(sampler, th)
		p.MatOdd = nonZeroMatrix(sampler, th)
	}
	p.MatExternal = matrix.New[E](t, t)
	for r := range th {
		for c := range th {
			p.MatExternal[2*r][2*c] = p.MatEven[r][c]
			p.MatExternal[2*r+1][2*c+1] = p.MatOdd[r][c]
		}
	}

	one := f.One()
	p.DiagM1 = make([]E, t)
	p.MatInternal = matrix.New[E](t, t)
	for i := range t {
		p.DiagM1[i] = sampler.NextNonZero()
		PE(&p.DiagM1[i]).Sub(&p.DiagM1[i], &one)
		for j := range t {
			p.MatInternal[i][j] = one
		}
		PE(&p.MatInternal[i][i]).Add(&p.MatInternal[i][i], &p.DiagM1[i])
	}
	p.Gamma = sampler.Next()

	log := shape.Log("neptune", f.Name())
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

// circulant returns the matrix whose rows are the successive right rotations
// of row.
func circulant[E any, PE field.Element[E]](f field.Field[E, PE], row ...uint64) [][]E {
	n := len(row)
	m := matrix.New[E](n, n)
	for i := range n {
		for j := range n {
			m[i][j] = f.FromUint64(row[(j-i+n)%n])
		}
	}
	return m
}

func nonZeroMatrix[E any, PE field.Element[E]](s *params.Sampler[E, PE], n int) [][]E {
	m := matrix.New[E](n, n)
	for i := range m {
		for j := range m[i] {
			m[i][j] = s.NextNonZero()
		}
	}
	return m
}
