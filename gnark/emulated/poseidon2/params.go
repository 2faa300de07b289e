package poseidon2

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/gnark/internal/circuit"
	"github.com/vocdoni/zkhash/internal/params"
	native "github.com/vocdoni/zkhash/poseidon2"
)

// GoldilocksParams defines the emulated parameters for the Goldilocks field.
type GoldilocksParams = emparams.Goldilocks

// Permutation holds the constants of an emulated Poseidon2 instance over the
// field described by T.
type Permutation[T emulated.FieldParams] struct {
	shape          params.Shape
	roundConstants [][]*big.Int
	diagM1         []*big.Int
}

// New converts a native parameter set; the native field must be the one T
// emulates.
func New[T emulated.FieldParams, E any, PE field.Element[E]](p *native.Params[E, PE]) (*Permutation[T], error) {
	var fp T
	if fp.Modulus().Cmp(p.Field.Modulus()) != 0 {
		return nil, fmt.Errorf("poseidon2: emulated modulus %s differs from %s", fp.Modulus(), p.Field.Name())
	}
	return &Permutation[T]{
		shape:          p.Shape,
		roundConstants: circuit.ConstantMatrix[E, PE](p.RoundConstants),
		diagM1:         circuit.Constants[E, PE](p.DiagM1),
	}, nil
}

// NewGoldilocks returns the emulated gadget of the catalogued Goldilocks
// instance of width t.
func NewGoldilocks(t int) (*Permutation[GoldilocksParams], error) {
	p, err := native.ForField(field.Goldilocks, t)
	if err != nil {
		return nil, err
	}
	return New[GoldilocksParams](p)
}

func constElement[T emulated.FieldParams](f *emulated.Field[T], c *big.Int) *emulated.Element[T] {
	return f.NewElement(c)
}
