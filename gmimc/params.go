package gmimc

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/internal/sbox"
)

// Params holds a GMiMC instance: the round shape (all rounds are counted as
// partial rounds, one S-box each) and one round constant per round.
type Params[E any, PE field.Element[E]] struct {
	Field field.Field[E, PE]
	params.Shape

	RoundConstants []E
}

// NewParams derives a width-t instance with S-box degree d and the given
// number of rounds over f.
func NewParams[E any, PE field.Element[E]](f field.Field[E, PE], t int, d sbox.Degree, rounds int) (*Params[E, PE], error) {
	shape := params.Shape{Width: t, Degree: d, PartialRounds: rounds}
	if err := params.ValidatePartial("gmimc", shape); err != nil {
		return nil, err
	}
	if t < 2 {
		return nil, fmt.Errorf("gmimc: state width must be at least 2, got %d", t)
	}

	sampler := params.NewSampler("GMiMC", f, uint64(t), uint64(d), uint64(rounds))
	p := &Params[E, PE]{
		Field:          f,
		Shape:          shape,
		RoundConstants: sampler.Vector(rounds),
	}

	log := shape.Log("gmimc", f.Name())
	log.Debug().Int("constants", rounds).Msg("derived parameters")
	return p, nil
}

// MustParams is NewParams for static configurations; it panics on error.
func MustParams[E any, PE field.Element[E]](f field.Field[E, PE], t int, d sbox.Degree, rounds int) *Params[E, PE] {
	p, err := NewParams(f, t, d, rounds)
	if err != nil {
		panic(err)
	}
	return p
}
