package poseidon2

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/params"
)

// Instance names a catalogued parameter shape for one field.
type Instance = params.Instance

// Instances lists the supported (field, width) combinations.
var Instances = []Instance{
	params.NewInstance("babybear", 16, 7, 8, 13),
	params.NewInstance("babybear", 24, 7, 8, 21),
	params.NewInstance("goldilocks", 8, 7, 8, 22),
	params.NewInstance("goldilocks", 12, 7, 8, 22),
	params.NewInstance("goldilocks", 16, 7, 8, 22),
	params.NewInstance("goldilocks", 20, 7, 8, 22),
	params.NewInstance("bn254", 3, 5, 8, 56),
	params.NewInstance("bls12-381", 3, 5, 8, 56),
	params.NewInstance("bls12-381", 4, 5, 8, 56),
	params.NewInstance("bls12-381", 8, 5, 8, 57),
	params.NewInstance("pallas", 3, 5, 8, 56),
	params.NewInstance("pallas", 4, 5, 8, 56),
	params.NewInstance("pallas", 8, 5, 8, 57),
	params.NewInstance("vesta", 3, 5, 8, 56),
}

// Lookup finds the catalogued shape for a field name and width.
func Lookup(fieldName string, t int) (Instance, bool) {
	return params.Find(Instances, fieldName, t)
}

// ForField derives the catalogued parameters of width t over f.
func ForField[E any, PE field.Element[E]](f field.Field[E, PE], t int) (*Params[E, PE], error) {
	in, ok := Lookup(f.Name(), t)
	if !ok {
		return nil, fmt.Errorf("poseidon2: no instance of width %d over %s", t, f.Name())
	}
	return NewParams(f, in.Width, in.Degree, in.FullRounds, in.PartialRounds)
}

// MustForField is ForField for widths known to be catalogued.
func MustForField[E any, PE field.Element[E]](f field.Field[E, PE], t int) *Params[E, PE] {
	p, err := ForField(f, t)
	if err != nil {
		panic(err)
	}
	return p
}
