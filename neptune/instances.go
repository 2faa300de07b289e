package neptune

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/params"
)

// Instance names a catalogued parameter shape for one field.
type Instance = params.Instance

// Instances lists the supported (field, width) combinations.
var Instances = []Instance{
	params.NewInstance("babybear", 16, 7, 6, 34),
	params.NewInstance("babybear", 24, 7, 6, 43),
	params.NewInstance("goldilocks", 8, 7, 6, 38),
	params.NewInstance("goldilocks", 12, 7, 6, 42),
	params.NewInstance("goldilocks", 16, 7, 6, 48),
	params.NewInstance("goldilocks", 20, 7, 6, 52),
	params.NewInstance("bn254", 4, 5, 6, 68),
	params.NewInstance("bls12-381", 4, 5, 6, 69),
	params.NewInstance("bls12-381", 8, 5, 6, 74),
	params.NewInstance("pallas", 4, 5, 6, 69),
	params.NewInstance("pallas", 8, 5, 6, 74),
	params.NewInstance("vesta", 4, 5, 6, 68),
}

// Lookup finds the catalogued shape for a field name and width.
func Lookup(fieldName string, t int) (Instance, bool) {
	return params.Find(Instances, fieldName, t)
}

// ForField derives the catalogued parameters of width t over f.
func ForField[E any, PE field.Element[E]](f field.Field[E, PE], t int) (*Params[E, PE], error) {
	in, ok := Lookup(f.Name(), t)
	if !ok {
		return nil, fmt.Errorf("neptune: no instance of width %d over %s", t, f.Name())
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
