// Package zkhash is a runtime registry over the permutation engines. It
// resolves a (primitive, field, width) triple chosen at run time, typically
// from user input, into a permutation working on *big.Int values.
package zkhash

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/gmimc"
	"github.com/vocdoni/zkhash/internal/params"
	"github.com/vocdoni/zkhash/merkle"
	"github.com/vocdoni/zkhash/neptune"
	"github.com/vocdoni/zkhash/poseidon"
	"github.com/vocdoni/zkhash/poseidon2"
)

// Primitive names a permutation family.
type Primitive string

const (
	Poseidon  Primitive = "poseidon"
	Poseidon2 Primitive = "poseidon2"
	GMiMC     Primitive = "gmimc"
	Neptune   Primitive = "neptune"
)

// Primitives lists every supported family.
var Primitives = []Primitive{Poseidon, Poseidon2, GMiMC, Neptune}

// Instance is a catalogued parameter shape. For GMiMC, FullRounds is zero and
// PartialRounds holds the total round count.
type Instance struct {
	Primitive     Primitive
	Field         string
	Width         int
	Degree        uint64
	FullRounds    int
	PartialRounds int
}

func (in Instance) String() string {
	return fmt.Sprintf("%s/%s/t=%d", in.Primitive, in.Field, in.Width)
}

// Instances returns every catalogued instance, grouped by primitive.
func Instances() []Instance {
	var out []Instance
	for _, prim := range Primitives {
		for _, in := range catalog(prim) {
			out = append(out, fromCatalog(prim, in))
		}
	}
	return out
}

func fromCatalog(prim Primitive, in params.Instance) Instance {
	return Instance{
		Primitive:     prim,
		Field:         in.Field,
		Width:         in.Width,
		Degree:        uint64(in.Degree),
		FullRounds:    in.FullRounds,
		PartialRounds: in.PartialRounds,
	}
}

func catalog(prim Primitive) []params.Instance {
	switch prim {
	case Poseidon:
		return poseidon.Instances
	case Poseidon2:
		return poseidon2.Instances
	case GMiMC:
		return gmimc.Instances
	case Neptune:
		return neptune.Instances
	}
	return nil
}

// Permutation is a type-erased engine. Inputs must be canonical: non-nil,
// non-negative and smaller than the field modulus.
type Permutation interface {
	Instance() Instance
	Modulus() *big.Int
	Permute(in []*big.Int) ([]*big.Int, error)
	Compress(a, b *big.Int) (*big.Int, error)
	MerkleRoot(leaves []*big.Int) (*big.Int, error)
}

// New derives the catalogued parameters for the triple and returns the
// corresponding engine. Unknown primitives, fields or widths are errors.
func New(prim Primitive, fieldName string, t int) (Permutation, error) {
	if !slices.Contains(Primitives, prim) {
		return nil, fmt.Errorf("zkhash: unknown primitive %q", prim)
	}
	switch fieldName {
	case field.BabyBear.Name():
		return build(prim, field.BabyBear, t)
	case field.Goldilocks.Name():
		return build(prim, field.Goldilocks, t)
	case field.BN254.Name():
		return build(prim, field.BN254, t)
	case field.BLS12381.Name():
		return build(prim, field.BLS12381, t)
	case field.Pallas.Name():
		return build(prim, field.Pallas, t)
	case field.Vesta.Name():
		return build(prim, field.Vesta, t)
	}
	return nil, fmt.Errorf("zkhash: unknown field %q", fieldName)
}

// MerkleRoot is New followed by Permutation.MerkleRoot.
func MerkleRoot(prim Primitive, fieldName string, t int, leaves []*big.Int) (*big.Int, error) {
	p, err := New(prim, fieldName, t)
	if err != nil {
		return nil, err
	}
	return p.MerkleRoot(leaves)
}

type engine[E any] interface {
	Permutation(in []E) []E
	Compress(in [2]E) E
}

func build[E any, PE field.Element[E]](prim Primitive, f field.Field[E, PE], t int) (Permutation, error) {
	in, ok := params.Find(catalog(prim), f.Name(), t)
	if !ok {
		return nil, fmt.Errorf("zkhash: no %s instance of width %d over %s", prim, t, f.Name())
	}

	var eng engine[E]
	switch prim {
	case Poseidon:
		p, err := poseidon.NewParams[E, PE](f, in.Width, in.Degree, in.FullRounds, in.PartialRounds)
		if err != nil {
			return nil, err
		}
		eng = poseidon.New[E, PE](p)
	case Poseidon2:
		p, err := poseidon2.NewParams[E, PE](f, in.Width, in.Degree, in.FullRounds, in.PartialRounds)
		if err != nil {
			return nil, err
		}
		eng = poseidon2.New[E, PE](p)
	case GMiMC:
		p, err := gmimc.NewParams[E, PE](f, in.Width, in.Degree, in.Rounds())
		if err != nil {
			return nil, err
		}
		eng = gmimc.New[E, PE](p)
	case Neptune:
		p, err := neptune.NewParams[E, PE](f, in.Width, in.Degree, in.FullRounds, in.PartialRounds)
		if err != nil {
			return nil, err
		}
		eng = neptune.New[E, PE](p)
	}

	return &erased[E, PE]{
		instance: fromCatalog(prim, in),
		field:    f,
		eng:      eng,
	}, nil
}

type erased[E any, PE field.Element[E]] struct {
	instance Instance
	field    field.Field[E, PE]
	eng      engine[E]
}

func (e *erased[E, PE]) Instance() Instance { return e.instance }

func (e *erased[E, PE]) Modulus() *big.Int { return e.field.Modulus() }

func (e *erased[E, PE]) Permute(in []*big.Int) ([]*big.Int, error) {
	if len(in) != e.instance.Width {
		return nil, fmt.Errorf("zkhash: %s expects %d elements, got %d", e.instance, e.instance.Width, len(in))
	}
	state, err := e.elements(in)
	if err != nil {
		return nil, err
	}
	return e.bigInts(e.eng.Permutation(state)), nil
}

func (e *erased[E, PE]) Compress(a, b *big.Int) (*big.Int, error) {
	pair, err := e.elements([]*big.Int{a, b})
	if err != nil {
		return nil, err
	}
	out := e.eng.Compress([2]E{pair[0], pair[1]})
	return PE(&out).BigInt(new(big.Int)), nil
}

func (e *erased[E, PE]) MerkleRoot(leaves []*big.Int) (*big.Int, error) {
	nodes, err := e.elements(leaves)
	if err != nil {
		return nil, err
	}
	root, err := merkle.Accumulate[E](e.eng, nodes)
	if err != nil {
		return nil, fmt.Errorf("zkhash: %w", err)
	}
	return PE(&root).BigInt(new(big.Int)), nil
}

func (e *erased[E, PE]) elements(in []*big.Int) ([]E, error) {
	modulus := e.field.Modulus()
	out := make([]E, len(in))
	for i, v := range in {
		if v == nil {
			return nil, fmt.Errorf("zkhash: element %d is nil", i)
		}
		if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
			return nil, fmt.Errorf("zkhash: element %d (%s) is outside [0, p) of %s", i, v, e.field.Name())
		}
		PE(&out[i]).SetBigInt(v)
	}
	return out, nil
}

func (e *erased[E, PE]) bigInts(in []E) []*big.Int {
	out := make([]*big.Int, len(in))
	for i := range in {
		out[i] = PE(&in[i]).BigInt(new(big.Int))
	}
	return out
}
