package poseidon2

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/test"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/merkle"
	native "github.com/vocdoni/zkhash/poseidon2"
)

type permutationCircuit struct {
	Inputs   []frontend.Variable
	Expected []frontend.Variable `gnark:",public"`
	bls      bool                `gnark:"-"`
}

func (c *permutationCircuit) Define(api frontend.API) error {
	newPerm := NewBN254
	if c.bls {
		newPerm = NewBLS12381
	}
	perm, err := newPerm(len(c.Inputs))
	if err != nil {
		return err
	}
	out, err := perm.Permute(api, c.Inputs)
	if err != nil {
		return err
	}
	for i := range out {
		api.AssertIsEqual(out[i], c.Expected[i])
	}
	return nil
}

func newPermutationCircuits(in, out []*big.Int, bls bool) (*permutationCircuit, *permutationCircuit) {
	empty := &permutationCircuit{
		Inputs:   make([]frontend.Variable, len(in)),
		Expected: make([]frontend.Variable, len(in)),
		bls:      bls,
	}
	witness := &permutationCircuit{
		Inputs:   make([]frontend.Variable, len(in)),
		Expected: make([]frontend.Variable, len(in)),
		bls:      bls,
	}
	for i := range in {
		witness.Inputs[i] = in[i]
		witness.Expected[i] = out[i]
	}
	return empty, witness
}

func bigInts[E any, PE field.Element[E]](v []E) []*big.Int {
	out := make([]*big.Int, len(v))
	for i := range v {
		out[i] = PE(&v[i]).BigInt(new(big.Int))
	}
	return out
}

func TestPermutationMatchesNativeBN254(t *testing.T) {
	assert := test.NewAssert(t)
	f := field.BN254
	perm := native.New(native.MustForField(f, 3))

	in := f.RandVector(3)
	out := perm.Permutation(in)
	empty, witness := newPermutationCircuits(bigInts(in), bigInts(out), false)
	assert.ProverSucceeded(empty, witness, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestPermutationMatchesNativeBLS12381(t *testing.T) {
	assert := test.NewAssert(t)
	f := field.BLS12381
	for _, width := range []int{3, 4, 8} {
		perm := native.New(native.MustForField(f, width))
		in := f.RandVector(width)
		out := perm.Permutation(in)
		empty, witness := newPermutationCircuits(bigInts(in), bigInts(out), true)
		assert.ProverSucceeded(empty, witness, test.WithCurves(ecc.BLS12_381), test.WithBackends(backend.GROTH16))
	}
}

type accumulateCircuit struct {
	Leaves   [5]frontend.Variable
	Expected frontend.Variable `gnark:",public"`
}

func (c *accumulateCircuit) Define(api frontend.API) error {
	perm, err := NewBN254(3)
	if err != nil {
		return err
	}
	root, err := perm.Accumulate(api, c.Leaves[:]...)
	if err != nil {
		return err
	}
	api.AssertIsEqual(root, c.Expected)
	return nil
}

func TestAccumulateMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)
	f := field.BN254
	perm := native.New(native.MustForField(f, 3))

	leaves := f.Sequence(5)
	root, err := merkle.Accumulate[field.BN254Element](perm, leaves)
	if err != nil {
		t.Fatal(err)
	}
	if h := f.Hex(&root); h != "0x2abfc19e85dd040df6925979d6d55aa9da40f1521223e0439065c5988d6182fe" {
		t.Fatalf("native root mismatch: %s", h)
	}

	var witness accumulateCircuit
	for i := range leaves {
		witness.Leaves[i] = leaves[i]
	}
	witness.Expected = root

	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &accumulateCircuit{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	t.Logf("poseidon2 merkle (5 leaves) constraints: %d", ccs.GetNbConstraints())

	assert.ProverSucceeded(
		&accumulateCircuit{},
		&witness,
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
}

type emptyAccumulateCircuit struct {
	X frontend.Variable
}

func (c *emptyAccumulateCircuit) Define(api frontend.API) error {
	perm, err := NewBN254(3)
	if err != nil {
		return err
	}
	_, err = perm.Accumulate(api)
	return err
}

func TestAccumulateErrors(t *testing.T) {
	_, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &emptyAccumulateCircuit{})
	if err == nil {
		t.Fatal("expected an error for an empty leaf list")
	}
}
