package poseidon2

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vocdoni/zkhash/field"
	"github.com/vocdoni/zkhash/internal/matrix"
	"github.com/vocdoni/zkhash/internal/sbox"
)

const testRuns = 5

// Outputs of the permutation on [0, 1, ..., t-1] for every catalogued
// instance.
var kats = []struct {
	field string
	width int
	want  []string
}{
	{"babybear", 16, []string{
		"0x40a3a709",
		"0x75bfba3a",
		"0x152006c3",
		"0x4869b2a",
		"0x100bfdd4",
		"0x5b7e11e",
		"0x17d6aa23",
		"0x49df6cc5",
		"0x25753723",
		"0x33db0a94",
		"0x5d241c0c",
		"0x313e4e0f",
		"0x24da3ab9",
		"0x27d048f3",
		"0x1b20fdc8",
		"0x76107c98",
	}},
	{"babybear", 24, []string{
		"0x299a1149",
		"0x6a4e5ba",
		"0x5b3f2b7e",
		"0x6a951ec6",
		"0x6db2d822",
		"0x24661665",
		"0x3ae97651",
		"0x5499df32",
		"0x2d6b0534",
		"0x18057ecf",
		"0xcec65b2",
		"0x13713000",
		"0x63a67502",
		"0x1baa531a",
		"0x5198871c",
		"0x526d0cc8",
		"0x6aaa84cd",
		"0x39c059a8",
		"0x57e2f594",
		"0x2aa80529",
		"0x4bd09024",
		"0x1fb77012",
		"0xa63cb0d",
		"0x1f24cec8",
	}},
	{"bls12-381", 3, []string{
		"0x4951ce88ae7f5409af0efac7c237d5ea543f80a92dd977016938289c5f2f36bf",
		"0x43bc40d38b2d7abf967817821d011a60b389a6d931aa59ec6186249e505688c1",
		"0xfb8fa1c7b40b6c7519c76441d53179151b865ecbff2036c27fbfda4cddac46c",
	}},
	{"bls12-381", 4, []string{
		"0x133da9ef699079643bef9da4036731c4d141bd3baa1fd6ffb610489c03f291a0",
		"0x4484d6c863ad61c0fe0ace4440616931d775ff28b9f7ab30b717ed2d77f53b4e",
		"0x3ca6f95068f607593bddb780031f2eebacf65709d3e8f998968fb6c024e3fdba",
		"0x376831cd78ced58c0a1787afb61f6fb1afdf936c8d58760def34dd369c4ff8c9",
	}},
	{"bls12-381", 8, []string{
		"0x29d9847169fe74738592cc5608a8750682368abf8303c6c782cb5daba492b351",
		"0x20fb792dfe1a1099391cb5f195fd6c1d89b77f41a5c2d019c1dfb59bc76e256e",
		"0x116515d8ae1f7ec9bb043edee50573395616ac92dfa840c64400a2f8f0fb6cee",
		"0x6ee410a5ce6ecb6c4f846117b8406abfb55021dd209125baf3b3297f87e25009",
		"0x1d79724dfb178fdecad729f6dcaa33124f02813939b268403ae8d2a8d2354ba5",
		"0x4fc867b8ac943e4b991b4c434669d6afde9667ee4f04fb98af0bf33c1602c5a5",
		"0x349db7ef740775e22d79fecedffb03d4c6165f697ed162fdfdabe9eeca621dd8",
		"0x531c0e620b2798803ef4058fd0c24d68cba2d881fd31208e70ae7c8a88119c8b",
	}},
	{"bn254", 3, []string{
		"0x17424ff4e24d04685cab61c42b2dadd3f5c36be2429ae0265a1d9b32b4716827",
		"0x16b8079ad261a38b24dad3af840de8a7003da60d46c284b71f7a236703f38789",
		"0x756c40506b2ea8caae53c0e801a31c313b7157295e30b42f1ffd7ee55565b8b",
	}},
	{"goldilocks", 8, []string{
		"0xf1d8e372c4049269",
		"0xf2b7c7a948741cc3",
		"0xd4b232d76a09e22e",
		"0xcbfc1fa0f94b3aba",
		"0x85facd400db659c7",
		"0xf505bbbaa20c8270",
		"0x3277d582ce986dc6",
		"0xe8aaa35d1df02e8c",
	}},
	{"goldilocks", 12, []string{
		"0xb43b1c8ebb572da6",
		"0x39281f1e6ce28506",
		"0x621c6fd3686801da",
		"0x21bb7ca9e8482749",
		"0x44578a04f66de67d",
		"0xccf1d6561d882e46",
		"0x39948d7f41dbae8d",
		"0xd03a51ae8ff66643",
		"0x713004424cfa14dd",
		"0x37a870304fe3deae",
		"0xfeda43c0db02fd4a",
		"0xa2fda5342bb7c423",
	}},
	{"goldilocks", 16, []string{
		"0x7d4e35beeb9fb3a2",
		"0x54ab08df21aabf34",
		"0xcbe8d096d50a27b",
		"0x99b5d985e458cf01",
		"0x9b270c549b6a9655",
		"0x32ec87a9adc5230b",
		"0xecea895b2e9ebce7",
		"0xf18a98e010571fc4",
		"0x4204e312f41b40c3",
		"0x7e6911a40efb62fe",
		"0x96008fc21619d8d0",
		"0xf6636da708ce588c",
		"0xf2edc39cec22511e",
		"0x257a46847dd0df38",
		"0x19c8f08b0e0a2b29",
		"0x917631b43c0308df",
	}},
	{"goldilocks", 20, []string{
		"0xcc2592c8c48a500f",
		"0xfd636b99e78145c6",
		"0x84262439f0e354f0",
		"0x83fffd47ae56e69c",
		"0x38529b2dbfbac1fb",
		"0x546d4dee635f598c",
		"0x5740246f61223d70",
		"0x509c4cfa13a1b667",
		"0x6c984fc008311e9e",
		"0x668bf0177d0cbb8",
		"0xe0770755048184d1",
		"0x26c5a123ca83cb31",
		"0x44302926e4b58568",
		"0x4d745957c7780f48",
		"0xd1551756c22f90ec",
		"0x7a16278de3760516",
		"0x30ef8d6ca1a89400",
		"0x7de41f3d65798c06",
		"0xf8de7c00cf70978d",
		"0x4c94e477597f7bbe",
	}},
	{"pallas", 3, []string{
		"0x10cc2f0bfa1cb42c2a04d323bf8e258729f594ae6b81bb166fe74b349c607c8",
		"0x2aca83657dd9e1f3c904896314f257e18a78c53a7ae81019fb8e2b122195187d",
		"0x1d52f640076ec62389d3676ef9d7c47db9b11153095ae3c3f8d2571ff9155cec",
	}},
	{"pallas", 4, []string{
		"0x19699e54eb445314d0c54cc8c1931571b9c1a8963dd00e354906407451f31f58",
		"0x2b484d5db70cbced73dac632beb48ce2ea232fb8ed94ebec0f82095fecd7e1d9",
		"0x2acca474357e7bb19b838f3c49f6936fc6b83790ffaf631f064a0bc1aa36b9d5",
		"0x35d8bb0c886d52138a9a446254bcadc26a004d88fcf2d1854cb24b6a5fdda5ce",
	}},
	{"pallas", 8, []string{
		"0x205fc230bd17b4df4aa505b1c3dec2011baf449d750f9faa55946f10bbc84454",
		"0xfd5b2dcbecf6c3bbc08e107ec38f373951876e92b1d043530d24faa694171e2",
		"0x3c280637324bd3fbf0a8d248382fa74c21b311fe9b1eae1e881f71197484802d",
		"0x10390d756506e044083c4b7dc686107900fc01a68a1e78bb58077a4840203381",
		"0x168809824fdedadb4955d5a34742d91fa3d19622c78bdf57ebe5d1af305d8447",
		"0x928bc2f856f91a2539e28e29d05eef98f1f85b9ce1148693152bc64e522ff64",
		"0x1b0c53a94b55133991fbb996a56ed81ded32e31d48492b5ac59c967e6ad4c60a",
		"0x10d8d5d4eddca397dffe8d3a9b0e1ac93298feb4a80f48d0a34c7c568a4add9b",
	}},
	{"vesta", 3, []string{
		"0x3711a9c32438597e2d318292b62fb95e6325fb0fdd38ce0828f44cbf76bda60b",
		"0x34c182c1f019f522108ea06c56b783fd3a3144e873b36faeb9578f28daf5f10d",
		"0x396b4413b32528876e42085aad38ce34154b4a07291fa9419e2a2e464183562",
	}},
}

func checkKAT[E any, PE field.Element[E]](t *testing.T, f field.Field[E, PE], width int, want []string) {
	t.Helper()
	p := New(MustForField(f, width))
	in := f.Sequence(width)
	got := f.HexVector(p.Permutation(in))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("permutation[%d]\nexpected %s\ngot      %s", i, want[i], got[i])
		}
	}
	if ref := f.HexVector(p.PermutationNotOpt(in)); strings.Join(ref, ",") != strings.Join(want, ",") {
		t.Fatalf("reference permutation mismatch: %v", ref)
	}
}

func TestKAT(t *testing.T) {
	if len(kats) != len(Instances) {
		t.Fatalf("%d vectors for %d instances", len(kats), len(Instances))
	}
	for _, c := range kats {
		t.Run(fmt.Sprintf("%s/%d", c.field, c.width), func(t *testing.T) {
			switch c.field {
			case "babybear":
				checkKAT(t, field.BabyBear, c.width, c.want)
			case "goldilocks":
				checkKAT(t, field.Goldilocks, c.width, c.want)
			case "bn254":
				checkKAT(t, field.BN254, c.width, c.want)
			case "bls12-381":
				checkKAT(t, field.BLS12381, c.width, c.want)
			case "pallas":
				checkKAT(t, field.Pallas, c.width, c.want)
			case "vesta":
				checkKAT(t, field.Vesta, c.width, c.want)
			default:
				t.Fatalf("unknown field %s", c.field)
			}
		})
	}
}

func checkOptEqualsNotOpt[E any, PE field.Element[E]](t *testing.T, p *Poseidon2[E, PE]) {
	t.Helper()
	f := p.Params().Field
	for range testRuns {
		in := f.RandVector(p.Width())
		if opt, ref := p.Permutation(in), p.PermutationNotOpt(in); !field.Equal[E, PE](opt, ref) {
			t.Fatalf("optimized and reference outputs differ\nopt: %v\nref: %v", f.HexVector(opt), f.HexVector(ref))
		}
	}
}

func TestOptEqualsNotOpt(t *testing.T) {
	checkOptEqualsNotOpt(t, New(MustForField(field.BN254, 3)))
	checkOptEqualsNotOpt(t, New(MustForField(field.Goldilocks, 8)))
	checkOptEqualsNotOpt(t, New(MustForField(field.BabyBear, 24)))
	checkOptEqualsNotOpt(t, New(MustForField(field.Pallas, 4)))
	checkOptEqualsNotOpt(t, New(MustParams(field.Vesta, 12, sbox.Cube, 2, 3)))
	checkOptEqualsNotOpt(t, New(MustParams(field.Goldilocks, 3, sbox.Septic, 4, 1)))
}

func TestConsistentPermutation(t *testing.T) {
	f := field.Goldilocks
	p := New(MustForField(f, 12))
	for range testRuns {
		a, b := f.RandVector(12), f.RandVector(12)
		if !field.Equal(p.Permutation(a), p.Permutation(a)) {
			t.Fatal("permutation is not deterministic")
		}
		if field.Equal(p.Permutation(a), p.Permutation(b)) {
			t.Fatal("distinct inputs collided")
		}
	}
}

// externalDense builds the block-circulant matrix with 2·M4 on the diagonal
// and M4 elsewhere.
func externalDense(f field.Field[field.BN254Element, *field.BN254Element], t int) [][]field.BN254Element {
	m4 := [4][4]uint64{{5, 7, 1, 3}, {4, 6, 1, 1}, {1, 3, 5, 7}, {1, 1, 4, 6}}
	m := matrix.New[field.BN254Element](t, t)
	for i := range t {
		for j := range t {
			v := m4[i%4][j%4]
			if i/4 == j/4 {
				v *= 2
			}
			m[i][j] = f.FromUint64(v)
		}
	}
	return m
}

func TestMatMulExternal(t *testing.T) {
	f := field.BN254
	for _, width := range []int{4, 8, 12, 16, 20, 24} {
		dense := externalDense(f, width)
		for range testRuns {
			in := f.RandVector(width)
			want := matrix.MulVec(dense, in)
			MatMulExternal(in)
			if !field.Equal(in, want) {
				t.Fatalf("t=%d: external layer differs from the dense product", width)
			}
		}
	}

	// t = 3 is circ(2, 1, 1)
	in := f.Sequence(3)
	MatMulExternal(in)
	if got := f.HexVector(in); strings.Join(got, ",") != "0x3,0x4,0x5" {
		t.Fatalf("circ(2,1,1)·(0,1,2) = %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("width 5 did not panic")
		}
	}()
	MatMulExternal(f.Sequence(5))
}

func TestMatMulInternal(t *testing.T) {
	for _, width := range []int{3, 8, 16} {
		p := MustParams(field.BabyBear, width, sbox.Septic, 2, 1)
		for range testRuns {
			in := field.BabyBear.RandVector(width)
			want := matrix.MulVec(p.MatInternal, in)
			MatMulInternal(in, p.DiagM1)
			if !field.Equal(in, want) {
				t.Fatalf("t=%d: internal layer differs from the dense product", width)
			}
		}
	}
}

func TestCompress(t *testing.T) {
	f := field.Goldilocks
	p := New(MustForField(f, 8))
	got := p.Compress([2]field.GoldilocksElement{f.FromUint64(1), f.FromUint64(2)})
	if h := f.Hex(&got); h != "0xcb1e2a59d5542a76" {
		t.Fatalf("compress(1, 2) = %s", h)
	}
}

func TestNewParamsErrors(t *testing.T) {
	for _, width := range []int{1, 2, 5, 6, 28} {
		if _, err := NewParams(field.BN254, width, sbox.Quintic, 8, 56); err == nil {
			t.Fatalf("width %d accepted", width)
		} else if !strings.HasPrefix(err.Error(), "poseidon2: ") {
			t.Fatalf("error %q lacks package prefix", err)
		}
	}
	if _, err := NewParams(field.BN254, 3, sbox.Degree(2), 8, 56); err == nil {
		t.Fatal("degree 2 accepted")
	}
	if _, err := ForField(field.Vesta, 4); err == nil {
		t.Fatal("uncatalogued width accepted")
	}
}

func TestWidthMismatchPanics(t *testing.T) {
	p := New(MustForField(field.BabyBear, 16))
	defer func() {
		if r := recover(); r == nil || !strings.Contains(fmt.Sprint(r), "expected 16 elements, got 17") {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	p.PermutationNotOpt(field.BabyBear.Sequence(17))
}
