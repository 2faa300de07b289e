package pasta

import (
	"crypto/rand"
	"math/big"
	"testing"
)

const runs = 200

func randBig(t *testing.T, q *big.Int) *big.Int {
	t.Helper()
	v, err := rand.Int(rand.Reader, q)
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	return v
}

func TestPallasMatchesBigInt(t *testing.T) {
	q := PallasModulus()
	edge := []*big.Int{big.NewInt(0), big.NewInt(1), new(big.Int).Sub(q, big.NewInt(1))}
	for i := 0; i < runs; i++ {
		a, b := randBig(t, q), randBig(t, q)
		if i < len(edge) {
			a = edge[i]
		}
		var x, y, z Pallas
		x.SetBigInt(a)
		y.SetBigInt(b)

		check := func(op string, got *Pallas, want *big.Int) {
			t.Helper()
			want.Mod(want, q)
			if g := got.BigInt(new(big.Int)); g.Cmp(want) != 0 {
				t.Fatalf("%s(%s, %s): got %s want %s", op, a, b, g, want)
			}
		}
		check("add", z.Add(&x, &y), new(big.Int).Add(a, b))
		check("sub", z.Sub(&x, &y), new(big.Int).Sub(a, b))
		check("mul", z.Mul(&x, &y), new(big.Int).Mul(a, b))
		check("square", z.Square(&x), new(big.Int).Mul(a, a))
		check("double", z.Double(&x), new(big.Int).Lsh(a, 1))
		if a.Sign() != 0 {
			check("inverse", z.Inverse(&x), new(big.Int).ModInverse(a, q))
		}
	}
}

func TestVestaMatchesBigInt(t *testing.T) {
	q := VestaModulus()
	for i := 0; i < runs; i++ {
		a, b := randBig(t, q), randBig(t, q)
		var x, y, z Vesta
		x.SetBigInt(a)
		y.SetBigInt(b)

		want := new(big.Int).Mul(a, b)
		want.Mod(want, q)
		if g := z.Mul(&x, &y).BigInt(new(big.Int)); g.Cmp(want) != 0 {
			t.Fatalf("mul: got %s want %s", g, want)
		}
		want.Sub(a, b).Mod(want, q)
		if g := z.Sub(&x, &y).BigInt(new(big.Int)); g.Cmp(want) != 0 {
			t.Fatalf("sub: got %s want %s", g, want)
		}
		if a.Sign() != 0 {
			z.Inverse(&x).Mul(&z, &x)
			var one Vesta
			one.SetOne()
			if !z.Equal(&one) {
				t.Fatalf("x * 1/x != 1 for %s", a)
			}
		}
	}
}

func TestConversions(t *testing.T) {
	var x Pallas
	if !x.IsZero() {
		t.Fatal("zero value is not zero")
	}
	x.SetUint64(42)
	if x.String() != "42" {
		t.Fatalf("SetUint64(42).String() = %s", x.String())
	}
	var one Pallas
	one.SetOne()
	if one.String() != "1" {
		t.Fatalf("one = %s", one.String())
	}

	// Values above the modulus are reduced.
	q := PallasModulus()
	x.SetBigInt(new(big.Int).Add(q, big.NewInt(5)))
	if x.String() != "5" {
		t.Fatalf("p+5 reduced to %s", x.String())
	}
	x.SetBigInt(big.NewInt(-1))
	if x.BigInt(new(big.Int)).Cmp(new(big.Int).Sub(q, big.NewInt(1))) != 0 {
		t.Fatalf("-1 reduced to %s", x.String())
	}

	var zero, inv Vesta
	if !inv.Inverse(&zero).IsZero() {
		t.Fatal("inverse of zero must be zero")
	}
}
