package field

import "testing"

func TestModuli(t *testing.T) {
	cases := []struct {
		name    string
		modulus string
		bitLen  int
	}{
		{BabyBear.Name(), BabyBear.Modulus().Text(16), BabyBear.BitLen()},
		{Goldilocks.Name(), Goldilocks.Modulus().Text(16), Goldilocks.BitLen()},
		{BN254.Name(), BN254.Modulus().Text(16), BN254.BitLen()},
		{BLS12381.Name(), BLS12381.Modulus().Text(16), BLS12381.BitLen()},
		{Pallas.Name(), Pallas.Modulus().Text(16), Pallas.BitLen()},
		{Vesta.Name(), Vesta.Modulus().Text(16), Vesta.BitLen()},
	}
	want := []struct {
		modulus string
		bitLen  int
	}{
		{"78000001", 31},
		{"ffffffff00000001", 64},
		{"30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001", 254},
		{"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 255},
		{"40000000000000000000000000000000224698fc094cf91b992d30ed00000001", 255},
		{"40000000000000000000000000000000224698fc0994a8dd8c46eb2100000001", 255},
	}
	for i, c := range cases {
		if c.name != Names[i] {
			t.Fatalf("catalog order: got %s at %d, want %s", c.name, i, Names[i])
		}
		if c.modulus != want[i].modulus || c.bitLen != want[i].bitLen {
			t.Fatalf("%s: modulus %s (%d bits), want %s (%d bits)", c.name, c.modulus, c.bitLen, want[i].modulus, want[i].bitLen)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		x := BN254.Rand()
		y, err := BN254.FromHex(BN254.Hex(&x))
		if err != nil {
			t.Fatal(err)
		}
		if !x.Equal(&y) {
			t.Fatalf("hex round trip: %s != %s", x.String(), y.String())
		}

		p := Pallas.Rand()
		q := Pallas.MustHex(Pallas.Hex(&p))
		if !p.Equal(&q) {
			t.Fatalf("pallas hex round trip: %s != %s", p.String(), q.String())
		}
	}

	one := Goldilocks.One()
	if h := Goldilocks.Hex(&one); h != "0x1" {
		t.Fatalf("hex(1) = %s", h)
	}
	zero := BabyBear.Zero()
	if h := BabyBear.Hex(&zero); h != "0x0" {
		t.Fatalf("hex(0) = %s", h)
	}
}

func TestFromHexRejects(t *testing.T) {
	if _, err := Goldilocks.FromHex("0xffffffff00000001"); err == nil {
		t.Fatal("modulus accepted as an element")
	}
	if _, err := Goldilocks.FromHex("0xzz"); err == nil {
		t.Fatal("malformed hex accepted")
	}
	if _, err := BabyBear.FromHex("78000000"); err != nil {
		t.Fatalf("p-1 rejected: %v", err)
	}
}

func TestSequenceAndEqual(t *testing.T) {
	a := Vesta.Sequence(4)
	for i := range a {
		if want := Vesta.FromUint64(uint64(i)); !a[i].Equal(&want) {
			t.Fatalf("sequence[%d] = %s", i, a[i].String())
		}
	}
	if !Equal(a, Vesta.Sequence(4)) {
		t.Fatal("equal vectors reported different")
	}
	if Equal(a, Vesta.Sequence(3)) {
		t.Fatal("vectors of different length reported equal")
	}
	c := Vesta.Sequence(4)
	c[3] = Vesta.FromUint64(7)
	if Equal(a, c) {
		t.Fatal("different vectors reported equal")
	}
	if hv := Vesta.HexVector(a); hv[3] != "0x3" {
		t.Fatalf("hex vector = %v", hv)
	}
}
