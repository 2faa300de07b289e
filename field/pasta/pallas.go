package pasta

import "math/big"

// Pallas is an element of GF(p), p = 2^254 + 45560315531419706090280762371685220353.
type Pallas [4]uint64

var pallasField = newMontgomery("40000000000000000000000000000000224698fc094cf91b992d30ed00000001")

// PallasModulus returns a copy of p.
func PallasModulus() *big.Int { return new(big.Int).Set(pallasField.modulus) }

func (z *Pallas) l() *limbs { return (*limbs)(z) }

func (z *Pallas) Set(x *Pallas) *Pallas { *z = *x; return z }

func (z *Pallas) SetZero() *Pallas { *z = Pallas{}; return z }

func (z *Pallas) SetOne() *Pallas { *z = Pallas(pallasField.one); return z }

func (z *Pallas) SetUint64(v uint64) *Pallas {
	pallasField.setUint64(z.l(), v)
	return z
}

// SetBigInt sets z to v mod p.
func (z *Pallas) SetBigInt(v *big.Int) *Pallas {
	pallasField.setBigInt(z.l(), v)
	return z
}

// BigInt sets res to the canonical value of z and returns it.
func (z *Pallas) BigInt(res *big.Int) *big.Int { return pallasField.bigInt(z.l(), res) }

func (z *Pallas) Add(x, y *Pallas) *Pallas {
	pallasField.add(z.l(), x.l(), y.l())
	return z
}

func (z *Pallas) Sub(x, y *Pallas) *Pallas {
	pallasField.sub(z.l(), x.l(), y.l())
	return z
}

func (z *Pallas) Double(x *Pallas) *Pallas {
	pallasField.add(z.l(), x.l(), x.l())
	return z
}

func (z *Pallas) Mul(x, y *Pallas) *Pallas {
	pallasField.mul(z.l(), x.l(), y.l())
	return z
}

func (z *Pallas) Square(x *Pallas) *Pallas {
	pallasField.mul(z.l(), x.l(), x.l())
	return z
}

// Inverse sets z = 1/x; the inverse of zero is zero.
func (z *Pallas) Inverse(x *Pallas) *Pallas {
	pallasField.inverse(z.l(), x.l())
	return z
}

func (z *Pallas) Equal(x *Pallas) bool { return *z == *x }

func (z *Pallas) IsZero() bool { return *z == Pallas{} }

// String returns the decimal representation of z.
func (z *Pallas) String() string { return z.BigInt(new(big.Int)).String() }
