package pasta

import "math/big"

// Vesta is an element of GF(q), q = 2^254 + 45560315531506369815346746415080538113.
type Vesta [4]uint64

var vestaField = newMontgomery("40000000000000000000000000000000224698fc0994a8dd8c46eb2100000001")

// VestaModulus returns a copy of q.
func VestaModulus() *big.Int { return new(big.Int).Set(vestaField.modulus) }

func (z *Vesta) l() *limbs { return (*limbs)(z) }

func (z *Vesta) Set(x *Vesta) *Vesta { *z = *x; return z }

func (z *Vesta) SetZero() *Vesta { *z = Vesta{}; return z }

func (z *Vesta) SetOne() *Vesta { *z = Vesta(vestaField.one); return z }

func (z *Vesta) SetUint64(v uint64) *Vesta {
	vestaField.setUint64(z.l(), v)
	return z
}

// SetBigInt sets z to v mod q.
func (z *Vesta) SetBigInt(v *big.Int) *Vesta {
	vestaField.setBigInt(z.l(), v)
	return z
}

// BigInt sets res to the canonical value of z and returns it.
func (z *Vesta) BigInt(res *big.Int) *big.Int { return vestaField.bigInt(z.l(), res) }

func (z *Vesta) Add(x, y *Vesta) *Vesta {
	vestaField.add(z.l(), x.l(), y.l())
	return z
}

func (z *Vesta) Sub(x, y *Vesta) *Vesta {
	vestaField.sub(z.l(), x.l(), y.l())
	return z
}

func (z *Vesta) Double(x *Vesta) *Vesta {
	vestaField.add(z.l(), x.l(), x.l())
	return z
}

func (z *Vesta) Mul(x, y *Vesta) *Vesta {
	vestaField.mul(z.l(), x.l(), y.l())
	return z
}

func (z *Vesta) Square(x *Vesta) *Vesta {
	vestaField.mul(z.l(), x.l(), x.l())
	return z
}

// Inverse sets z = 1/x; the inverse of zero is zero.
func (z *Vesta) Inverse(x *Vesta) *Vesta {
	vestaField.inverse(z.l(), x.l())
	return z
}

func (z *Vesta) Equal(x *Vesta) bool { return *z == *x }

func (z *Vesta) IsZero() bool { return *z == Vesta{} }

// String returns the decimal representation of z.
func (z *Vesta) String() string { return z.BigInt(new(big.Int)).String() }
