// Package pasta implements the base fields of the Pallas and Vesta curves.
//
// Elements are four little-endian 64-bit limbs in Montgomery form (R = 2^256)
// and are always fully reduced. The method set mirrors the gnark-crypto field
// elements so both kinds can be used interchangeably by generic code.
package pasta

import (
	"encoding/binary"
	"math/big"
	"math/bits"
)

type limbs = [4]uint64

// montgomery holds the per-field constants.
type montgomery struct {
	q       limbs
	qInvNeg uint64 // -q^{-1} mod 2^64
	r2      limbs  // R^2 mod q
	one     limbs  // R mod q
	modulus *big.Int
}

func newMontgomery(hex string) *montgomery {
	q, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("pasta: invalid modulus")
	}
	m := &montgomery{modulus: q}
	m.q = toLimbs(q)

	word := new(big.Int).Lsh(big.NewInt(1), 64)
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(m.q[0]), word)
	inv.Sub(word, inv)
	m.qInvNeg = inv.Uint64()

	r := new(big.Int).Lsh(big.NewInt(1), 256)
	m.one = toLimbs(new(big.Int).Mod(r, q))
	m.r2 = toLimbs(new(big.Int).Mod(new(big.Int).Mul(r, r), q))
	return m
}

func toLimbs(v *big.Int) limbs {
	var buf [32]byte
	v.FillBytes(buf[:])
	var z limbs
	for i := range z {
		z[i] = binary.BigEndian.Uint64(buf[32-8*(i+1) : 32-8*i])
	}
	return z
}

func fromLimbs(z *limbs, res *big.Int) *big.Int {
	var buf [32]byte
	for i := range z {
		binary.BigEndian.PutUint64(buf[32-8*(i+1):32-8*i], z[i])
	}
	return res.SetBytes(buf[:])
}

// smallerThanModulus reports z < q.
func (m *montgomery) smallerThanModulus(z *limbs) bool {
	for i := 3; i >= 0; i-- {
		if z[i] != m.q[i] {
			return z[i] < m.q[i]
		}
	}
	return false
}

func (m *montgomery) reduce(z *limbs) {
	if m.smallerThanModulus(z) {
		return
	}
	var b uint64
	z[0], b = bits.Sub64(z[0], m.q[0], 0)
	z[1], b = bits.Sub64(z[1], m.q[1], b)
	z[2], b = bits.Sub64(z[2], m.q[2], b)
	z[3], _ = bits.Sub64(z[3], m.q[3], b)
}

func (m *montgomery) add(z, x, y *limbs) {
	var c uint64
	z[0], c = bits.Add64(x[0], y[0], 0)
	z[1], c = bits.Add64(x[1], y[1], c)
	z[2], c = bits.Add64(x[2], y[2], c)
	z[3], _ = bits.Add64(x[3], y[3], c)
	// q < 2^255, so the sum of two reduced values fits in four limbs.
	m.reduce(z)
}

func (m *montgomery) sub(z, x, y *limbs) {
	var b uint64
	z[0], b = bits.Sub64(x[0], y[0], 0)
	z[1], b = bits.Sub64(x[1], y[1], b)
	z[2], b = bits.Sub64(x[2], y[2], b)
	z[3], b = bits.Sub64(x[3], y[3], b)
	if b != 0 {
		var c uint64
		z[0], c = bits.Add64(z[0], m.q[0], 0)
		z[1], c = bits.Add64(z[1], m.q[1], c)
		z[2], c = bits.Add64(z[2], m.q[2], c)
		z[3], _ = bits.Add64(z[3], m.q[3], c)
	}
}

// mul sets z = x*y*R^{-1} mod q (CIOS).
func (m *montgomery) mul(z, x, y *limbs) {
	var t [6]uint64
	for i := 0; i < 4; i++ {
		var c uint64
		for j := 0; j < 4; j++ {
			c, t[j] = madd(x[j], y[i], t[j], c)
		}
		t[4], c = bits.Add64(t[4], c, 0)
		t[5] = c

		k := t[0] * m.qInvNeg
		c, _ = madd(k, m.q[0], t[0], 0)
		for j := 1; j < 4; j++ {
			c, t[j-1] = madd(k, m.q[j], t[j], c)
		}
		t[3], c = bits.Add64(t[4], c, 0)
		t[4] = t[5] + c
	}
	z[0], z[1], z[2], z[3] = t[0], t[1], t[2], t[3]
	if t[4] != 0 {
		var b uint64
		z[0], b = bits.Sub64(z[0], m.q[0], 0)
		z[1], b = bits.Sub64(z[1], m.q[1], b)
		z[2], b = bits.Sub64(z[2], m.q[2], b)
		z[3], _ = bits.Sub64(z[3], m.q[3], b)
		return
	}
	m.reduce(z)
}

// madd returns the 128-bit value a*b + c + d as (hi, lo).
func madd(a, b, c, d uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	lo, carry = bits.Add64(lo, d, 0)
	hi += carry
	return hi, lo
}

func (m *montgomery) setUint64(z *limbs, v uint64) {
	*z = limbs{v}
	m.mul(z, z, &m.r2)
}

func (m *montgomery) setBigInt(z *limbs, v *big.Int) {
	r := new(big.Int).Mod(v, m.modulus)
	*z = toLimbs(r)
	m.mul(z, z, &m.r2)
}

func (m *montgomery) bigInt(z *limbs, res *big.Int) *big.Int {
	var canonical limbs
	m.mul(&canonical, z, &limbs{1})
	return fromLimbs(&canonical, res)
}

// inverse sets z = x^{-1}, with the convention 0^{-1} = 0.
func (m *montgomery) inverse(z, x *limbs) {
	if *x == (limbs{}) {
		*z = limbs{}
		return
	}
	v := m.bigInt(x, new(big.Int))
	v.ModInverse(v, m.modulus)
	m.setBigInt(z, v)
}
