// Package field describes the prime fields the permutations are instantiated
// over. Element types come from gnark-crypto where available; Pallas and Vesta
// live in the pasta subpackage.
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Element is the arithmetic surface the permutation engines need from a field
// element. It is satisfied by pointers to gnark-crypto field elements and to
// the pasta elements.
type Element[E any] interface {
	*E
	Set(*E) *E
	SetZero() *E
	SetOne() *E
	SetUint64(uint64) *E
	SetBigInt(*big.Int) *E
	BigInt(*big.Int) *big.Int
	Add(*E, *E) *E
	Sub(*E, *E) *E
	Mul(*E, *E) *E
	Square(*E) *E
	Double(*E) *E
	Inverse(*E) *E
	Equal(*E) bool
	IsZero() bool
	String() string
}

// Field is an immutable descriptor of a prime field whose elements have type E.
type Field[E any, PE Element[E]] struct {
	name    string
	modulus *big.Int
}

// New returns a descriptor for the field named name with the given modulus.
func New[E any, PE Element[E]](name string, modulus *big.Int) Field[E, PE] {
	return Field[E, PE]{name: name, modulus: new(big.Int).Set(modulus)}
}

// Name returns the short field name ("bn254", "goldilocks", ...).
func (f Field[E, PE]) Name() string { return f.name }

// Modulus returns a copy of the field characteristic.
func (f Field[E, PE]) Modulus() *big.Int { return new(big.Int).Set(f.modulus) }

// BitLen is the bit length of the modulus.
func (f Field[E, PE]) BitLen() int { return f.modulus.BitLen() }

func (f Field[E, PE]) Zero() E {
	var z E
	PE(&z).SetZero()
	return z
}

func (f Field[E, PE]) One() E {
	var o E
	PE(&o).SetOne()
	return o
}

func (f Field[E, PE]) FromUint64(v uint64) E {
	var e E
	PE(&e).SetUint64(v)
	return e
}

// FromBigInt reduces v modulo p.
func (f Field[E, PE]) FromBigInt(v *big.Int) E {
	var e E
	PE(&e).SetBigInt(v)
	return e
}

// FromHex parses a canonical hexadecimal representation, with or without the
// 0x prefix. Values outside [0, p) are rejected.
func (f Field[E, PE]) FromHex(s string) (E, error) {
	var e E
	v, ok := new(big.Int).SetString(strings.TrimPrefix(strings.ToLower(s), "0x"), 16)
	if !ok {
		return e, fmt.Errorf("field %s: invalid hex %q", f.name, s)
	}
	if v.Sign() < 0 || v.Cmp(f.modulus) >= 0 {
		return e, fmt.Errorf("field %s: %s is not reduced", f.name, s)
	}
	PE(&e).SetBigInt(v)
	return e, nil
}

// MustHex is FromHex for constants; it panics on malformed input.
func (f Field[E, PE]) MustHex(s string) E {
	e, err := f.FromHex(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Hex returns the canonical value of e as 0x-prefixed lowercase hex.
func (f Field[E, PE]) Hex(e *E) string {
	return "0x" + PE(e).BigInt(new(big.Int)).Text(16)
}

// Rand samples a uniform element using crypto/rand.
func (f Field[E, PE]) Rand() E {
	v, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		panic(fmt.Sprintf("field %s: reading randomness: %v", f.name, err))
	}
	return f.FromBigInt(v)
}

// RandVector returns n random elements.
func (f Field[E, PE]) RandVector(n int) []E {
	out := make([]E, n)
	for i := range out {
		out[i] = f.Rand()
	}
	return out
}

// Sequence returns [0, 1, ..., n-1].
func (f Field[E, PE]) Sequence(n int) []E {
	out := make([]E, n)
	for i := range out {
		PE(&out[i]).SetUint64(uint64(i))
	}
	return out
}

// HexVector renders a slice of elements with Hex.
func (f Field[E, PE]) HexVector(v []E) []string {
	out := make([]string, len(v))
	for i := range v {
		out[i] = f.Hex(&v[i])
	}
	return out
}

// Equal reports whether two vectors hold the same elements.
func Equal[E any, PE Element[E]](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !PE(&a[i]).Equal(&b[i]) {
			return false
		}
	}
	return true
}
