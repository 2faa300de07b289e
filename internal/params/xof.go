package params

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/vocdoni/zkhash/field"
)

// Sampler derives field elements from a SHAKE128 stream. The stream is seeded
// with the primitive name, the field modulus (little-endian, padded to whole
// 64-bit limbs) and the shape values (each a little-endian uint64), so every
// (primitive, field, shape) triple yields its own constants.
type Sampler[E any, PE field.Element[E]] struct {
	h       sha3.ShakeHash
	modulus *big.Int
	buf     []byte
	mask    byte
}

// NewSampler absorbs the seed and returns a sampler positioned at the start of
// the stream.
func NewSampler[E any, PE field.Element[E]](primitive string, f field.Field[E, PE], shape ...uint64) *Sampler[E, PE] {
	q := f.Modulus()
	bitLen := q.BitLen()

	h := sha3.NewShake128()
	h.Write([]byte(primitive))

	limbs := (bitLen + 63) / 64
	le := make([]byte, 8*limbs)
	q.FillBytes(le)
	reverse(le)
	h.Write(le)

	var word [8]byte
	for _, v := range shape {
		binary.LittleEndian.PutUint64(word[:], v)
		h.Write(word[:])
	}

	mask := byte(0xff)
	if rem := bitLen % 8; rem != 0 {
		mask = byte(1)<<rem - 1
	}
	return &Sampler[E, PE]{
		h:       h,
		modulus: q,
		buf:     make([]byte, (bitLen+7)/8),
		mask:    mask,
	}
}

// Next returns the next element, rejecting candidates that are not below the
// modulus.
func (s *Sampler[E, PE]) Next() E {
	v := new(big.Int)
	for {
		if _, err := s.h.Read(s.buf); err != nil {
			panic(err) // a ShakeHash never fails to read
		}
		s.buf[len(s.buf)-1] &= s.mask
		be := append([]byte(nil), s.buf...)
		reverse(be)
		v.SetBytes(be)
		if v.Cmp(s.modulus) < 0 {
			var e E
			PE(&e).SetBigInt(v)
			return e
		}
	}
}

// NextNonZero is Next with zero also rejected.
func (s *Sampler[E, PE]) NextNonZero() E {
	for {
		e := s.Next()
		if !PE(&e).IsZero() {
			return e
		}
	}
}

// Vector returns n consecutive elements.
func (s *Sampler[E, PE]) Vector(n int) []E {
	out := make([]E, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// Matrix returns rows×cols consecutive elements, row by row.
func (s *Sampler[E, PE]) Matrix(rows, cols int) [][]E {
	out := make([][]E, rows)
	for i := range out {
		out[i] = s.Vector(cols)
	}
	return out
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
