// Package matrix provides the dense linear algebra used to derive the
// permutation parameters. Matrices are row-major slices of rows.
package matrix

import (
	"errors"

	"github.com/vocdoni/zkhash/field"
)

// ErrSingular is returned by Inverse when elimination meets a zero pivot.
var ErrSingular = errors.New("matrix: zero pivot, matrix is singular")

// Identity returns the n×n identity matrix.
func Identity[E any, PE field.Element[E]](n int) [][]E {
	m := New[E](n, n)
	for i := range n {
		PE(&m[i][i]).SetOne()
	}
	return m
}

// New returns a zero rows×cols matrix.
func New[E any](rows, cols int) [][]E {
	m := make([][]E, rows)
	for i := range m {
		m[i] = make([]E, cols)
	}
	return m
}

// Clone deep-copies m.
func Clone[E any](m [][]E) [][]E {
	out := make([][]E, len(m))
	for i := range m {
		out[i] = append([]E(nil), m[i]...)
	}
	return out
}

func Transpose[E any](m [][]E) [][]E {
	if len(m) == 0 {
		return nil
	}
	out := New[E](len(m[0]), len(m))
	for i := range m {
		for j := range m[i] {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// MulVec returns m·v.
func MulVec[E any, PE field.Element[E]](m [][]E, v []E) []E {
	out := make([]E, len(m))
	var tmp E
	for i := range m {
		for j := range v {
			PE(&tmp).Mul(&m[i][j], &v[j])
			PE(&out[i]).Add(&out[i], &tmp)
		}
	}
	return out
}

// Mul returns a·b.
func Mul[E any, PE field.Element[E]](a, b [][]E) [][]E {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := New[E](len(a), len(b[0]))
	var tmp E
	for i := range a {
		for j := range b[0] {
			for k := range b {
				PE(&tmp).Mul(&a[i][k], &b[k][j])
				PE(&out[i][j]).Add(&out[i][j], &tmp)
			}
		}
	}
	return out
}

// Inverse computes m^{-1} by Gauss-Jordan elimination without row swaps:
// the forward pass brings m to unit upper triangular form, the backward pass
// clears the entries above the diagonal. A zero pivot yields ErrSingular.
func Inverse[E any, PE field.Element[E]](m [][]E) ([][]E, error) {
	n := len(m)
	a := Clone(m)
	inv := Identity[E, PE](n)
	var tmp, pivot E

	for row := range n {
		for j := range row {
			el := a[row][j]
			for col := range n {
				PE(&tmp).Mul(&a[j][col], &el)
				PE(&a[row][col]).Sub(&a[row][col], &tmp)
				PE(&tmp).Mul(&inv[j][col], &el)
				PE(&inv[row][col]).Sub(&inv[row][col], &tmp)
			}
		}
		if PE(&a[row][row]).IsZero() {
			return nil, ErrSingular
		}
		PE(&pivot).Inverse(&a[row][row])
		for col := range n {
			PE(&a[row][col]).Mul(&a[row][col], &pivot)
			PE(&inv[row][col]).Mul(&inv[row][col], &pivot)
		}
	}

	for row := n - 1; row >= 0; row-- {
		for j := n - 1; j > row; j-- {
			el := a[row][j]
			for col := range n {
				PE(&tmp).Mul(&inv[j][col], &el)
				PE(&inv[row][col]).Sub(&inv[row][col], &tmp)
			}
			PE(&a[row][j]).SetZero()
		}
	}
	return inv, nil
}
