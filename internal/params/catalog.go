package params

import "github.com/vocdoni/zkhash/internal/sbox"

// Instance names a catalogued parameter shape for one field.
type Instance struct {
	Field string
	Shape
}

func NewInstance(fieldName string, t, d, rf, rp int) Instance {
	return Instance{Field: fieldName, Shape: Shape{Width: t, Degree: sbox.Degree(d), FullRounds: rf, PartialRounds: rp}}
}

// Find returns the entry of catalog matching the field name and width.
func Find(catalog []Instance, fieldName string, t int) (Instance, bool) {
	for _, in := range catalog {
		if in.Field == fieldName && in.Width == t {
			return in, true
		}
	}
	return Instance{}, false
}
