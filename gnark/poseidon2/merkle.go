package poseidon2

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// MaxLeaves bounds the number of leaves Accumulate accepts.
const MaxLeaves = 1 << 12

// Accumulate computes the Merkle root of leaves inside the circuit with the
// same padding rule as the native merkle package: the leaf list is extended
// to a power of two, at least two, by repeating its last element.
func (p *Permutation) Accumulate(api frontend.API, leaves ...frontend.Variable) (frontend.Variable, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("poseidon2: need at least 1 leaf")
	}
	if len(leaves) > MaxLeaves {
		return nil, fmt.Errorf("poseidon2: too many leaves (%d > %d)", len(leaves), MaxLeaves)
	}

	size := 2
	for size < len(leaves) {
		size <<= 1
	}
	current := make([]frontend.Variable, size)
	n := copy(current, leaves)
	for i := n; i < size; i++ {
		current[i] = leaves[n-1]
	}

	for len(current) > 1 {
		next := make([]frontend.Variable, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			h, err := p.Compress(api, current[i], current[i+1])
			if err != nil {
				return nil, err
			}
			next = append(next, h)
		}
		current = next
	}
	return current[0], nil
}
