package poseidon2

import (
	"fmt"

	"github.com/vocdoni/zkhash/field"
)

// MatMulExternal applies the external linear layer in place. For t = 3 it is
// circ(2, 1, 1); for t = 4k it is the block-circulant matrix with 2·M4 on
// the diagonal blocks and M4 elsewhere, computed as M4 per block plus the
// block-wise column sums.
func MatMulExternal[E any, PE field.Element[E]](state []E) {
	t := len(state)
	switch {
	case t == 3:
		var sum E
		PE(&sum).Add(&state[0], &state[1])
		PE(&sum).Add(&sum, &state[2])
		for i := range state {
			PE(&state[i]).Add(&state[i], &sum)
		}
	case t%4 == 0 && t >= 4 && t <= 24:
		for i := 0; i < t; i += 4 {
			matMulM4[E, PE](state[i : i+4])
		}
		var stored [4]E
		for l := range 4 {
			stored[l] = state[l]
			for j := 4 + l; j < t; j += 4 {
				PE(&stored[l]).Add(&stored[l], &state[j])
			}
		}
		for i := range state {
			PE(&state[i]).Add(&state[i], &stored[i%4])
		}
	default:
		panic(fmt.Sprintf("poseidon2: no external matrix for width %d", t))
	}
}

// matMulM4 multiplies a 4-element block by
//
//	[5 7 1 3]
//	[4 6 1 1]
//	[1 3 5 7]
//	[1 1 4 6]
//
// with the addition chain of the Poseidon2 paper (appendix B).
func matMulM4[E any, PE field.Element[E]](s []E) {
	var t0, t1, t2, t3, t4, t5, t6, t7 E
	PE(&t0).Add(&s[0], &s[1])
	PE(&t1).Add(&s[2], &s[3])
	PE(&t2).Double(&s[1])
	PE(&t2).Add(&t2, &t1)
	PE(&t3).Double(&s[3])
	PE(&t3).Add(&t3, &t0)
	PE(&t4).Double(&t1)
	PE(&t4).Double(&t4)
	PE(&t4).Add(&t4, &t3)
	PE(&t5).Double(&t0)
	PE(&t5).Double(&t5)
	PE(&t5).Add(&t5, &t2)
	PE(&t6).Add(&t3, &t5)
	PE(&t7).Add(&t2, &t4)
	s[0], s[1], s[2], s[3] = t6, t5, t7, t4
}

// MatMulInternal applies the internal linear layer in place: every element is
// scaled by its diagonal entry minus one and the state sum is added.
func MatMulInternal[E any, PE field.Element[E]](state []E, diagM1 []E) {
	var sum E
	for i := range state {
		PE(&sum).Add(&sum, &state[i])
	}
	if len(state) == 3 {
		// diag(2, 2, 3): no multiplications needed
		PE(&state[2]).Double(&state[2])
	} else {
		for i := range state {
			PE(&state[i]).Mul(&state[i], &diagM1[i])
		}
	}
	for i := range state {
		PE(&state[i]).Add(&state[i], &sum)
	}
}
