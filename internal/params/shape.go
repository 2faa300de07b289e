// Package params holds the plumbing shared by the parameter derivations of
// all permutations: the round shape, its validation and the deterministic
// constant sampler.
package params

import (
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	"github.com/vocdoni/zkhash/internal/sbox"
)

// Shape is the round structure of a permutation instance. GMiMC has no full
// rounds: every one of its rounds applies a single S-box and is counted in
// PartialRounds.
type Shape struct {
	Width         int
	Degree        sbox.Degree
	FullRounds    int
	PartialRounds int
}

// Rounds is the total number of rounds.
func (s Shape) Rounds() int { return s.FullRounds + s.PartialRounds }

// HalfFull is the number of full rounds on each side of the partial rounds.
func (s Shape) HalfFull() int { return s.FullRounds / 2 }

// Log returns the debug logger used while deriving parameters for primitive.
func (s Shape) Log(primitive, fieldName string) zerolog.Logger {
	return logger.Logger().With().
		Str("primitive", primitive).
		Str("field", fieldName).
		Int("t", s.Width).
		Uint64("d", uint64(s.Degree)).
		Int("rf", s.FullRounds).
		Int("rp", s.PartialRounds).
		Logger()
}
