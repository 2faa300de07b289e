package params

import "fmt"

// Validate checks the shape shared by all round-based permutations. prefix
// names the calling package in error messages.
func Validate(prefix string, s Shape) error {
	if s.Width < 1 {
		return fmt.Errorf("%s: state width must be positive, got %d", prefix, s.Width)
	}
	if err := s.Degree.Validate(); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	if s.FullRounds < 0 || s.PartialRounds < 0 {
		return fmt.Errorf("%s: negative round count (rf=%d, rp=%d)", prefix, s.FullRounds, s.PartialRounds)
	}
	if s.FullRounds%2 != 0 {
		return fmt.Errorf("%s: full rounds must be even, got %d", prefix, s.FullRounds)
	}
	return nil
}

// ValidatePartial additionally requires at least one partial round, which the
// sparse-matrix schedules rely on.
func ValidatePartial(prefix string, s Shape) error {
	if err := Validate(prefix, s); err != nil {
		return err
	}
	if s.PartialRounds < 1 {
		return fmt.Errorf("%s: at least one partial round is required", prefix)
	}
	return nil
}
