package model

import "fmt"

// ParsePosition converts algebraic notation such as "e2" to a board position.
// Rank 8 is row 0 and file a is column 0.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	return Position{X: int(s[0] - 'a'), Y: int('8' - s[1])}, nil
}

// MustParsePosition is ParsePosition for fixed literals. It panics on bad input.
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}
