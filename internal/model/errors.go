package model

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is matched by every rejected move.
	ErrIllegalMove = errors.New("illegal move")
	// ErrBadNotation is returned for square text that is not a-h followed by 1-8.
	ErrBadNotation = errors.New("invalid square notation")
)

// Reason says which rule rejected a move.
type Reason string

const (
	ReasonOutOfBounds  Reason = "out_of_bounds"
	ReasonEmptySquare  Reason = "empty_square"
	ReasonWrongTurn    Reason = "wrong_turn"
	ReasonGameOver     Reason = "game_over"
	ReasonFriendlyFire Reason = "friendly_fire"
	ReasonIllegalShape Reason = "illegal_shape"
	ReasonPathBlocked  Reason = "path_blocked"
)

type IllegalMoveError struct {
	From   Position
	To     Position
	Reason Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s-%s: %s", e.From, e.To, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// ReasonOf extracts the rejection reason from err, or "" if err is not an
// illegal move.
func ReasonOf(err error) Reason {
	var ime *IllegalMoveError
	if errors.As(err, &ime) {
		return ime.Reason
	}
	return ""
}
