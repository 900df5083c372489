package board

import (
	"fmt"

	"go_rules/internal/errors"
)

type Reason string

const (
	ReasonOccupied Reason = "point is occupied"
	ReasonKo       Reason = "point is forbidden by ko"
	ReasonOffBoard Reason = "point is off the board"
	ReasonBadColor Reason = "color is not a stone"
)

// IllegalMoveError is returned by Play. It matches errors.ErrIllegalMove.
type IllegalMoveError struct {
	Point  Point
	Reason Reason
}

func newIllegalMove(p Point, r Reason) error {
	return &IllegalMoveError{Point: p, Reason: r}
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("%v at %d: %s", errors.ErrIllegalMove, e.Point, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return errors.ErrIllegalMove
}
