package errors

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrMalformedBoard   = errors.New("malformed board")
	ErrInvalidVertex    = errors.New("invalid vertex")
	ErrInvalidColor     = errors.New("invalid color")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game is already finished")
	ErrInternal         = errors.New("internal error")
)
