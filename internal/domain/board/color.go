package board

import (
	"fmt"
	"strings"

	"go_rules/internal/errors"
)

type Color uint8

const (
	Empty Color = iota
	Black
	White
	// neutral marks processed or dame points on scratch boards only.
	neutral
)

func ParseColor(input string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("%w: %q", errors.ErrInvalidColor, input)
}

// Opponent swaps Black and White and leaves any other value unchanged.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

func (c Color) IsStone() bool {
	return c == Black || c == White
}

func (c Color) Symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	case Empty:
		return '.'
	}
	return '?'
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	}
	return "neutral"
}

func colorFromSymbol(b byte) (Color, bool) {
	switch b {
	case '.':
		return Empty, true
	case 'X', 'x', 'B', 'b':
		return Black, true
	case 'O', 'o', 'W', 'w':
		return White, true
	}
	return Empty, false
}
