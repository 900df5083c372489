package board

import (
	"fmt"

	"go_rules/internal/errors"
)

// Position is an immutable board snapshot plus the point, if any, that the
// player to move may not retake because of ko.
type Position struct {
	geo   *Geometry
	board Board
	ko    Point
	hasKo bool
}

func (g *Geometry) InitialState() Position {
	return Position{geo: g, board: g.EmptyBoard()}
}

// NewPosition wraps an existing board, e.g. one restored from storage. The
// board is copied.
func (g *Geometry) NewPosition(b Board, ko *Point) (Position, error) {
	if len(b) != g.nn {
		return Position{}, fmt.Errorf("%w: want %d points, got %d", errors.ErrMalformedBoard, g.nn, len(b))
	}
	for i, c := range b {
		if c != Empty && !c.IsStone() {
			return Position{}, fmt.Errorf("%w: invalid color at %d", errors.ErrMalformedBoard, i)
		}
	}
	pos := Position{geo: g, board: b.Clone()}
	if ko != nil {
		if !g.Contains(*ko) || b[*ko] != Empty {
			return Position{}, fmt.Errorf("%w: ko point %d is not an empty point", errors.ErrMalformedBoard, *ko)
		}
		pos.ko, pos.hasKo = *ko, true
	}
	return pos, nil
}

func (p Position) Geometry() *Geometry { return p.geo }

// Board returns a copy of the position's board.
func (p Position) Board() Board { return p.board.Clone() }

func (p Position) At(pt Point) Color { return p.board[pt] }

func (p Position) Ko() (Point, bool) { return p.ko, p.hasKo }

// Play places a stone of color c at pt and resolves captures, opponent
// chains first. A chain of the mover left without liberties is removed
// rather than rejected.
func (p Position) Play(pt Point, c Color) (Position, error) {
	if !p.geo.Contains(pt) {
		return Position{}, newIllegalMove(pt, ReasonOffBoard)
	}
	if !c.IsStone() {
		return Position{}, newIllegalMove(pt, ReasonBadColor)
	}
	if p.hasKo && pt == p.ko {
		return Position{}, newIllegalMove(pt, ReasonKo)
	}
	if p.board[pt] != Empty {
		return Position{}, newIllegalMove(pt, ReasonOccupied)
	}

	possibleKoColor, koish := p.geo.IsKoish(p.board, pt)
	next := p.board.Clone()
	next[pt] = c

	opp := c.Opponent()
	var oppStones []Point
	myStones := []Point{pt}
	for _, n := range p.geo.neighbors[pt] {
		switch next[n] {
		case c:
			myStones = append(myStones, n)
		case opp:
			oppStones = append(oppStones, n)
		}
	}

	var oppCaptured []Point
	for _, s := range oppStones {
		// already removed together with an earlier neighbor
		if next[s] != opp {
			continue
		}
		oppCaptured = append(oppCaptured, p.geo.captureInPlace(next, s)...)
	}
	for _, s := range myStones {
		if next[s] != c {
			continue
		}
		p.geo.captureInPlace(next, s)
	}

	res := Position{geo: p.geo, board: next}
	if len(oppCaptured) == 1 && koish && possibleKoColor == opp {
		res.ko, res.hasKo = oppCaptured[0], true
	}
	return res, nil
}

// IsKoish reports the color surrounding p when p is empty and every
// neighbor is a stone of that one color.
func (g *Geometry) IsKoish(b Board, p Point) (Color, bool) {
	if b[p] != Empty {
		return Empty, false
	}
	var color Color
	for i, n := range g.neighbors[p] {
		if i == 0 {
			color = b[n]
		} else if b[n] != color {
			return Empty, false
		}
	}
	if !color.IsStone() {
		return Empty, false
	}
	return color, true
}

// LegalMoves marks every point where Play would not fail.
func (p Position) LegalMoves() []bool {
	legal := make([]bool, len(p.board))
	for i, c := range p.board {
		legal[i] = c == Empty
	}
	if p.hasKo {
		legal[p.ko] = false
	}
	return legal
}

func (p Position) String() string {
	return p.geo.Render(p.board)
}

// RenderAttempt draws the board with '#' on the point of a rejected move.
func (p Position) RenderAttempt(pt Point) string {
	if !p.geo.Contains(pt) {
		return p.String()
	}
	out := []byte(p.String())
	row, col := p.geo.Unflatten(pt)
	// every row is n symbols, each followed by a space, plus a newline
	out[row*(2*p.geo.n+1)+2*col] = '#'
	return string(out)
}
