// Package board implements the rules of Go on a square board: positions,
// captures, ko, liberties and area scoring.
package board

import (
	"fmt"

	"go_rules/internal/errors"
)

// MaxSize is the largest board a GTP vertex can address.
const MaxSize = 25

// Point is a flattened board coordinate, row*N + col.
type Point int

// Geometry holds everything derived from the board size. It is immutable,
// so positions of different sizes can be used side by side.
type Geometry struct {
	n         int
	nn        int
	neighbors [][]Point
}

// NewGeometry builds the geometry of an n x n board, 1 <= n <= MaxSize.
func NewGeometry(n int) (*Geometry, error) {
	if n < 1 || n > MaxSize {
		return nil, fmt.Errorf("%w: %d", errors.ErrInvalidBoardSize, n)
	}
	g := &Geometry{n: n, nn: n * n}
	g.neighbors = make([][]Point, g.nn)
	for p := 0; p < g.nn; p++ {
		g.neighbors[p] = g.validNeighbors(Point(p))
	}
	return g, nil
}

func (g *Geometry) validNeighbors(p Point) []Point {
	row, col := g.Unflatten(p)
	candidates := [4][2]int{{row + 1, col}, {row - 1, col}, {row, col + 1}, {row, col - 1}}
	res := make([]Point, 0, 4)
	for _, c := range candidates {
		if g.IsOnBoard(c[0], c[1]) {
			res = append(res, g.Flatten(c[0], c[1]))
		}
	}
	return res
}

// Size is the board's side length.
func (g *Geometry) Size() int { return g.n }

// Area is the number of points on the board.
func (g *Geometry) Area() int { return g.nn }

// Flatten turns (row, col) into a Point. It does not check bounds.
func (g *Geometry) Flatten(row, col int) Point {
	return Point(g.n*row + col)
}

// Unflatten is the inverse of Flatten.
func (g *Geometry) Unflatten(p Point) (row, col int) {
	return int(p) / g.n, int(p) % g.n
}

// IsOnBoard reports whether (row, col) lies on the board.
func (g *Geometry) IsOnBoard(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

// Contains reports whether p is a point of this board.
func (g *Geometry) Contains(p Point) bool {
	return p >= 0 && int(p) < g.nn
}

// Neighbors returns the in-bounds orthogonal neighbors of p. The slice is
// shared and must not be modified.
func (g *Geometry) Neighbors(p Point) []Point {
	return g.neighbors[p]
}
