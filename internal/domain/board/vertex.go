package board

import (
	"fmt"
	"strconv"
	"strings"

	"go_rules/internal/errors"
)

// Column letters of a GTP vertex; there is no I.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// ParseVertex converts a GTP vertex such as "D4" to a point. Rows count
// from the bottom of the board, so "A1" is the bottom-left corner.
func (g *Geometry) ParseVertex(vertex string) (Point, error) {
	v := strings.ToUpper(strings.TrimSpace(vertex))
	if len(v) < 2 {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidVertex, vertex)
	}
	col := strings.IndexByte(columnLetters, v[0])
	if col < 0 {
		return 0, fmt.Errorf("%w: bad column in %q", errors.ErrInvalidVertex, vertex)
	}
	rank, err := strconv.Atoi(v[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: bad row in %q", errors.ErrInvalidVertex, vertex)
	}
	row := g.n - rank
	if !g.IsOnBoard(row, col) {
		return 0, fmt.Errorf("%w: %q is off a %dx%d board", errors.ErrInvalidVertex, vertex, g.n, g.n)
	}
	return g.Flatten(row, col), nil
}

func (g *Geometry) FormatVertex(p Point) string {
	row, col := g.Unflatten(p)
	return fmt.Sprintf("%c%d", columnLetters[col], g.n-row)
}
