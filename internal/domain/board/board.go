package board

import (
	"fmt"
	"strings"

	"go_rules/internal/errors"
)

// Board is a flat row-major grid of N*N colors.
type Board []Color

func (b Board) Clone() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

func (b Board) Count(c Color) int {
	n := 0
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

// Encode returns the compact symbol string of the board, one byte per point.
func (b Board) Encode() string {
	buf := make([]byte, len(b))
	for i, c := range b {
		buf[i] = c.Symbol()
	}
	return string(buf)
}

func (b Board) bulkPlace(c Color, points []Point) {
	for _, p := range points {
		b[p] = c
	}
}

func (g *Geometry) EmptyBoard() Board {
	return make(Board, g.nn)
}

// ParseBoard accepts either the compact form produced by Encode or the
// rendered form with whitespace between symbols and rows.
func (g *Geometry) ParseBoard(s string) (Board, error) {
	compact := strings.Join(strings.Fields(s), "")
	if len(compact) != g.nn {
		return nil, fmt.Errorf("%w: want %d points, got %d", errors.ErrMalformedBoard, g.nn, len(compact))
	}
	b := make(Board, g.nn)
	for i := 0; i < len(compact); i++ {
		c, ok := colorFromSymbol(compact[i])
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol %q at %d", errors.ErrMalformedBoard, compact[i], i)
		}
		b[i] = c
	}
	return b, nil
}

// ParseRows builds a board from one string per row, top row first.
func (g *Geometry) ParseRows(rows []string) (Board, error) {
	if len(rows) != g.n {
		return nil, fmt.Errorf("%w: want %d rows, got %d", errors.ErrMalformedBoard, g.n, len(rows))
	}
	return g.ParseBoard(strings.Join(rows, "\n"))
}

// Render draws the board row by row with a space after every symbol.
func (g *Geometry) Render(b Board) string {
	var sb strings.Builder
	sb.Grow(g.nn*2 + g.n)
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			sb.WriteByte(b[g.Flatten(row, col)].Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rows returns the board as compact strings, one per row.
func (g *Geometry) Rows(b Board) []string {
	enc := b.Encode()
	rows := make([]string, g.n)
	for row := 0; row < g.n; row++ {
		rows[row] = enc[row*g.n : (row+1)*g.n]
	}
	return rows
}
