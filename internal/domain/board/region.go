package board

// Region is a connected same-color area and the distinct points of other
// colors that border it.
type Region struct {
	Chain   []Point
	Reached []Point
}

// FindReached floods from p through points of p's color. An empty start
// floods the empty area, in which case Reached holds the bordering stones.
func (g *Geometry) FindReached(b Board, p Point) Region {
	color := b[p]
	return g.flood(b, p, func(c Color) bool { return c == color })
}

func (g *Geometry) flood(b Board, start Point, member func(Color) bool) Region {
	seen := make([]bool, g.nn)
	seen[start] = true
	region := Region{Chain: []Point{start}}
	frontier := []Point{start}
	for len(frontier) > 0 {
		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, n := range g.neighbors[current] {
			if seen[n] {
				continue
			}
			seen[n] = true
			if member(b[n]) {
				region.Chain = append(region.Chain, n)
				frontier = append(frontier, n)
			} else {
				region.Reached = append(region.Reached, n)
			}
		}
	}
	return region
}

func (r Region) hasLiberty(b Board) bool {
	for _, p := range r.Reached {
		if b[p] == Empty {
			return true
		}
	}
	return false
}

func (r Region) libertyCount(b Board) int {
	n := 0
	for _, p := range r.Reached {
		if b[p] == Empty {
			n++
		}
	}
	return n
}
