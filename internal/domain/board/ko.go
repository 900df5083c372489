package board

// FindKoFromBoards infers the ko point created by the single move that
// turned before into after. It reports false when no stone was placed or
// when the move did not capture exactly one stone from a koish point.
func (g *Geometry) FindKoFromBoards(before, after Board) (Point, bool) {
	if len(before) != g.nn || len(after) != g.nn {
		return 0, false
	}
	move, ok := findMove(before, after)
	if !ok {
		return 0, false
	}
	opp := after[move].Opponent()
	if koColor, koish := g.IsKoish(before, move); !koish || koColor != opp {
		return 0, false
	}
	captured := Point(-1)
	count := 0
	for i := range before {
		if before[i] == opp && after[i] == Empty {
			captured = Point(i)
			count++
		}
	}
	if count != 1 {
		return 0, false
	}
	return captured, true
}

func findMove(before, after Board) (Point, bool) {
	for i := range before {
		if before[i] == Empty && after[i].IsStone() {
			return Point(i), true
		}
	}
	return 0, false
}
