package board

// Liberties returns, for every stone, the liberty count of its chain.
// Empty points are 0.
func (p Position) Liberties() []int {
	scratch := p.board.Clone()
	libs := make([]int, len(scratch))
	for _, color := range [2]Color{White, Black} {
		for i := range scratch {
			if scratch[i] != color {
				continue
			}
			region := p.geo.FindReached(scratch, Point(i))
			n := region.libertyCount(scratch)
			for _, s := range region.Chain {
				libs[s] = n
			}
			scratch.bulkPlace(neutral, region.Chain)
		}
	}
	return libs
}
