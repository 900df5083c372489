package board

// Komi is added to White's side of the area count.
const Komi = 1

// Territory fills every empty area of a scratch copy with the color of the
// stones that surround it. Areas bordered by both colors, and the whole
// board when it has no stones, are left as Empty (dame).
func (p Position) Territory() Board {
	scratch := p.fillTerritory()
	for i, c := range scratch {
		if c == neutral {
			scratch[i] = Empty
		}
	}
	return scratch
}

func (p Position) fillTerritory() Board {
	scratch := p.board.Clone()
	for i := 0; i < len(scratch); i++ {
		if scratch[i] != Empty {
			continue
		}
		region := p.geo.FindReached(scratch, Point(i))
		if len(region.Reached) == 0 {
			// no stones at all: Score is then -Komi, not 0
			return scratch
		}
		owner := scratch[region.Reached[0]]
		for _, r := range region.Reached[1:] {
			if scratch[r] != owner {
				owner = neutral
				break
			}
		}
		scratch.bulkPlace(owner, region.Chain)
	}
	return scratch
}

// Score is the area score, Black minus White minus Komi.
func (p Position) Score() int {
	scratch := p.fillTerritory()
	return scratch.Count(Black) - scratch.Count(White) - Komi
}
