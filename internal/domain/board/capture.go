package board

// MaybeCaptureStones removes the chain at p if it has no liberties. The
// input board is never modified; when nothing is captured it is returned
// as is.
func (g *Geometry) MaybeCaptureStones(b Board, p Point) (Board, []Point) {
	region := g.FindReached(b, p)
	if region.hasLiberty(b) {
		return b, nil
	}
	next := b.Clone()
	next.bulkPlace(Empty, region.Chain)
	return next, region.Chain
}

// captureInPlace is MaybeCaptureStones on a private working board.
func (g *Geometry) captureInPlace(b Board, p Point) []Point {
	region := g.FindReached(b, p)
	if region.hasLiberty(b) {
		return nil
	}
	b.bulkPlace(Empty, region.Chain)
	return region.Chain
}
