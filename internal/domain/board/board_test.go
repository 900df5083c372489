package board

import (
	"errors"
	"slices"
	"testing"

	apperrors "go_rules/internal/errors"
)

func mustGeometry(t *testing.T, n int) *Geometry {
	t.Helper()
	g, err := NewGeometry(n)
	if err != nil {
		t.Fatalf("NewGeometry(%d): %v", n, err)
	}
	return g
}

func mustPosition(t *testing.T, rows ...string) Position {
	t.Helper()
	g := mustGeometry(t, len(rows))
	b, err := g.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	pos, err := g.NewPosition(b, nil)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	return pos
}

func sorted(points []Point) []Point {
	out := slices.Clone(points)
	slices.Sort(out)
	return out
}

func TestNewGeometryRejectsBadSize(t *testing.T) {
	for _, n := range []int{0, -1, 26} {
		if _, err := NewGeometry(n); !errors.Is(err, apperrors.ErrInvalidBoardSize) {
			t.Errorf("NewGeometry(%d): expected ErrInvalidBoardSize, got %v", n, err)
		}
	}
}

func TestNeighbors(t *testing.T) {
	g := mustGeometry(t, 9)
	tests := []struct {
		row, col int
		want     []Point
	}{
		{0, 0, []Point{9, 1}},
		{4, 4, []Point{49, 31, 41, 39}},
		{0, 4, []Point{13, 5, 3}},
		{8, 8, []Point{71, 79}},
	}
	for _, tt := range tests {
		got := g.Neighbors(g.Flatten(tt.row, tt.col))
		if !slices.Equal(got, tt.want) {
			t.Errorf("Neighbors(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	g := mustGeometry(t, 7)
	for p := Point(0); int(p) < g.Area(); p++ {
		row, col := g.Unflatten(p)
		if !g.IsOnBoard(row, col) {
			t.Fatalf("Unflatten(%d) = (%d,%d) is off the board", p, row, col)
		}
		if got := g.Flatten(row, col); got != p {
			t.Fatalf("Flatten(Unflatten(%d)) = %d", p, got)
		}
	}
	if g.IsOnBoard(7, 0) || g.IsOnBoard(0, -1) {
		t.Errorf("IsOnBoard accepted an off-board coordinate")
	}
}

func TestFindReached(t *testing.T) {
	pos := mustPosition(t,
		".....",
		".O...",
		".XX..",
		".....",
		".....",
	)
	g := pos.Geometry()
	first := g.FindReached(pos.board, g.Flatten(2, 1))
	second := g.FindReached(pos.board, g.Flatten(2, 1))

	wantChain := []Point{11, 12}
	wantReached := []Point{6, 7, 10, 13, 16, 17}
	if got := sorted(first.Chain); !slices.Equal(got, wantChain) {
		t.Errorf("chain = %v, want %v", got, wantChain)
	}
	if got := sorted(first.Reached); !slices.Equal(got, wantReached) {
		t.Errorf("reached = %v, want %v", got, wantReached)
	}
	if !slices.Equal(sorted(first.Chain), sorted(second.Chain)) || !slices.Equal(sorted(first.Reached), sorted(second.Reached)) {
		t.Errorf("FindReached is not idempotent")
	}
}

func TestFindReachedEmptyArea(t *testing.T) {
	pos := mustPosition(t,
		"X..",
		"...",
		"...",
	)
	g := pos.Geometry()
	region := g.FindReached(pos.board, 8)
	if len(region.Chain) != 8 {
		t.Errorf("expected 8 empty points, got %v", region.Chain)
	}
	if !slices.Equal(region.Reached, []Point{0}) {
		t.Errorf("expected reached [0], got %v", region.Reached)
	}
}

func TestMaybeCaptureStonesIsPure(t *testing.T) {
	pos := mustPosition(t,
		"OX.",
		"X..",
		"...",
	)
	g := pos.Geometry()
	before := pos.board.Clone()

	next, captured := g.MaybeCaptureStones(pos.board, 0)
	if !slices.Equal(captured, []Point{0}) {
		t.Fatalf("expected [0] captured, got %v", captured)
	}
	if next[0] != Empty {
		t.Errorf("captured stone still on the board")
	}
	if !pos.board.Equal(before) {
		t.Errorf("input board was modified")
	}

	same, captured := g.MaybeCaptureStones(pos.board, 1)
	if captured != nil || !same.Equal(before) {
		t.Errorf("chain with liberties was captured: %v", captured)
	}
}

func TestPlayCaptures(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		row, col int
		captured [][2]int
	}{
		{
			name: "interior",
			rows: []string{
				".....",
				"..X..",
				".XOX.",
				".....",
				".....",
			},
			row: 3, col: 2,
			captured: [][2]int{{2, 2}},
		},
		{
			name: "corner",
			rows: []string{
				"OX...",
				".....",
				".....",
				".....",
				".....",
			},
			row: 1, col: 0,
			captured: [][2]int{{0, 0}},
		},
		{
			name: "edge",
			rows: []string{
				".....",
				".....",
				"X....",
				"OX...",
				".....",
			},
			row: 4, col: 0,
			captured: [][2]int{{3, 0}},
		},
		{
			name: "stone keeps a liberty",
			rows: []string{
				".....",
				"..X..",
				".XO..",
				".....",
				".....",
			},
			row: 3, col: 2,
			captured: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.rows...)
			g := pos.Geometry()
			next, err := pos.Play(g.Flatten(tt.row, tt.col), Black)
			if err != nil {
				t.Fatalf("Play: %v", err)
			}
			if next.At(g.Flatten(tt.row, tt.col)) != Black {
				t.Errorf("placed stone is missing")
			}
			for _, c := range tt.captured {
				if next.At(g.Flatten(c[0], c[1])) != Empty {
					t.Errorf("stone at %v was not captured", c)
				}
			}
			if got, want := next.board.Count(White), pos.board.Count(White)-len(tt.captured); got != want {
				t.Errorf("white stones = %d, want %d", got, want)
			}
		})
	}
}

func TestPlayCapturesChainOnEdge(t *testing.T) {
	pos := mustPosition(t,
		"XOO..",
		".XX..",
		".....",
		".....",
		".....",
	)
	next, err := pos.Play(3, Black)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if next.At(1) != Empty || next.At(2) != Empty {
		t.Errorf("two stone chain was not captured:\n%v", next)
	}
	if _, ok := next.Ko(); ok {
		t.Errorf("capturing two stones must not set ko")
	}
}

func TestPlayRejectsOccupied(t *testing.T) {
	pos := mustPosition(t,
		"X..",
		"...",
		"...",
	)
	_, err := pos.Play(0, White)
	if !errors.Is(err, apperrors.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Reason != ReasonOccupied || illegal.Point != 0 {
		t.Errorf("unexpected error details: %#v", err)
	}
}

func TestPlayRejectsOffBoardAndBadColor(t *testing.T) {
	pos := mustGeometry(t, 3).InitialState()
	if _, err := pos.Play(9, Black); !errors.Is(err, apperrors.ErrIllegalMove) {
		t.Errorf("off board: expected ErrIllegalMove, got %v", err)
	}
	if _, err := pos.Play(-1, Black); !errors.Is(err, apperrors.ErrIllegalMove) {
		t.Errorf("negative point: expected ErrIllegalMove, got %v", err)
	}
	if _, err := pos.Play(0, Empty); !errors.Is(err, apperrors.ErrIllegalMove) {
		t.Errorf("empty color: expected ErrIllegalMove, got %v", err)
	}
}

func koPosition(t *testing.T) Position {
	return mustPosition(t,
		".XO..",
		"XO.O.",
		".XO..",
		".....",
		".....",
	)
}

func TestKo(t *testing.T) {
	pos := koPosition(t)
	g := pos.Geometry()
	take := g.Flatten(1, 2)
	koPoint := g.Flatten(1, 1)

	afterTake, err := pos.Play(take, Black)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	ko, ok := afterTake.Ko()
	if !ok || ko != koPoint {
		t.Fatalf("expected ko at %d, got %d (%v)", koPoint, ko, ok)
	}
	if afterTake.LegalMoves()[koPoint] {
		t.Errorf("ko point is reported as legal")
	}

	_, err = afterTake.Play(koPoint, White)
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Reason != ReasonKo {
		t.Fatalf("expected ko violation, got %v", err)
	}

	elsewhere, err := afterTake.Play(g.Flatten(4, 4), White)
	if err != nil {
		t.Fatalf("Play elsewhere: %v", err)
	}
	if _, ok := elsewhere.Ko(); ok {
		t.Errorf("ko must be cleared by a move elsewhere")
	}
	retake, err := elsewhere.Play(koPoint, White)
	if err != nil {
		t.Fatalf("retake after ko threat: %v", err)
	}
	if retake.At(take) != Empty {
		t.Errorf("retake did not capture")
	}
	if ko, ok := retake.Ko(); !ok || ko != take {
		t.Errorf("expected new ko at %d, got %d (%v)", take, ko, ok)
	}
}

func TestKoInCorner(t *testing.T) {
	pos := mustPosition(t,
		".XO..",
		"XO...",
		".....",
		".....",
		".....",
	)
	next, err := pos.Play(0, White)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if next.At(0) != White || next.At(1) != Empty {
		t.Fatalf("opponent capture must be resolved before self capture:\n%v", next)
	}
	if ko, ok := next.Ko(); !ok || ko != 1 {
		t.Errorf("expected ko at 1, got %d (%v)", ko, ok)
	}
}

func TestSuicideRemovesPlacedStone(t *testing.T) {
	pos := mustPosition(t,
		".X...",
		"X....",
		".....",
		".....",
		".....",
	)
	next, err := pos.Play(0, White)
	if err != nil {
		t.Fatalf("suicide must not be rejected: %v", err)
	}
	if !next.board.Equal(pos.board) {
		t.Errorf("expected board unchanged after suicide, got\n%v", next)
	}
	if _, ok := next.Ko(); ok {
		t.Errorf("suicide must not set ko")
	}
}

func TestSuicideOfChain(t *testing.T) {
	pos := mustPosition(t,
		"O.X..",
		"XX...",
		".....",
		".....",
		".....",
	)
	next, err := pos.Play(1, White)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if next.At(0) != Empty || next.At(1) != Empty {
		t.Errorf("whole white chain should be removed:\n%v", next)
	}
}

func TestPlayDoesNotMutateInput(t *testing.T) {
	pos := koPosition(t)
	before := pos.Board()
	if _, err := pos.Play(7, Black); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !pos.board.Equal(before) {
		t.Errorf("Play modified its receiver")
	}
	b := pos.Board()
	b[4] = White
	if pos.At(4) == White {
		t.Errorf("Board() exposes internal storage")
	}
}

func TestIsKoish(t *testing.T) {
	pos := mustPosition(t,
		".X.",
		"X.X",
		".O.",
	)
	g := pos.Geometry()
	if c, ok := g.IsKoish(pos.board, 0); !ok || c != Black {
		t.Errorf("corner surrounded by black: got %v %v", c, ok)
	}
	if _, ok := g.IsKoish(pos.board, 4); ok {
		t.Errorf("mixed neighbors reported as koish")
	}
	if _, ok := g.IsKoish(pos.board, 1); ok {
		t.Errorf("occupied point reported as koish")
	}
}

func TestScore(t *testing.T) {
	g9 := mustGeometry(t, 9)
	oneStone, err := g9.InitialState().Play(g9.Flatten(4, 4), Black)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"empty board", g9.InitialState(), -1},
		{"one black stone", oneStone, 81 - 0 - 1},
		{"split board", mustPosition(t, "..XO.", "..XO.", "..XO.", "..XO.", "..XO."), 15 - 10 - 1},
		{"dame column", mustPosition(t, "XX..O", "XX..O", "XX..O", "XX..O", "XX..O"), 10 - 5 - 1},
		{"white only", mustPosition(t, "...", ".O.", "..."), 0 - 9 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTerritory(t *testing.T) {
	pos := mustPosition(t, "X.O", "X.O", "X.O")
	got := pos.Territory()
	want := Board{Black, Empty, White, Black, Empty, White, Black, Empty, White}
	if !got.Equal(want) {
		t.Errorf("Territory() = %v, want %v", got, want)
	}
	if pos.At(1) != Empty {
		t.Errorf("Territory modified the position")
	}
}

func TestLibertiesOfLoneStone(t *testing.T) {
	g := mustGeometry(t, 9)
	tests := []struct {
		name     string
		row, col int
		want     int
	}{
		{"interior", 4, 4, 4},
		{"edge", 0, 4, 3},
		{"corner", 8, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := g.Flatten(tt.row, tt.col)
			pos, err := g.InitialState().Play(p, White)
			if err != nil {
				t.Fatalf("Play: %v", err)
			}
			libs := pos.Liberties()
			if libs[p] != tt.want {
				t.Errorf("liberties = %d, want %d", libs[p], tt.want)
			}
			if libs[p] != len(g.Neighbors(p)) {
				t.Errorf("liberties should equal neighbor count")
			}
			for i, l := range libs {
				if Point(i) != p && l != 0 {
					t.Errorf("empty point %d has liberty value %d", i, l)
				}
			}
		})
	}
}

func TestLibertiesOfChains(t *testing.T) {
	pos := mustPosition(t,
		"XX...",
		".....",
		".OO..",
		"..X..",
		".....",
	)
	libs := pos.Liberties()
	want := map[Point]int{0: 3, 1: 3, 11: 5, 12: 5, 17: 3}
	for p, w := range want {
		if libs[p] != w {
			t.Errorf("liberties at %d = %d, want %d", p, libs[p], w)
		}
	}
}

func TestFindKoFromBoards(t *testing.T) {
	pos := koPosition(t)
	g := pos.Geometry()
	next, err := pos.Play(g.Flatten(1, 2), Black)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	want, _ := next.Ko()
	got, ok := g.FindKoFromBoards(pos.Board(), next.Board())
	if !ok || got != want {
		t.Errorf("FindKoFromBoards = %d (%v), want %d", got, ok, want)
	}

	quiet, err := pos.Play(g.Flatten(4, 4), Black)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, ok := g.FindKoFromBoards(pos.Board(), quiet.Board()); ok {
		t.Errorf("a move without capture must not produce ko")
	}
	if _, ok := g.FindKoFromBoards(pos.Board(), pos.Board()); ok {
		t.Errorf("identical boards must not produce ko")
	}
}

func TestFindKoFromBoardsAtFirstPoint(t *testing.T) {
	pos := mustPosition(t,
		".XO..",
		"XO...",
		".....",
		".....",
		".....",
	)
	next, err := pos.Play(0, White)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	got, ok := pos.Geometry().FindKoFromBoards(pos.Board(), next.Board())
	if !ok || got != 1 {
		t.Errorf("expected ko at 1, got %d (%v)", got, ok)
	}
}

func TestLegalMoves(t *testing.T) {
	pos := mustPosition(t, "X..", ".O.", "...")
	legal := pos.LegalMoves()
	for i, c := range pos.board {
		if legal[i] != (c == Empty) {
			t.Errorf("legal[%d] = %v for %v", i, legal[i], c)
		}
	}
}

func TestRender(t *testing.T) {
	pos := mustPosition(t, "X..", ".O.", "...")
	want := "X . . \n. O . \n. . . \n"
	if got := pos.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := pos.RenderAttempt(5), "X . . \n. O # \n. . . \n"; got != want {
		t.Errorf("RenderAttempt() = %q, want %q", got, want)
	}
	parsed, err := pos.Geometry().ParseBoard(pos.String())
	if err != nil || !parsed.Equal(pos.board) {
		t.Errorf("ParseBoard(String()) = %v, %v", parsed, err)
	}
}

func TestParseBoardErrors(t *testing.T) {
	g := mustGeometry(t, 3)
	for _, s := range []string{"", "....", "..........", "...Z....."} {
		if _, err := g.ParseBoard(s); !errors.Is(err, apperrors.ErrMalformedBoard) {
			t.Errorf("ParseBoard(%q): expected ErrMalformedBoard, got %v", s, err)
		}
	}
}

func TestNewPositionValidatesKo(t *testing.T) {
	g := mustGeometry(t, 3)
	b, _ := g.ParseBoard("X........")
	occupied := Point(0)
	if _, err := g.NewPosition(b, &occupied); !errors.Is(err, apperrors.ErrMalformedBoard) {
		t.Errorf("ko on a stone: expected ErrMalformedBoard, got %v", err)
	}
	free := Point(4)
	pos, err := g.NewPosition(b, &free)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if ko, ok := pos.Ko(); !ok || ko != free {
		t.Errorf("ko = %d (%v), want %d", ko, ok, free)
	}
}

func TestVertex(t *testing.T) {
	g := mustGeometry(t, 19)
	tests := []struct {
		vertex   string
		row, col int
	}{
		{"A1", 18, 0},
		{"D4", 15, 3},
		{"J10", 9, 8},
		{"t19", 0, 18},
	}
	for _, tt := range tests {
		p, err := g.ParseVertex(tt.vertex)
		if err != nil {
			t.Errorf("ParseVertex(%q): %v", tt.vertex, err)
			continue
		}
		if want := g.Flatten(tt.row, tt.col); p != want {
			t.Errorf("ParseVertex(%q) = %d, want %d", tt.vertex, p, want)
		}
	}
	if got := g.FormatVertex(g.Flatten(9, 8)); got != "J10" {
		t.Errorf("FormatVertex = %q, want J10", got)
	}
	for _, bad := range []string{"", "I5", "A0", "A20", "Z1", "AA"} {
		if _, err := g.ParseVertex(bad); !errors.Is(err, apperrors.ErrInvalidVertex) {
			t.Errorf("ParseVertex(%q): expected ErrInvalidVertex, got %v", bad, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]Color{"b": Black, "Black": Black, "W": White, "white": White} {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Errorf("ParseColor(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseColor("red"); !errors.Is(err, apperrors.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	pos := koPosition(t)
	withKo, err := pos.Play(7, Black)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	b := withKo.Board()
	noKo, err := withKo.Geometry().NewPosition(b, nil)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if withKo.Fingerprint() == noKo.Fingerprint() {
		t.Errorf("ko must change the fingerprint")
	}
	again, _ := withKo.Geometry().NewPosition(b, nil)
	if again.Fingerprint() != noKo.Fingerprint() {
		t.Errorf("equal positions must share a fingerprint")
	}
}
