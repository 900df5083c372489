package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/bszcz/mt19937_64"
	"golang.org/x/sync/errgroup"

	"go_rules/internal/domain/board"
)

type gameResult struct {
	Index  int
	Seed   int64
	Moves  int
	Passes int
	Final  board.Position
}

func (r gameResult) Title() string {
	return fmt.Sprintf("game %d (seed %d): %d moves, score %+d", r.Index+1, r.Seed, r.Moves, r.Final.Score())
}

type playoutConfig struct {
	Size     int
	Games    int
	MaxMoves int
	Seed     int64
}

func newRand(seed int64) *rand.Rand {
	src := mt19937_64.New()
	src.Seed(seed)
	return rand.New(src)
}

// playRandomGame stops after maxMoves plies or two consecutive passes.
func playRandomGame(ctx context.Context, geo *board.Geometry, r *rand.Rand, maxMoves int) (board.Position, int, int, error) {
	pos := geo.InitialState()
	color := board.Black
	moves, passes, consecutive := 0, 0, 0

	for ply := 0; ply < maxMoves && consecutive < 2; ply++ {
		if err := ctx.Err(); err != nil {
			return pos, moves, passes, err
		}

		candidates := make([]board.Point, 0, geo.Area())
		for p, ok := range pos.LegalMoves() {
			if ok {
				candidates = append(candidates, board.Point(p))
			}
		}

		if len(candidates) == 0 {
			passes++
			consecutive++
			color = color.Opponent()
			continue
		}

		next, err := pos.Play(candidates[r.Intn(len(candidates))], color)
		if err != nil {
			return pos, moves, passes, fmt.Errorf("ply %d: %w", ply, err)
		}
		pos = next
		moves++
		consecutive = 0
		color = color.Opponent()
	}

	return pos, moves, passes, nil
}

func runPlayouts(ctx context.Context, cfg playoutConfig) ([]gameResult, error) {
	geo, err := board.NewGeometry(cfg.Size)
	if err != nil {
		return nil, err
	}

	results := make([]gameResult, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			seed := cfg.Seed + int64(i)
			final, moves, passes, err := playRandomGame(ctx, geo, newRand(seed), cfg.MaxMoves)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = gameResult{Index: i, Seed: seed, Moves: moves, Passes: passes, Final: final}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
