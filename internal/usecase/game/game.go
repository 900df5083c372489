package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go_rules/internal/domain/board"
	"go_rules/internal/domain/game"
	apperrors "go_rules/internal/errors"
)

type GameStore interface {
	PutGame(ctx context.Context, gameData game.Game) error
	GetGame(ctx context.Context, gameID string) (game.Game, error)
	UpdateGame(ctx context.Context, gameData game.Game) error
	GetCachedScore(ctx context.Context, fingerprint uint64) (int, bool)
	CacheScore(ctx context.Context, fingerprint uint64, score int)
}

type GameUseCase struct {
	store       GameStore
	log         *zap.SugaredLogger
	defaultSize int
	now         func() time.Time

	// serializes read-modify-write of a single game
	locks *keyedLock
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger, defaultSize int) *GameUseCase {
	return &GameUseCase{
		store:       store,
		log:         log,
		defaultSize: defaultSize,
		now:         time.Now,
		locks:       newKeyedLock(),
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.GameState, error) {
	size := req.BoardSize
	if size == 0 {
		size = g.defaultSize
	}
	geo, err := board.NewGeometry(size)
	if err != nil {
		return game.GameState{}, err
	}

	now := g.now()
	newGame := game.Game{
		GameID:    uuid.New().String(),
		BoardSize: size,
		Board:     geo.EmptyBoard().Encode(),
		Status:    game.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = g.store.PutGame(ctx, newGame); err != nil {
		return game.GameState{}, err
	}

	g.log.Infof("new %dx%d game created with id %s", size, size, newGame.GameID)
	return stateOf(newGame, geo.InitialState(), nil), nil
}

func (g *GameUseCase) GetGame(ctx context.Context, gameID string) (game.GameState, error) {
	stored, pos, err := g.load(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}
	return stateOf(stored, pos, nil), nil
}

func (g *GameUseCase) PlayMove(ctx context.Context, gameID string, move game.Move) (game.GameState, error) {
	unlock := g.locks.lock(gameID)
	defer unlock()

	stored, pos, err := g.load(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}
	if stored.Status == game.StatusFinished {
		return game.GameState{}, fmt.Errorf("%w: %s", apperrors.ErrGameFinished, gameID)
	}

	color, err := board.ParseColor(move.Color)
	if err != nil {
		return game.GameState{}, err
	}
	geo := pos.Geometry()
	pt, err := geo.ParseVertex(move.Coordinates)
	if err != nil {
		return game.GameState{}, err
	}

	next, err := pos.Play(pt, color)
	if err != nil {
		g.log.Debugf("rejected %s %s in game %s: %v\n%s", color, move.Coordinates, gameID, err, pos.RenderAttempt(pt))
		return game.GameState{}, err
	}

	stored.PrevBoard = stored.Board
	stored.Board = next.Board().Encode()
	stored.UpdatedAt = g.now()
	if err = g.store.UpdateGame(ctx, stored); err != nil {
		return game.GameState{}, err
	}

	played := game.Move{Color: color.String(), Coordinates: geo.FormatVertex(pt)}
	return stateOf(stored, next, &played), nil
}

func (g *GameUseCase) Score(ctx context.Context, gameID string) (game.ScoreResponse, error) {
	_, pos, err := g.load(ctx, gameID)
	if err != nil {
		return game.ScoreResponse{}, err
	}
	return game.ScoreResponse{GameID: gameID, Score: g.cachedScore(ctx, pos), Komi: board.Komi}, nil
}

func (g *GameUseCase) cachedScore(ctx context.Context, pos board.Position) int {
	fp := pos.Fingerprint()
	if score, ok := g.store.GetCachedScore(ctx, fp); ok {
		return score
	}
	score := pos.Score()
	g.store.CacheScore(ctx, fp, score)
	return score
}

func (g *GameUseCase) Liberties(ctx context.Context, gameID string) (game.LibertiesResponse, error) {
	_, pos, err := g.load(ctx, gameID)
	if err != nil {
		return game.LibertiesResponse{}, err
	}
	return game.LibertiesResponse{
		GameID:    gameID,
		Liberties: toGrid(pos.Liberties(), pos.Geometry().Size()),
	}, nil
}

func (g *GameUseCase) LegalMoves(ctx context.Context, gameID string) (game.LegalMovesResponse, error) {
	_, pos, err := g.load(ctx, gameID)
	if err != nil {
		return game.LegalMovesResponse{}, err
	}
	return game.LegalMovesResponse{
		GameID: gameID,
		Legal:  toGrid(pos.LegalMoves(), pos.Geometry().Size()),
	}, nil
}

func (g *GameUseCase) Render(ctx context.Context, gameID string) (string, error) {
	_, pos, err := g.load(ctx, gameID)
	if err != nil {
		return "", err
	}
	return pos.String(), nil
}

// FinishGame stores the final area score; the game accepts no more moves.
func (g *GameUseCase) FinishGame(ctx context.Context, gameID string) (game.GameState, error) {
	unlock := g.locks.lock(gameID)
	defer unlock()

	stored, pos, err := g.load(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}
	if stored.Status == game.StatusFinished {
		return stateOf(stored, pos, nil), nil
	}

	score := g.cachedScore(ctx, pos)
	stored.Status = game.StatusFinished
	stored.Score = &score
	stored.UpdatedAt = g.now()
	if err = g.store.UpdateGame(ctx, stored); err != nil {
		return game.GameState{}, err
	}

	g.log.Infof("game %s finished with score %d", gameID, score)
	return stateOf(stored, pos, nil), nil
}

// Analyze scores a position sent by the client without storing it.
func (g *GameUseCase) Analyze(req game.AnalyzeRequest) (game.AnalyzeResponse, error) {
	geo, err := board.NewGeometry(req.BoardSize)
	if err != nil {
		return game.AnalyzeResponse{}, err
	}
	b, err := geo.ParseRows(req.Rows)
	if err != nil {
		return game.AnalyzeResponse{}, err
	}
	var ko *board.Point
	if req.Ko != "" {
		pt, err := geo.ParseVertex(req.Ko)
		if err != nil {
			return game.AnalyzeResponse{}, err
		}
		ko = &pt
	}
	pos, err := geo.NewPosition(b, ko)
	if err != nil {
		return game.AnalyzeResponse{}, err
	}
	return game.AnalyzeResponse{
		Score:     pos.Score(),
		Territory: geo.Rows(pos.Territory()),
		Liberties: toGrid(pos.Liberties(), geo.Size()),
		Legal:     toGrid(pos.LegalMoves(), geo.Size()),
	}, nil
}

// KoFromBoards reports the ko point created by the move between two boards.
func (g *GameUseCase) KoFromBoards(req game.KoRequest) (game.KoResponse, error) {
	geo, err := board.NewGeometry(req.BoardSize)
	if err != nil {
		return game.KoResponse{}, err
	}
	before, err := geo.ParseRows(req.Before)
	if err != nil {
		return game.KoResponse{}, fmt.Errorf("before: %w", err)
	}
	after, err := geo.ParseRows(req.After)
	if err != nil {
		return game.KoResponse{}, fmt.Errorf("after: %w", err)
	}
	if ko, ok := geo.FindKoFromBoards(before, after); ok {
		return game.KoResponse{Ko: geo.FormatVertex(ko)}, nil
	}
	return game.KoResponse{}, nil
}

func (g *GameUseCase) load(ctx context.Context, gameID string) (game.Game, board.Position, error) {
	stored, err := g.store.GetGame(ctx, gameID)
	if err != nil {
		return game.Game{}, board.Position{}, err
	}
	pos, err := restorePosition(stored)
	if err != nil {
		return game.Game{}, board.Position{}, fmt.Errorf("%w: game %s: %v", apperrors.ErrInternal, gameID, err)
	}
	return stored, pos, nil
}

// restorePosition rebuilds the position; the ko point is recovered from
// the board before the last move.
func restorePosition(stored game.Game) (board.Position, error) {
	geo, err := board.NewGeometry(stored.BoardSize)
	if err != nil {
		return board.Position{}, err
	}
	current, err := geo.ParseBoard(stored.Board)
	if err != nil {
		return board.Position{}, err
	}
	var ko *board.Point
	if stored.PrevBoard != "" {
		prev, err := geo.ParseBoard(stored.PrevBoard)
		if err != nil {
			return board.Position{}, err
		}
		if pt, ok := geo.FindKoFromBoards(prev, current); ok {
			ko = &pt
		}
	}
	return geo.NewPosition(current, ko)
}

func stateOf(stored game.Game, pos board.Position, last *game.Move) game.GameState {
	geo := pos.Geometry()
	state := game.GameState{
		GameID:    stored.GameID,
		BoardSize: stored.BoardSize,
		Rows:      geo.Rows(pos.Board()),
		Status:    stored.Status,
		Score:     stored.Score,
		LastMove:  last,
	}
	if ko, ok := pos.Ko(); ok {
		state.Ko = geo.FormatVertex(ko)
	}
	return state
}

func toGrid[T any](flat []T, n int) [][]T {
	grid := make([][]T, n)
	for row := range grid {
		grid[row] = flat[row*n : (row+1)*n]
	}
	return grid
}

// IsClientError tells delivery layers whether err was caused by the request.
func IsClientError(err error) bool {
	for _, target := range []error{
		apperrors.ErrIllegalMove,
		apperrors.ErrInvalidBoardSize,
		apperrors.ErrMalformedBoard,
		apperrors.ErrInvalidVertex,
		apperrors.ErrInvalidColor,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
