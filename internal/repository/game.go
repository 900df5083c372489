package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"go_rules/internal/bootstrap"
	"go_rules/internal/domain/game"
	apperrors "go_rules/internal/errors"
)

const gamesCollection = "games"

// cacheClient is the part of the redis client the repository uses.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// GameRepository keeps games in mongo and caches snapshots and scores in
// redis. Redis failures are logged and fall back to mongo.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis cacheClient
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func snapshotKey(gameID string) string {
	return "game:" + gameID
}

func scoreKey(fingerprint uint64) string {
	return "score:" + strconv.FormatUint(fingerprint, 16)
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, gameData)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", gameData.GameID, err)
	}
	g.log.Infof("game inserted successfully with id: %s", gameData.GameID)

	g.saveSnapshot(ctx, gameData)
	return nil
}

func (g *GameRepository) GetGame(ctx context.Context, gameID string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if cached, ok := g.loadSnapshot(ctx, gameID); ok {
		return cached, nil
	}

	var found game.Game
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, bson.M{"game_id": gameID}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, fmt.Errorf("%w: %s", apperrors.ErrGameNotFound, gameID)
	}
	if err != nil {
		return game.Game{}, fmt.Errorf("find game %s: %w", gameID, err)
	}

	g.saveSnapshot(ctx, found)
	return found, nil
}

func (g *GameRepository) UpdateGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"board":      gameData.Board,
			"prev_board": gameData.PrevBoard,
			"status":     gameData.Status,
			"score":      gameData.Score,
			"updated_at": gameData.UpdatedAt,
		},
	}
	opts := options.Update().SetUpsert(false)

	// readers must not see the old board while mongo is being written
	g.invalidateSnapshot(ctx, gameData.GameID)

	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, bson.M{"game_id": gameData.GameID}, update, opts)
	if err != nil {
		return fmt.Errorf("update game %s: %w", gameData.GameID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrGameNotFound, gameData.GameID)
	}

	g.saveSnapshot(ctx, gameData)
	return nil
}

func (g *GameRepository) GetCachedScore(ctx context.Context, fingerprint uint64) (int, bool) {
	v, err := g.redis.Get(ctx, scoreKey(fingerprint)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.log.Errorf("failed to read score cache: %v", err)
		}
		return 0, false
	}
	return v, true
}

func (g *GameRepository) CacheScore(ctx context.Context, fingerprint uint64, score int) {
	if err := g.redis.Set(ctx, scoreKey(fingerprint), score, g.cfg.SnapshotTTL()).Err(); err != nil {
		g.log.Errorf("failed to write score cache: %v", err)
	}
}

func (g *GameRepository) saveSnapshot(ctx context.Context, gameData game.Game) {
	raw, err := json.Marshal(gameData)
	if err != nil {
		g.log.Errorf("failed to marshal snapshot of %s: %v", gameData.GameID, err)
		return
	}
	if err = g.redis.Set(ctx, snapshotKey(gameData.GameID), raw, g.cfg.SnapshotTTL()).Err(); err != nil {
		g.log.Errorf("failed to cache snapshot of %s: %v", gameData.GameID, err)
		// a snapshot left from an earlier write would now be stale
		g.invalidateSnapshot(ctx, gameData.GameID)
	}
}

func (g *GameRepository) invalidateSnapshot(ctx context.Context, gameID string) {
	if err := g.redis.Del(ctx, snapshotKey(gameID)).Err(); err != nil {
		g.log.Errorf("failed to drop snapshot of %s: %v", gameID, err)
	}
}

func (g *GameRepository) loadSnapshot(ctx context.Context, gameID string) (game.Game, bool) {
	raw, err := g.redis.Get(ctx, snapshotKey(gameID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.log.Errorf("failed to read snapshot of %s: %v", gameID, err)
		}
		return game.Game{}, false
	}
	var cached game.Game
	if err = json.Unmarshal(raw, &cached); err != nil {
		g.log.Errorf("broken snapshot of %s: %v", gameID, err)
		return game.Game{}, false
	}
	return cached, true
}
