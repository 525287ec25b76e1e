package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/storage"
)

// allStatuses enumerates the status index sets a game can belong to
var allStatuses = []model.GameStatus{
	model.GameStatusWaiting,
	model.GameStatusActive,
	model.GameStatusFinished,
	model.GameStatusCancelled,
}

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Guests expire, registered players do not
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Pipeline keeps the game record and its index sets in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	for _, status := range allStatuses {
		if status == game.Status {
			pipe.SAdd(ctx, gamesByStatusKey(status), string(game.ID))
		} else {
			pipe.SRem(ctx, gamesByStatusKey(status), string(game.ID))
		}
	}
	pipe.SAdd(ctx, gamesForPlayerKey(game.Player1), string(game.ID))
	if game.Player2 != "" {
		pipe.SAdd(ctx, gamesForPlayerKey(game.Player2), string(game.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil
		}
		return err
	}

	owners, err := s.client.SMembers(ctx, boardsForGameIndexKey(id)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	for _, status := range allStatuses {
		pipe.SRem(ctx, gamesByStatusKey(status), string(id))
	}
	pipe.SRem(ctx, gamesForPlayerKey(game.Player1), string(id))
	if game.Player2 != "" {
		pipe.SRem(ctx, gamesForPlayerKey(game.Player2), string(id))
	}
	for _, owner := range owners {
		pipe.Del(ctx, boardKey(id, model.PlayerID(owner)))
	}
	pipe.Del(ctx, boardsForGameIndexKey(id))
	pipe.Del(ctx, movesKey(id))
	pipe.Del(ctx, moveSeqKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGamesByStatus(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesByStatusKey(status)).Result()
	if err != nil {
		return nil, err
	}
	return s.getGames(ctx, ids)
}

func (s *Storage) ListGamesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesForPlayerKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	return s.getGames(ctx, ids)
}

// getGames fetches games by id, skipping entries whose records have been
// removed since the index was read
func (s *Storage) getGames(ctx context.Context, ids []string) ([]*model.Game, error) {
	var games []*model.Game
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, boardKey(board.GameID, board.PlayerID), data, 0)
	pipe.SAdd(ctx, boardsForGameIndexKey(board.GameID), string(board.PlayerID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetBoard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Board, error) {
	data, err := s.client.Get(ctx, boardKey(gameID, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardNotFound
		}
		return nil, err
	}

	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) GetBoardsForGame(ctx context.Context, gameID model.GameID) ([]*model.Board, error) {
	owners, err := s.client.SMembers(ctx, boardsForGameIndexKey(gameID)).Result()
	if err != nil {
		return nil, err
	}

	var boards []*model.Board
	for _, owner := range owners {
		board, err := s.GetBoard(ctx, gameID, model.PlayerID(owner))
		if err != nil {
			if errors.Is(err, model.ErrBoardNotFound) {
				continue
			}
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, nil
}

// Move operations

func (s *Storage) AppendMove(ctx context.Context, move *model.Move) error {
	id, err := s.client.Incr(ctx, moveSeqKey(move.GameID)).Result()
	if err != nil {
		return err
	}
	move.ID = id

	data, err := json.Marshal(move)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, movesKey(move.GameID), data).Err()
}

func (s *Storage) GetMovesForGame(ctx context.Context, gameID model.GameID) ([]*model.Move, error) {
	entries, err := s.client.LRange(ctx, movesKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]*model.Move, 0, len(entries))
	for _, entry := range entries {
		var move model.Move
		if err := json.Unmarshal([]byte(entry), &move); err != nil {
			return nil, err
		}
		moves = append(moves, &move)
	}
	return moves, nil
}
