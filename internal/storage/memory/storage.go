package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	games             map[model.GameID]*model.Game
	boards            map[boardKey]*model.Board
	moves             map[model.GameID][]*model.Move
	moveSeq           map[model.GameID]int64
}

type boardKey struct {
	gameID   model.GameID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		games:             make(map[model.GameID]*model.Game),
		boards:            make(map[boardKey]*model.Board),
		moves:             make(map[model.GameID][]*model.Move),
		moveSeq:           make(map[model.GameID]int64),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *game
	s.games[game.ID] = &copied
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	copied := *game
	return &copied, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	for key := range s.boards {
		if key.gameID == id {
			delete(s.boards, key)
		}
	}
	delete(s.moves, id)
	delete(s.moveSeq, id)
	return nil
}

func (s *Storage) ListGamesByStatus(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.Status == status {
			copied := *game
			games = append(games, &copied)
		}
	}
	sortGamesByCreation(games)
	return games, nil
}

func (s *Storage) ListGamesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.HasPlayer(playerID) {
			copied := *game
			games = append(games, &copied)
		}
	}
	sortGamesByCreation(games)
	return games, nil
}

// sortGamesByCreation gives list results a stable order; map iteration
// alone would make test assertions flaky
func sortGamesByCreation(games []*model.Game) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := boardKey{gameID: board.GameID, playerID: board.PlayerID}
	copied := *board
	s.boards[key] = &copied
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := boardKey{gameID: gameID, playerID: playerID}
	board, ok := s.boards[key]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	copied := *board
	return &copied, nil
}

func (s *Storage) GetBoardsForGame(ctx context.Context, gameID model.GameID) ([]*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var boards []*model.Board
	for key, board := range s.boards {
		if key.gameID == gameID {
			copied := *board
			boards = append(boards, &copied)
		}
	}
	return boards, nil
}

// Move operations

func (s *Storage) AppendMove(ctx context.Context, move *model.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveSeq[move.GameID]++
	move.ID = s.moveSeq[move.GameID]
	copied := *move
	s.moves[move.GameID] = append(s.moves[move.GameID], &copied)
	return nil
}

func (s *Storage) GetMovesForGame(ctx context.Context, gameID model.GameID) ([]*model.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.moves[gameID]
	moves := make([]*model.Move, len(stored))
	for i, move := range stored {
		copied := *move
		moves[i] = &copied
	}
	return moves, nil
}
