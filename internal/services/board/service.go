package board

import (
	"context"

	"github.com/salvo-game/salvo/internal/dependencies/random"
	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/storage"
)

// Service generates and retrieves ship boards
type Service struct {
	storage storage.Storage
	random  random.Random
}

// New creates a new BoardService
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// CreateBoard generates a randomized board for a player in a game and
// persists it. Exactly model.ShipCount cells are occupied, chosen
// uniformly by rejection sampling over the grid.
//
// The caller must guarantee this runs at most once per (game, player);
// boards are immutable after creation.
func (s *Service) CreateBoard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Board, error) {
	board := &model.Board{
		GameID:   gameID,
		PlayerID: playerID,
	}

	placed := 0
	for placed < model.ShipCount {
		x := s.random.Intn(model.GridSize)
		y := s.random.Intn(model.GridSize)
		if board.Grid[y][x] == 1 {
			continue
		}
		board.Grid[y][x] = 1
		placed++
	}

	if err := s.storage.SaveBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard retrieves a player's board
func (s *Service) GetBoard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Board, error) {
	return s.storage.GetBoard(ctx, gameID, playerID)
}

// GetBoardsForGame retrieves all boards for a game
func (s *Service) GetBoardsForGame(ctx context.Context, gameID model.GameID) ([]*model.Board, error) {
	return s.storage.GetBoardsForGame(ctx, gameID)
}
