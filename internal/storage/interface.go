package storage

import (
	"context"

	"github.com/salvo-game/salvo/internal/model"
)

// Storage defines the interface for data persistence.
//
// Backends must be safe for concurrent use, but they do not serialize
// read-validate-write sequences; the game controller holds a per-game
// lock around those.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations. DeleteGame cascades to the game's boards and moves.
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGamesByStatus(ctx context.Context, status model.GameStatus) ([]*model.Game, error)
	ListGamesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error)

	// Board operations. Boards are written once per (game, player) and
	// never updated.
	SaveBoard(ctx context.Context, board *model.Board) error
	GetBoard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Board, error)
	GetBoardsForGame(ctx context.Context, gameID model.GameID) ([]*model.Board, error)

	// Move operations. AppendMove assigns move.ID from a per-game
	// sequence that strictly increases in insertion order.
	// GetMovesForGame returns moves ordered by ID ascending.
	AppendMove(ctx context.Context, move *model.Move) error
	GetMovesForGame(ctx context.Context, gameID model.GameID) ([]*model.Move, error)
}
