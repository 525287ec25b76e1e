package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/salvo-game/salvo/internal/dependencies/clock"
	"github.com/salvo-game/salvo/internal/dependencies/random"
	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/services/board"
	"github.com/salvo-game/salvo/internal/storage"
)

// Controller manages the game session state machine: creation, joining,
// cancellation, abandonment, move resolution and the inactivity monitor.
// All acting-player identities are passed in explicitly; the controller
// never reads ambient request state.
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
	locks        *gameLocks
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		random:       random,
		logger:       logger,
		locks:        newGameLocks(),
	}
}

// GameDetail is a full snapshot of a game with its boards, moves, and
// player records attached for client convenience
type GameDetail struct {
	Game    *model.Game
	Boards  []*model.Board
	Moves   []*model.Move
	Player1 *model.Player
	Player2 *model.Player // nil until an opponent joins
}

// OpenGame pairs a joinable game with its creator's player record
type OpenGame struct {
	Game    *model.Game
	Player1 *model.Player
}

// PollResult is the outcome of a poll request. Changed is false when no
// move newer than the client's cursor exists.
type PollResult struct {
	Detail     *GameDetail
	LastMoveID int64
	Changed    bool
}

// CreateGame starts a new waiting game with the creator as Player1 and
// generates the creator's board
func (c *Controller) CreateGame(ctx context.Context, playerID model.PlayerID) (*GameDetail, error) {
	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Player1:   playerID,
		Status:    model.GameStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := c.boardService.CreateBoard(ctx, game.ID, playerID); err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
	)

	return c.buildDetail(ctx, game)
}

// ListOpenGames returns games waiting for an opponent, excluding those
// the requester created
func (c *Controller) ListOpenGames(ctx context.Context, playerID model.PlayerID) ([]*OpenGame, error) {
	games, err := c.storage.ListGamesByStatus(ctx, model.GameStatusWaiting)
	if err != nil {
		return nil, err
	}

	open := make([]*OpenGame, 0, len(games))
	for _, game := range games {
		if game.Player1 == playerID {
			continue
		}
		creator, err := c.getPlayer(ctx, game.Player1)
		if err != nil {
			return nil, err
		}
		open = append(open, &OpenGame{Game: game, Player1: creator})
	}
	return open, nil
}

// JoinGame adds the player as Player2 of a waiting game, generates their
// board, and activates the game
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*GameDetail, error) {
	defer c.locks.acquire(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrGameNotWaiting
	}
	if game.Player1 == playerID {
		return nil, model.ErrAlreadyInGame
	}

	if _, err := c.boardService.CreateBoard(ctx, gameID, playerID); err != nil {
		return nil, err
	}

	game.Player2 = playerID
	game.Status = model.GameStatusActive
	game.Player2InactiveMisses = 0
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined game",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
	)

	return c.buildDetail(ctx, game)
}

// CancelGame cancels a waiting game; only its creator may do so
func (c *Controller) CancelGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*GameDetail, error) {
	defer c.locks.acquire(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Player1 != playerID {
		return nil, model.ErrNotGameOwner
	}
	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrGameNotWaiting
	}

	game.Status = model.GameStatusCancelled
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game cancelled", slog.String("game_id", string(gameID)))

	return c.buildDetail(ctx, game)
}

// AbandonGame ends an active game with the abandoning player's opponent
// declared winner unconditionally
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*GameDetail, error) {
	defer c.locks.acquire(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.HasPlayer(playerID) {
		return nil, model.ErrGameNotFound
	}
	if game.Status != model.GameStatusActive {
		return nil, model.ErrGameNotActive
	}

	game.Status = model.GameStatusFinished
	game.Winner = game.Opponent(playerID)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("winner", string(game.Winner)),
	)

	return c.buildDetail(ctx, game)
}

// GetGameDetail retrieves a game with all relations attached
func (c *Controller) GetGameDetail(ctx context.Context, gameID model.GameID) (*GameDetail, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return c.buildDetail(ctx, game)
}

// SubmitMove validates and applies a move by playerID against the
// opponent's board. The inactivity monitor runs first and may itself end
// the game or inject a move; validation then proceeds against the
// updated state.
func (c *Controller) SubmitMove(ctx context.Context, gameID model.GameID, playerID model.PlayerID, x, y int) (model.MoveResult, *GameDetail, error) {
	defer c.locks.acquire(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return "", nil, err
	}

	if game.IsTerminal() {
		return "", nil, model.ErrGameFinished
	}

	if err := c.checkInactivity(ctx, game); err != nil {
		return "", nil, err
	}

	if !model.InBounds(x, y) {
		return "", nil, model.ErrInvalidCoordinates
	}

	moves, err := c.storage.GetMovesForGame(ctx, gameID)
	if err != nil {
		return "", nil, err
	}

	if hasMoveAt(moves, playerID, x, y) {
		c.logger.Warn("duplicate move rejected",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.Int("x", x),
			slog.Int("y", y),
		)
		return "", nil, model.ErrDuplicateMove
	}

	if game.Status != model.GameStatusActive || PlayerToMove(game, moves) != playerID {
		return "", nil, model.ErrInvalidTurnOrState
	}

	opponent := game.Opponent(playerID)
	opponentBoard, err := c.storage.GetBoard(ctx, gameID, opponent)
	if err != nil {
		if errors.Is(err, model.ErrBoardNotFound) {
			c.logger.Error("opponent board missing",
				slog.String("game_id", string(gameID)),
				slog.String("opponent_id", string(opponent)),
			)
			return "", nil, model.ErrOpponentBoardMissing
		}
		return "", nil, err
	}

	result := model.MoveResultMiss
	if opponentBoard.IsShipAt(x, y) {
		result = model.MoveResultHit
	}

	now := c.clock.Now()
	move := &model.Move{
		GameID:    gameID,
		PlayerID:  playerID,
		X:         x,
		Y:         y,
		Result:    result,
		CreatedAt: now,
	}
	if err := c.storage.AppendMove(ctx, move); err != nil {
		return "", nil, err
	}

	c.logger.Info("move recorded",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("x", x),
		slog.Int("y", y),
		slog.String("result", string(result)),
	)

	hits := countHits(moves, playerID)
	if result == model.MoveResultHit {
		hits++
	}

	// All of the opponent's ship cells have been hit
	if hits >= model.ShipCount && game.Status == model.GameStatusActive && game.Winner == "" {
		game.Status = model.GameStatusFinished
		game.Winner = playerID
		game.UpdatedAt = now

		if err := c.storage.SaveGame(ctx, game); err != nil {
			return "", nil, err
		}

		c.logger.Info("game won by hits",
			slog.String("game_id", string(gameID)),
			slog.String("winner", string(playerID)),
		)
	}

	detail, err := c.buildDetail(ctx, game)
	if err != nil {
		return "", nil, err
	}
	return result, detail, nil
}

// PollGame runs the inactivity monitor and reports whether any move
// newer than lastMoveID exists. Polling performs no writes unless the
// monitor fires.
func (c *Controller) PollGame(ctx context.Context, gameID model.GameID, lastMoveID int64) (*PollResult, error) {
	defer c.locks.acquire(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.checkInactivity(ctx, game); err != nil {
		return nil, err
	}

	moves, err := c.storage.GetMovesForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	detail, err := c.buildDetailWithMoves(ctx, game, moves)
	if err != nil {
		return nil, err
	}

	if latest := latestMoveAfter(moves, lastMoveID); latest != nil {
		return &PollResult{Detail: detail, LastMoveID: latest.ID, Changed: true}, nil
	}
	return &PollResult{Detail: detail, LastMoveID: lastMoveID, Changed: false}, nil
}

// PlayerStats returns all finished games involving the player, each with
// full move and board detail
func (c *Controller) PlayerStats(ctx context.Context, playerID model.PlayerID) ([]*GameDetail, error) {
	games, err := c.storage.ListGamesForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var details []*GameDetail
	for _, game := range games {
		if game.Status != model.GameStatusFinished {
			continue
		}
		detail, err := c.buildDetail(ctx, game)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// buildDetail assembles the full snapshot of a game
func (c *Controller) buildDetail(ctx context.Context, game *model.Game) (*GameDetail, error) {
	moves, err := c.storage.GetMovesForGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	return c.buildDetailWithMoves(ctx, game, moves)
}

func (c *Controller) buildDetailWithMoves(ctx context.Context, game *model.Game, moves []*model.Move) (*GameDetail, error) {
	boards, err := c.storage.GetBoardsForGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	player1, err := c.getPlayer(ctx, game.Player1)
	if err != nil {
		return nil, err
	}

	var player2 *model.Player
	if game.Player2 != "" {
		player2, err = c.getPlayer(ctx, game.Player2)
		if err != nil {
			return nil, err
		}
	}

	return &GameDetail{
		Game:    game,
		Boards:  boards,
		Moves:   moves,
		Player1: player1,
		Player2: player2,
	}, nil
}

// getPlayer loads a player record, tolerating expired guest records
func (c *Controller) getPlayer(ctx context.Context, playerID model.PlayerID) (*model.Player, error) {
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}
