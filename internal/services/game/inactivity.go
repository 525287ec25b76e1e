package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/salvo-game/salvo/internal/model"
)

const (
	// InactivityTimeout is how long the player-to-move may stall before
	// a move is auto-played on their behalf
	InactivityTimeout = 30 * time.Second

	// MaxInactiveMisses is the number of auto-played moves after which
	// the stalling player forfeits the game
	MaxInactiveMisses = 3
)

// checkInactivity auto-plays a move for the player-to-move if they have
// stalled past InactivityTimeout, and forfeits the game once their
// counter reaches MaxInactiveMisses.
//
// It acts on whichever player is stalling, independent of who made the
// triggering request: an opponent's poll advances the staller's
// forfeiture even if the staller never calls in. Auto-played moves are
// always recorded as misses regardless of the underlying board.
//
// Must be called with the game lock held. Mutates game in place when a
// state change is persisted, so callers see the updated status without
// re-reading. Once a move is inserted the elapsed-time window resets,
// so rapid repeated calls inject at most one auto-move per real window.
func (c *Controller) checkInactivity(ctx context.Context, game *model.Game) error {
	if game.Status != model.GameStatusActive {
		return nil
	}

	moves, err := c.storage.GetMovesForGame(ctx, game.ID)
	if err != nil {
		return err
	}

	staller := PlayerToMove(game, moves)

	lastActivity := game.CreatedAt
	if last := latestMove(moves); last != nil {
		lastActivity = last.CreatedAt
	}

	now := c.clock.Now()
	if now.Sub(lastActivity) < InactivityTimeout {
		return nil
	}

	x, y, ok := c.pickUntargetedCell(moves, staller)
	if !ok {
		// The staller has targeted every cell; nothing left to auto-play
		return nil
	}

	move := &model.Move{
		GameID:    game.ID,
		PlayerID:  staller,
		X:         x,
		Y:         y,
		Result:    model.MoveResultMiss,
		CreatedAt: now,
	}
	if err := c.storage.AppendMove(ctx, move); err != nil {
		return err
	}

	game.IncrementInactiveMisses(staller)
	game.UpdatedAt = now

	c.logger.Info("auto-played move for inactive player",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(staller)),
		slog.Int("x", x),
		slog.Int("y", y),
		slog.Int("inactive_misses", game.InactiveMisses(staller)),
	)

	if game.InactiveMisses(staller) >= MaxInactiveMisses {
		game.Status = model.GameStatusFinished
		game.Winner = game.Opponent(staller)

		c.logger.Info("game forfeited on inactivity",
			slog.String("game_id", string(game.ID)),
			slog.String("winner", string(game.Winner)),
		)
	}

	return c.storage.SaveGame(ctx, game)
}

// pickUntargetedCell samples a uniformly random cell the player has not
// targeted in this game. Returns ok=false only when no cell remains.
func (c *Controller) pickUntargetedCell(moves []*model.Move, playerID model.PlayerID) (int, int, bool) {
	targeted := make(map[[2]int]bool)
	for _, move := range moves {
		if move.PlayerID == playerID {
			targeted[[2]int{move.X, move.Y}] = true
		}
	}
	if len(targeted) >= model.GridSize*model.GridSize {
		return 0, 0, false
	}

	for {
		x := c.random.Intn(model.GridSize)
		y := c.random.Intn(model.GridSize)
		if !targeted[[2]int{x, y}] {
			return x, y, true
		}
	}
}
