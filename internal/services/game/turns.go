package game

import "github.com/salvo-game/salvo/internal/model"

// PlayerToMove derives whose turn it is from the move history.
//
// With no moves it is Player1's turn; otherwise it is the turn of
// whichever player did not author the most recent move. Turn state is
// deliberately never stored on the Game so there is a single source of
// truth. moves must be ordered by ID ascending, as storage returns them.
func PlayerToMove(game *model.Game, moves []*model.Move) model.PlayerID {
	last := latestMove(moves)
	if last == nil {
		return game.Player1
	}
	return game.Opponent(last.PlayerID)
}

// latestMove returns the most recent move, or nil if there are none
func latestMove(moves []*model.Move) *model.Move {
	if len(moves) == 0 {
		return nil
	}
	return moves[len(moves)-1]
}

// latestMoveAfter returns the newest move with ID greater than afterID,
// or nil if nothing newer exists. Used as the polling cursor.
func latestMoveAfter(moves []*model.Move, afterID int64) *model.Move {
	last := latestMove(moves)
	if last == nil || last.ID <= afterID {
		return nil
	}
	return last
}

// hasMoveAt reports whether the player has already targeted (x, y)
func hasMoveAt(moves []*model.Move, playerID model.PlayerID, x, y int) bool {
	for _, move := range moves {
		if move.PlayerID == playerID && move.X == x && move.Y == y {
			return true
		}
	}
	return false
}

// countHits returns the number of hit moves the player has made
func countHits(moves []*model.Move, playerID model.PlayerID) int {
	count := 0
	for _, move := range moves {
		if move.PlayerID == playerID && move.Result == model.MoveResultHit {
			count++
		}
	}
	return count
}
