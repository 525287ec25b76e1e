package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting   GameStatus = "waiting"   // Created, waiting for an opponent
	GameStatusActive    GameStatus = "active"    // Both players joined, moves allowed
	GameStatusFinished  GameStatus = "finished"  // Won by hits, timeout forfeit, or abandonment
	GameStatusCancelled GameStatus = "cancelled" // Cancelled by its creator before anyone joined
)

// Game represents a single two-player battle session.
//
// Whose turn it is is never stored here; it is derived from the move
// history on every check (see game.PlayerToMove).
type Game struct {
	ID      GameID
	Player1 PlayerID // Creator, always set
	Player2 PlayerID // Empty until an opponent joins
	Status  GameStatus
	Winner  PlayerID // Empty unless Status is finished

	// Auto-miss counters for the inactivity forfeit rule
	Player1InactiveMisses int
	Player2InactiveMisses int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the game can no longer change state
func (g *Game) IsTerminal() bool {
	return g.Status == GameStatusFinished || g.Status == GameStatusCancelled
}

// HasPlayer returns true if the given player is one of the two participants
func (g *Game) HasPlayer(playerID PlayerID) bool {
	return g.Player1 == playerID || (g.Player2 != "" && g.Player2 == playerID)
}

// Opponent returns the other participant, or empty if playerID is not in
// the game or no opponent has joined yet
func (g *Game) Opponent(playerID PlayerID) PlayerID {
	switch playerID {
	case g.Player1:
		return g.Player2
	case g.Player2:
		return g.Player1
	default:
		return ""
	}
}

// InactiveMisses returns the inactivity counter for the given player
func (g *Game) InactiveMisses(playerID PlayerID) int {
	if playerID == g.Player1 {
		return g.Player1InactiveMisses
	}
	return g.Player2InactiveMisses
}

// IncrementInactiveMisses bumps the inactivity counter for the given player
// and returns the new value
func (g *Game) IncrementInactiveMisses(playerID PlayerID) int {
	if playerID == g.Player1 {
		g.Player1InactiveMisses++
		return g.Player1InactiveMisses
	}
	g.Player2InactiveMisses++
	return g.Player2InactiveMisses
}
