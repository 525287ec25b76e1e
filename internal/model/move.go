package model

import "time"

// MoveResult is the outcome of a shot
type MoveResult string

const (
	MoveResultHit  MoveResult = "hit"
	MoveResultMiss MoveResult = "miss"
)

// Move records a single shot by one player in one game. Moves are
// append-only and immutable; at most one move exists per
// (game, player, x, y).
//
// ID is a per-game sequence assigned by storage on append. It increases
// strictly in insertion order, which makes it both the turn-order
// tiebreaker and the polling cursor.
type Move struct {
	ID       int64
	GameID   GameID
	PlayerID PlayerID
	X        int // Column, 0-7
	Y        int // Row, 0-7
	Result   MoveResult

	CreatedAt time.Time
}
