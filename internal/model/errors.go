package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game lifecycle errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameNotWaiting = errors.New("game is not waiting for players")
	ErrGameNotActive  = errors.New("game is not active")
	ErrGameFinished   = errors.New("game has already finished")
	ErrNotGameOwner   = errors.New("player is not the game's creator")
	ErrAlreadyInGame  = errors.New("player is already in this game")

	// Move errors
	ErrInvalidCoordinates = errors.New("coordinates are out of range")
	ErrDuplicateMove      = errors.New("cell has already been targeted")
	ErrInvalidTurnOrState = errors.New("invalid game state or not this player's turn")

	// Board errors
	ErrBoardNotFound = errors.New("board not found")

	// ErrOpponentBoardMissing indicates a game whose boards were never
	// generated. It signals an upstream bug, not a player mistake.
	ErrOpponentBoardMissing = errors.New("opponent board missing")
)
