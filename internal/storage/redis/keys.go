package redis

import (
	"fmt"

	"github.com/salvo-game/salvo/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "salvo"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesByStatusKey returns the Redis key for the SET of game ids in a status
func gamesByStatusKey(status model.GameStatus) string {
	return fmt.Sprintf("%s:idx:games_by_status:%s", keyPrefix, status)
}

// gamesForPlayerKey returns the Redis key for the SET of a player's game ids
func gamesForPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:games_for_player:%s", keyPrefix, playerID)
}

// boardKey returns the Redis key for a Board
func boardKey(gameID model.GameID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:board:%s:%s", keyPrefix, gameID, playerID)
}

// boardsForGameIndexKey returns the Redis key for the SET of board owners in a game
func boardsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:boards_for_game:%s", keyPrefix, gameID)
}

// movesKey returns the Redis key for the LIST of a game's moves
func movesKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:moves:%s", keyPrefix, gameID)
}

// moveSeqKey returns the Redis key for a game's move id counter
func moveSeqKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:move_seq:%s", keyPrefix, gameID)
}
