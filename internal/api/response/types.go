package response

import (
	"time"

	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/services/auth"
	"github.com/salvo-game/salvo/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) *Player {
	if p == nil {
		return nil
	}
	return &Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       *PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// MessageResponse is a bare confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

// Board represents a player's board, grid serialized row-major
type Board struct {
	PlayerID string                              `json:"player_id"`
	Grid     [model.GridSize][model.GridSize]int `json:"grid"`
}

// BoardFromModel converts model.Board
func BoardFromModel(b *model.Board) Board {
	return Board{
		PlayerID: string(b.PlayerID),
		Grid:     b.Grid,
	}
}

// Move represents a recorded shot
type Move struct {
	ID        int64     `json:"id"`
	PlayerID  string    `json:"player_id"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m *model.Move) Move {
	return Move{
		ID:        m.ID,
		PlayerID:  string(m.PlayerID),
		X:         m.X,
		Y:         m.Y,
		Result:    string(m.Result),
		CreatedAt: m.CreatedAt,
	}
}

// Game is the full game snapshot returned by most game endpoints
type Game struct {
	ID                    string    `json:"id"`
	Player1ID             string    `json:"player_1"`
	Player2ID             *string   `json:"player_2"`
	Status                string    `json:"status"`
	Winner                *string   `json:"winner"`
	Player1InactiveMisses int       `json:"player_1_inactive_misses"`
	Player2InactiveMisses int       `json:"player_2_inactive_misses"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	Player1               *Player   `json:"player1,omitempty"`
	Player2               *Player   `json:"player2,omitempty"`
	Boards                []Board   `json:"boards,omitempty"`
	Moves                 []Move    `json:"moves,omitempty"`
}

// GameFromDetail converts a game.GameDetail to a response Game
func GameFromDetail(d *game.GameDetail) Game {
	g := Game{
		ID:                    string(d.Game.ID),
		Player1ID:             string(d.Game.Player1),
		Status:                string(d.Game.Status),
		Player1InactiveMisses: d.Game.Player1InactiveMisses,
		Player2InactiveMisses: d.Game.Player2InactiveMisses,
		CreatedAt:             d.Game.CreatedAt,
		UpdatedAt:             d.Game.UpdatedAt,
		Player1:               PlayerFromModel(d.Player1),
		Player2:               PlayerFromModel(d.Player2),
	}
	if d.Game.Player2 != "" {
		p2 := string(d.Game.Player2)
		g.Player2ID = &p2
	}
	if d.Game.Winner != "" {
		w := string(d.Game.Winner)
		g.Winner = &w
	}
	for _, b := range d.Boards {
		g.Boards = append(g.Boards, BoardFromModel(b))
	}
	for _, m := range d.Moves {
		g.Moves = append(g.Moves, MoveFromModel(m))
	}
	return g
}

// GameResponse wraps a single game snapshot
type GameResponse struct {
	Game Game `json:"game"`
}

// OpenGame is an entry in the open games listing
type OpenGame struct {
	ID        string    `json:"id"`
	Player1ID string    `json:"player_1"`
	Player1   *Player   `json:"player1,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenGamesResponse is the open games listing
type OpenGamesResponse struct {
	Games []OpenGame `json:"games"`
}

// OpenGamesFromModel converts the controller's open game listing
func OpenGamesFromModel(open []*game.OpenGame) OpenGamesResponse {
	resp := OpenGamesResponse{Games: make([]OpenGame, 0, len(open))}
	for _, o := range open {
		resp.Games = append(resp.Games, OpenGame{
			ID:        string(o.Game.ID),
			Player1ID: string(o.Game.Player1),
			Player1:   PlayerFromModel(o.Player1),
			CreatedAt: o.Game.CreatedAt,
		})
	}
	return resp
}

// MoveResponse is the response for a submitted move
type MoveResponse struct {
	Result string `json:"result"`
	Game   Game   `json:"game"`
}

// PollResponse is the response for a poll request. Status is
// "no_changes" when no move newer than the client's cursor exists.
type PollResponse struct {
	Game       Game   `json:"game"`
	LastMoveID int64  `json:"last_move_id"`
	Status     string `json:"status,omitempty"`
}

// StatsResponse lists the requester's finished games with full detail
type StatsResponse struct {
	Games []Game `json:"games"`
}
