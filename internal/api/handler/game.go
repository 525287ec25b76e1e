package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salvo-game/salvo/internal/api/middleware"
	"github.com/salvo-game/salvo/internal/api/request"
	"github.com/salvo-game/salvo/internal/api/response"
	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	detail, err := h.gameController.CreateGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameResponse{Game: response.GameFromDetail(detail)})
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	open, err := h.gameController.ListOpenGames(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OpenGamesFromModel(open))
}

// Show handles GET /api/v1/games/{id}
func (h *GameHandler) Show(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	detail, err := h.gameController.GetGameDetail(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResponse{Game: response.GameFromDetail(detail)})
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	detail, err := h.gameController.JoinGame(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResponse{Game: response.GameFromDetail(detail)})
}

// Cancel handles POST /api/v1/games/{id}/cancel
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	detail, err := h.gameController.CancelGame(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResponse{Game: response.GameFromDetail(detail)})
}

// Abandon handles POST /api/v1/games/{id}/abandon
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	detail, err := h.gameController.AbandonGame(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameResponse{Game: response.GameFromDetail(detail)})
}

// SubmitMove handles POST /api/v1/games/{id}/moves
func (h *GameHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.X == nil || req.Y == nil {
		WriteError(w, NewInvalidRequestError("x and y are required"))
		return
	}

	result, detail, err := h.gameController.SubmitMove(r.Context(), gameID, player.ID, *req.X, *req.Y)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponse{
		Result: string(result),
		Game:   response.GameFromDetail(detail),
	})
}

// Poll handles GET /api/v1/games/{id}/poll?last_move_id=N
func (h *GameHandler) Poll(w http.ResponseWriter, r *http.Request) {
	middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	lastMoveID := int64(0)
	if raw := r.URL.Query().Get("last_move_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			WriteError(w, NewInvalidRequestError("last_move_id must be an integer"))
			return
		}
		lastMoveID = parsed
	}

	result, err := h.gameController.PollGame(r.Context(), gameID, lastMoveID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.PollResponse{
		Game:       response.GameFromDetail(result.Detail),
		LastMoveID: result.LastMoveID,
	}
	if !result.Changed {
		resp.Status = "no_changes"
	}
	response.JSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/v1/games/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	details, err := h.gameController.PlayerStats(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.StatsResponse{Games: make([]response.Game, 0, len(details))}
	for _, detail := range details {
		resp.Games = append(resp.Games, response.GameFromDetail(detail))
	}
	response.JSON(w, http.StatusOK, resp)
}
