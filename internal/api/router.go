package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salvo-game/salvo/internal/api/handler"
	"github.com/salvo-game/salvo/internal/api/middleware"
	"github.com/salvo-game/salvo/internal/services/auth"
	"github.com/salvo-game/salvo/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Game routes (all require auth). /games/stats must register before
	// the /games/{id} pattern so "stats" is not captured as an id.
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/stats", gameHandler.Stats).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Show).Methods(http.MethodGet)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/cancel", gameHandler.Cancel).Methods(http.MethodPost)
	games.HandleFunc("/{id}/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", gameHandler.SubmitMove).Methods(http.MethodPost)
	games.HandleFunc("/{id}/poll", gameHandler.Poll).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
