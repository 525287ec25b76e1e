package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameNotWaiting     = "GAME_NOT_WAITING"
	CodeGameNotActive      = "GAME_NOT_ACTIVE"
	CodeGameFinished       = "GAME_FINISHED"
	CodeNotGameOwner       = "NOT_GAME_OWNER"
	CodeAlreadyInGame      = "ALREADY_IN_GAME"
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeDuplicateMove      = "DUPLICATE_MOVE"
	CodeInvalidTurnOrState = "INVALID_TURN_OR_STATE"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameNotWaiting):
		return &httpError{http.StatusConflict, APIError{CodeGameNotWaiting, "Game is not waiting for players"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game has already finished"}}
	case errors.Is(err, model.ErrNotGameOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotGameOwner, "Only the game's creator can do this"}}
	case errors.Is(err, model.ErrAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInGame, "You are already in this game"}}
	case errors.Is(err, model.ErrInvalidCoordinates):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinates, "Coordinates must be between 0 and 7"}}
	case errors.Is(err, model.ErrDuplicateMove):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateMove, "You have already targeted that cell"}}
	case errors.Is(err, model.ErrInvalidTurnOrState):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTurnOrState, "Invalid game state or not your turn"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	// Invariant violations are logged where they occur; never leak
	// internals to the caller
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
