package middleware

import (
	"github.com/salvo-game/salvo/internal/middleware"
)

// Logging is the shared HTTP request logging middleware
var Logging = middleware.Logging
