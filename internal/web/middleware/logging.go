package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lcabral/guestportal/internal/middleware"
)

// Logging creates logging middleware for the portal
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
