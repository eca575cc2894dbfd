package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lcabral/guestportal/internal/middleware"
)

// Recovery creates panic recovery middleware that renders a generic HTML
// error page, never exposing internals to the guest
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, panicHandler)
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Error</title></head>
<body>
<h1>Something went wrong</h1>
<p>Could not sign you into the Wi-Fi. Please try again.</p>
<p><a href="/">Return to start</a></p>
</body>
</html>`))
}
