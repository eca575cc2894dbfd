package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/web/templates"
)

// User-facing messages. Internals are never exposed; everything that is not
// the guest's fault collapses into one generic failure message.
const (
	msgInvalidParams  = "Missing or invalid network parameters."
	msgMissingFields  = "Name and email are required."
	msgGenericFailure = "Could not sign you into the Wi-Fi. Please try again."
)

// renderError maps an error to a status code and a user-facing page
func renderError(w http.ResponseWriter, renderer *templates.Renderer, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := msgGenericFailure

	switch {
	case errors.Is(err, model.ErrInvalidParams):
		status = http.StatusBadRequest
		message = msgInvalidParams
	case errors.Is(err, model.ErrIdentityIncomplete),
		errors.Is(err, model.ErrMissingJoinParams),
		errors.Is(err, model.ErrFlowNotFound),
		errors.Is(err, model.ErrAppendFailed):
		// All 500-class; the guest sees the generic message
	}

	logger.Error("request failed",
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)

	renderer.Error(w, status, templates.ErrorData{Message: message})
}
