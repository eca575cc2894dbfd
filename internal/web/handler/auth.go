package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/services/flow"
	"github.com/lcabral/guestportal/internal/services/guestbook"
	"github.com/lcabral/guestportal/internal/services/identity"
	"github.com/lcabral/guestportal/internal/web/middleware"
	"github.com/lcabral/guestportal/internal/web/templates"
)

// AuthHandler handles both authentication paths: the Google handshake and
// the manual name/email form
type AuthHandler struct {
	flows     *flow.Service
	identity  *identity.Service
	guestbook *guestbook.Service
	renderer  *templates.Renderer
	logger    *slog.Logger

	sessionSecret string
	flowTTL       time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(flows *flow.Service, identitySvc *identity.Service, guestbookSvc *guestbook.Service, renderer *templates.Renderer, sessionSecret string, flowTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		flows:         flows,
		identity:      identitySvc,
		guestbook:     guestbookSvc,
		renderer:      renderer,
		logger:        logger,
		sessionSecret: sessionSecret,
		flowTTL:       flowTTL,
	}
}

// GoogleStart redirects the guest to the identity provider. The flow token
// rides in the OAuth state parameter so the callback can recover the guest's
// join parameters even if the cookie does not survive the round trip.
func (h *AuthHandler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	f := middleware.GetFlow(r.Context())
	if f == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.Redirect(w, r, h.identity.AuthCodeURL(string(f.Token)), http.StatusFound)
}

// GoogleCallback completes the handshake: recover the flow, exchange the
// code for a profile, record the join, and hand the guest to the
// confirmation page.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	// Prefer the state parameter; fall back to the cookie
	token := model.FlowToken(q.Get("state"))
	if token == "" {
		token = middleware.FlowTokenFromCookie(r, h.sessionSecret)
	}

	f, err := h.flows.Get(ctx, token)
	if err != nil {
		renderError(w, h.renderer, h.logger, model.ErrMissingJoinParams)
		return
	}

	code := q.Get("code")
	if code == "" {
		renderError(w, h.renderer, h.logger, model.ErrIdentityIncomplete)
		return
	}

	guest, err := h.identity.Authenticate(ctx, code)
	if err != nil {
		renderError(w, h.renderer, h.logger, err)
		return
	}

	h.finish(w, r, f.Token, guest)
}

// Manual handles the name/email form submission
func (h *AuthHandler) Manual(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Error(w, http.StatusBadRequest, templates.ErrorData{Message: msgMissingFields})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" || email == "" {
		h.renderer.Error(w, http.StatusBadRequest, templates.ErrorData{Message: msgMissingFields})
		return
	}

	f := middleware.GetFlow(r.Context())
	if f == nil {
		renderError(w, h.renderer, h.logger, model.ErrMissingJoinParams)
		return
	}

	guest, err := model.NewManualIdentity(name, email)
	if err != nil {
		renderError(w, h.renderer, h.logger, err)
		return
	}

	h.finish(w, r, f.Token, guest)
}

// finish attaches the identity to the flow, appends the join record, and
// redirects to the confirmation page. Append retries already happened inside
// the guestbook; a failure here is final for this attempt.
func (h *AuthHandler) finish(w http.ResponseWriter, r *http.Request, token model.FlowToken, guest *model.Identity) {
	ctx := r.Context()

	f, err := h.flows.ResolveIdentity(ctx, token, guest)
	if err != nil {
		renderError(w, h.renderer, h.logger, err)
		return
	}

	if err := h.guestbook.Record(ctx, guest, f.Join); err != nil {
		renderError(w, h.renderer, h.logger, err)
		return
	}

	// Refresh the cookie so /success can find the flow even when the
	// callback recovered it from the state parameter alone
	middleware.SetFlowCookie(w, token, h.sessionSecret, h.flowTTL)

	http.Redirect(w, r, "/success", http.StatusFound)
}
