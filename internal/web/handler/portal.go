package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/services/flow"
	"github.com/lcabral/guestportal/internal/web/middleware"
	"github.com/lcabral/guestportal/internal/web/templates"
)

// redirectDelay is how long the confirmation page waits before sending the
// guest's browser to the controller
const redirectDelay = 3 * time.Second

// PortalHandler handles the login and confirmation pages
type PortalHandler struct {
	flows    *flow.Service
	renderer *templates.Renderer
	logger   *slog.Logger

	sessionSecret string
	flowTTL       time.Duration
	controllerIP  string
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(flows *flow.Service, renderer *templates.Renderer, sessionSecret, controllerIP string, flowTTL time.Duration, logger *slog.Logger) *PortalHandler {
	return &PortalHandler{
		flows:         flows,
		renderer:      renderer,
		logger:        logger,
		sessionSecret: sessionSecret,
		flowTTL:       flowTTL,
		controllerIP:  controllerIP,
	}
}

// Start renders the page guests land on without portal parameters
func (h *PortalHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.renderer.Start(w)
}

// Login captures the network-join parameters the access point forwarded and
// opens a flow for this guest. Missing or malformed parameters are rejected
// before any state is created.
func (h *PortalHandler) Login(w http.ResponseWriter, r *http.Request) {
	join := model.JoinRequestFromQuery(r.URL.Query())

	f, err := h.flows.Begin(r.Context(), join)
	if err != nil {
		renderError(w, h.renderer, h.logger, err)
		return
	}

	middleware.SetFlowCookie(w, f.Token, h.sessionSecret, h.flowTTL)

	h.renderer.Login(w, templates.LoginData{SSID: join.SSID})
}

// Success renders the confirmation page with the deferred redirect to the
// controller's allow-URL. Only reachable with captured parameters and a
// resolved identity; anything else restarts the flow.
func (h *PortalHandler) Success(w http.ResponseWriter, r *http.Request) {
	f := middleware.GetFlow(r.Context())
	if f == nil || f.Join == nil || !f.Authenticated() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.renderer.Success(w, templates.SuccessData{
		DisplayName:   f.Identity.DisplayName,
		ControllerURL: h.controllerURL(f.Join),
		DelayMillis:   int(redirectDelay.Milliseconds()),
	})
}

// controllerURL builds the allow-URL the guest's browser is sent to. The
// controller expects the MAC and IP fields verbatim, so they are not
// query-escaped; the validators already constrained their shape.
func (h *PortalHandler) controllerURL(join *model.JoinRequest) string {
	return fmt.Sprintf("https://%s/login?client_mac=%s&client_ip=%s&ap_mac=%s&ssid=%s&access=allow",
		h.controllerIP, join.ClientMAC, join.ClientIP, join.APMAC, join.SSID)
}
