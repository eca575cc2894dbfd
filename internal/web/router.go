// Package web wires the portal's HTTP routes.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lcabral/guestportal/internal/services/flow"
	"github.com/lcabral/guestportal/internal/services/guestbook"
	"github.com/lcabral/guestportal/internal/services/identity"
	"github.com/lcabral/guestportal/internal/web/handler"
	"github.com/lcabral/guestportal/internal/web/middleware"
	"github.com/lcabral/guestportal/internal/web/templates"
)

// RouterConfig holds configuration for the portal router
type RouterConfig struct {
	Logger           *slog.Logger
	FlowService      *flow.Service
	IdentityService  *identity.Service
	GuestbookService *guestbook.Service

	SessionSecret string
	ControllerIP  string
	FlowTTL       time.Duration
	StaticDir     string // Path to static files directory
}

// NewRouter creates the portal router with all routes configured
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	renderer, err := templates.New()
	if err != nil {
		return nil, err
	}

	flowTTL := cfg.FlowTTL
	if flowTTL == 0 {
		flowTTL = 24 * time.Hour
	}

	r := mux.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.LoadFlow(cfg.FlowService, cfg.SessionSecret))

	// Handlers
	portalHandler := handler.NewPortalHandler(cfg.FlowService, renderer, cfg.SessionSecret, cfg.ControllerIP, flowTTL, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.FlowService, cfg.IdentityService, cfg.GuestbookService, renderer, cfg.SessionSecret, flowTTL, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	r.HandleFunc("/", portalHandler.Start).Methods(http.MethodGet)
	r.HandleFunc("/login", portalHandler.Login).Methods(http.MethodGet)
	r.HandleFunc("/success", portalHandler.Success).Methods(http.MethodGet)

	r.HandleFunc("/auth/google", authHandler.GoogleStart).Methods(http.MethodGet)
	r.HandleFunc("/auth/google/callback", authHandler.GoogleCallback).Methods(http.MethodGet)
	r.HandleFunc("/auth/manual", authHandler.Manual).Methods(http.MethodPost)

	return r, nil
}
