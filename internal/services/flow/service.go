// Package flow carries one guest's network-join parameters across the
// redirect-based identity handshake. Each intercepted client gets its own
// randomly keyed flow token, which travels in a cookie and in the OAuth
// state parameter, so concurrent logins never share state.
package flow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lcabral/guestportal/internal/dependencies/clock"
	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/storage"
)

// Service manages login flow lifecycle
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	flowDuration time.Duration
}

// Config holds configuration for the flow service
type Config struct {
	FlowDuration time.Duration
}

// DefaultConfig returns default flow configuration
func DefaultConfig() Config {
	return Config{
		FlowDuration: 24 * time.Hour,
	}
}

// New creates a new flow service
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.FlowDuration == 0 {
		cfg.FlowDuration = DefaultConfig().FlowDuration
	}
	return &Service{
		storage:      store,
		clock:        clk,
		logger:       logger,
		flowDuration: cfg.FlowDuration,
	}
}

// Begin validates a join request and opens a new flow for it
func (s *Service) Begin(ctx context.Context, join *model.JoinRequest) (*model.Flow, error) {
	if join == nil {
		return nil, model.ErrInvalidParams
	}
	if err := join.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	flow := &model.Flow{
		Token:     model.FlowToken(uuid.NewString()),
		Join:      join,
		CreatedAt: now,
		ExpiresAt: now.Add(s.flowDuration),
	}

	if err := s.storage.SaveFlow(ctx, flow); err != nil {
		return nil, err
	}

	s.logger.Info("login flow opened",
		slog.String("client_mac", join.ClientMAC),
		slog.String("ap_mac", join.APMAC),
		slog.String("ssid", join.SSID),
	)

	return flow, nil
}

// Get returns the flow for a token, or ErrFlowNotFound if it is unknown or
// has expired
func (s *Service) Get(ctx context.Context, token model.FlowToken) (*model.Flow, error) {
	if token == "" {
		return nil, model.ErrFlowNotFound
	}
	return s.storage.GetFlow(ctx, token)
}

// ResolveIdentity attaches an authenticated identity to a flow. The join
// parameters must still be present; a flow that lost them cannot produce a
// join record.
func (s *Service) ResolveIdentity(ctx context.Context, token model.FlowToken, identity *model.Identity) (*model.Flow, error) {
	flow, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if flow.Join == nil {
		return nil, model.ErrMissingJoinParams
	}

	flow.Identity = identity
	if err := s.storage.SaveFlow(ctx, flow); err != nil {
		return nil, err
	}

	s.logger.Info("identity resolved",
		slog.String("source", string(identity.Source)),
		slog.String("client_mac", flow.Join.ClientMAC),
	)

	return flow, nil
}
