package memory

import (
	"context"
	"sync"

	"github.com/lcabral/guestportal/internal/dependencies/clock"
	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Flows are
// lost on process restart; it exists as the non-durable fallback backend.
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock
	flows map[model.FlowToken]*model.Flow
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock: clk,
		flows: make(map[model.FlowToken]*model.Flow),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveFlow(ctx context.Context, flow *model.Flow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[flow.Token] = flow
	return nil
}

func (s *Storage) GetFlow(ctx context.Context, token model.FlowToken) (*model.Flow, error) {
	s.mu.RLock()
	flow, ok := s.flows[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrFlowNotFound
	}

	if s.clock.Now().After(flow.ExpiresAt) {
		s.mu.Lock()
		delete(s.flows, token)
		s.mu.Unlock()
		return nil, model.ErrFlowNotFound
	}

	return flow, nil
}

func (s *Storage) DeleteFlow(ctx context.Context, token model.FlowToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, token)
	return nil
}
