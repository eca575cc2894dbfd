package storage

import (
	"context"

	"github.com/lcabral/guestportal/internal/model"
)

// Storage defines the interface for persisting login flows across the
// redirect-based handshake
type Storage interface {
	SaveFlow(ctx context.Context, flow *model.Flow) error
	GetFlow(ctx context.Context, token model.FlowToken) (*model.Flow, error)
	DeleteFlow(ctx context.Context, token model.FlowToken) error
}
