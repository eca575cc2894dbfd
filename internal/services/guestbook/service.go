// Package guestbook records guest join events in the external spreadsheet.
// The spreadsheet append endpoint has no transactional guarantee, so appends
// are serialized process-wide and retried on transient failure.
package guestbook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lcabral/guestportal/internal/dependencies/clock"
	"github.com/lcabral/guestportal/internal/model"
)

// Appender sends one row to the external tabular store
type Appender interface {
	AppendRow(ctx context.Context, row []string) error
}

// Service performs the serialized append-with-retry operation
type Service struct {
	appender Appender
	clock    clock.Clock
	logger   *slog.Logger

	maxAttempts int
	retryDelay  time.Duration

	// mu serializes appends: at most one row in flight process-wide
	mu sync.Mutex
}

// Config holds retry policy for the append operation
type Config struct {
	// MaxAttempts is the total number of tries, including the first
	MaxAttempts int
	// RetryDelay is the fixed wait between attempts
	RetryDelay time.Duration
}

// DefaultConfig returns the default retry policy: one attempt plus three
// retries with a short fixed delay
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 4,
		RetryDelay:  500 * time.Millisecond,
	}
}

// New creates a new guestbook service
func New(appender Appender, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Service{
		appender:    appender,
		clock:       clk,
		logger:      logger,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
	}
}

// Record flattens the identity and join request into one row and appends it
// to the store. A nil join request is a caller bug and fails immediately with
// ErrMissingJoinParams, with no attempt made. Transient store failures are
// retried up to the configured attempt budget; exhaustion returns
// ErrAppendFailed wrapping the last error.
func (s *Service) Record(ctx context.Context, identity *model.Identity, join *model.JoinRequest) error {
	if join == nil {
		return model.ErrMissingJoinParams
	}

	record := model.NewJoinRecord(s.clock.Now(), identity, join)
	row := record.Row()

	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 && s.retryDelay > 0 {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return fmt.Errorf("%w: %w", model.ErrAppendFailed, ctx.Err())
			}
		}

		lastErr = s.appender.AppendRow(ctx, row)
		if lastErr == nil {
			s.logger.Info("join record appended",
				slog.String("email", record.Email),
				slog.String("client_mac", record.ClientMAC),
				slog.Int("attempt", attempt),
			)
			return nil
		}

		s.logger.Warn("append attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", s.maxAttempts),
			slog.String("error", lastErr.Error()),
		)
	}

	return fmt.Errorf("%w: %w", model.ErrAppendFailed, lastErr)
}
