package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lcabral/guestportal/internal/dependencies/mocks"
	"github.com/lcabral/guestportal/internal/services/identity"
	"github.com/lcabral/guestportal/internal/storage/memory"
)

// FakeAppender is an in-memory guestbook appender for tests. It can be told
// to fail a number of calls before succeeding.
type FakeAppender struct {
	mu        sync.Mutex
	FailCount int
	calls     int
	rows      [][]string
}

// AppendRow records the row, or fails while the failure budget lasts
func (f *FakeAppender) AppendRow(_ context.Context, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.FailCount {
		return errors.New("store unreachable")
	}
	f.rows = append(f.rows, row)
	return nil
}

// Calls returns how many times AppendRow was invoked
func (f *FakeAppender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Rows returns the appended rows
func (f *FakeAppender) Rows() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Appender  *FakeAppender
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// identityCfg usually points at a stubbed provider.
func NewTestApp(identityCfg identity.Config) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(mockClock)
	appender := &FakeAppender{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg := Config{
		IdentityConfig: identityCfg,
	}
	// No delay between append retries in tests
	cfg.GuestbookConfig.MaxAttempts = 4

	app := newWithDependencies(store, mockClock, appender, cfg, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Appender:  appender,
	}
}
