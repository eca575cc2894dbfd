package guestbook

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lcabral/guestportal/internal/dependencies/mocks"
	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/testutil"
)

// fakeAppender records appended rows and fails the first FailCount calls
type fakeAppender struct {
	mu        sync.Mutex
	FailCount int
	calls     int
	rows      [][]string
}

func (f *fakeAppender) AppendRow(_ context.Context, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.FailCount {
		return errors.New("store unreachable")
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeAppender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAppender) Rows() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows
}

type ServiceSuite struct {
	suite.Suite
	appender *fakeAppender
	clock    *mocks.MockClock
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.appender = &fakeAppender{}
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
}

func (s *ServiceSuite) newService() *Service {
	// No delay between attempts to keep tests fast
	return New(s.appender, s.clock, Config{MaxAttempts: 4}, testutil.NopLogger())
}

func validJoin() *model.JoinRequest {
	return &model.JoinRequest{
		ClientMAC:   "AA:BB:CC:DD:EE:FF",
		ClientIP:    "192.168.1.10",
		APMAC:       "11:22:33:44:55:66",
		SSID:        "guest-wifi",
		RedirectURL: "http://example.com",
	}
}

func (s *ServiceSuite) TestRecordAppendsRow() {
	identity := &model.Identity{
		Source:      model.SourceGoogle,
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Gender:      "female",
		AgeRangeMin: 21,
	}

	err := s.newService().Record(s.ctx, identity, validJoin())
	s.Require().NoError(err)

	rows := s.appender.Rows()
	s.Require().Len(rows, 1)
	s.Equal([]string{
		"2024-01-01 12:00:00",
		"Alice",
		"alice@example.com",
		"female",
		"21",
		"AA:BB:CC:DD:EE:FF",
		"192.168.1.10",
		"11:22:33:44:55:66",
		"guest-wifi",
	}, rows[0])
}

func (s *ServiceSuite) TestRecordSubstitutesPlaceholders() {
	identity := &model.Identity{
		Source:      model.SourceManual,
		DisplayName: "Bob",
		Email:       "bob@example.com",
	}

	err := s.newService().Record(s.ctx, identity, validJoin())
	s.Require().NoError(err)

	rows := s.appender.Rows()
	s.Require().Len(rows, 1)
	s.Equal(model.Placeholder, rows[0][3]) // gender
	s.Equal(model.Placeholder, rows[0][4]) // age range
}

func (s *ServiceSuite) TestRecordNilIdentityDegradesToPlaceholders() {
	err := s.newService().Record(s.ctx, nil, validJoin())
	s.Require().NoError(err)

	rows := s.appender.Rows()
	s.Require().Len(rows, 1)
	s.Equal(model.Placeholder, rows[0][1])
	s.Equal(model.Placeholder, rows[0][2])
}

func (s *ServiceSuite) TestRecordNilJoinFailsImmediately() {
	err := s.newService().Record(s.ctx, nil, nil)
	s.ErrorIs(err, model.ErrMissingJoinParams)
	s.Equal(0, s.appender.Calls())
}

func (s *ServiceSuite) TestRecordRetriesThenSucceeds() {
	s.appender.FailCount = 3

	err := s.newService().Record(s.ctx, nil, validJoin())
	s.Require().NoError(err)

	s.Equal(4, s.appender.Calls())
	s.Len(s.appender.Rows(), 1)
}

func (s *ServiceSuite) TestRecordExhaustsRetries() {
	s.appender.FailCount = 4

	err := s.newService().Record(s.ctx, nil, validJoin())
	s.ErrorIs(err, model.ErrAppendFailed)

	s.Equal(4, s.appender.Calls())
	s.Empty(s.appender.Rows())
}

// overlapAppender trips if two appends are ever in flight at once
type overlapAppender struct {
	inFlight atomic.Int32
	overlap  atomic.Bool
	rows     atomic.Int32
}

func (o *overlapAppender) AppendRow(_ context.Context, _ []string) error {
	if o.inFlight.Add(1) > 1 {
		o.overlap.Store(true)
	}
	time.Sleep(5 * time.Millisecond)
	o.inFlight.Add(-1)
	o.rows.Add(1)
	return nil
}

func (s *ServiceSuite) TestConcurrentRecordsAreSerialized() {
	appender := &overlapAppender{}
	svc := New(appender, s.clock, Config{MaxAttempts: 4}, testutil.NopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Record(s.ctx, nil, validJoin())
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.False(appender.overlap.Load(), "appends must never overlap")
	s.Equal(int32(2), appender.rows.Load())
}
