package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/lcabral/guestportal/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.FlowTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) testFlow(token model.FlowToken) *model.Flow {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Flow{
		Token: token,
		Join: &model.JoinRequest{
			ClientMAC:   "AA:BB:CC:DD:EE:FF",
			ClientIP:    "192.168.1.10",
			APMAC:       "11:22:33:44:55:66",
			SSID:        "guest-wifi",
			RedirectURL: "http://example.com",
		},
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func (s *StorageSuite) TestSaveAndGetFlow() {
	flow := s.testFlow("flow-1")

	err := s.storage.SaveFlow(s.ctx, flow)
	s.Require().NoError(err)

	got, err := s.storage.GetFlow(s.ctx, "flow-1")
	s.Require().NoError(err)
	s.Equal(flow.Token, got.Token)
	s.Equal("guest-wifi", got.Join.SSID)
	s.Nil(got.Identity)
}

func (s *StorageSuite) TestSaveFlowSetsTTL() {
	err := s.storage.SaveFlow(s.ctx, s.testFlow("flow-1"))
	s.Require().NoError(err)

	ttl := s.mini.TTL(flowKey("flow-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestGetFlowNotFound() {
	_, err := s.storage.GetFlow(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrFlowNotFound)
}

func (s *StorageSuite) TestGetFlowExpired() {
	err := s.storage.SaveFlow(s.ctx, s.testFlow("flow-1"))
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetFlow(s.ctx, "flow-1")
	s.ErrorIs(err, model.ErrFlowNotFound)
}

func (s *StorageSuite) TestSaveFlowWithIdentity() {
	flow := s.testFlow("flow-1")
	flow.Identity = &model.Identity{
		Source:      model.SourceManual,
		DisplayName: "Alice",
		Email:       "alice@example.com",
	}

	err := s.storage.SaveFlow(s.ctx, flow)
	s.Require().NoError(err)

	got, err := s.storage.GetFlow(s.ctx, "flow-1")
	s.Require().NoError(err)
	s.Require().NotNil(got.Identity)
	s.Equal("Alice", got.Identity.DisplayName)
	s.Equal(model.SourceManual, got.Identity.Source)
}

func (s *StorageSuite) TestDeleteFlow() {
	err := s.storage.SaveFlow(s.ctx, s.testFlow("flow-1"))
	s.Require().NoError(err)

	err = s.storage.DeleteFlow(s.ctx, "flow-1")
	s.Require().NoError(err)

	_, err = s.storage.GetFlow(s.ctx, "flow-1")
	s.ErrorIs(err, model.ErrFlowNotFound)
}
