package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcabral/guestportal/internal/dependencies/mocks"
	"github.com/lcabral/guestportal/internal/model"
)

func testFlow(token model.FlowToken, now time.Time) *model.Flow {
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

func TestSaveAndGetFlow(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s := New(clk)
	ctx := context.Background()

	flow := testFlow("flow-1", clk.Now())
	require.NoError(t, s.SaveFlow(ctx, flow))

	got, err := s.GetFlow(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, flow.Token, got.Token)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", got.Join.ClientMAC)
}

func TestGetFlowNotFound(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s := New(clk)

	_, err := s.GetFlow(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, model.ErrFlowNotFound)
}

func TestGetFlowExpired(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s := New(clk)
	ctx := context.Background()

	flow := testFlow("flow-1", clk.Now())
	require.NoError(t, s.SaveFlow(ctx, flow))

	clk.Advance(25 * time.Hour)

	_, err := s.GetFlow(ctx, "flow-1")
	assert.ErrorIs(t, err, model.ErrFlowNotFound)
}

func TestDeleteFlow(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s := New(clk)
	ctx := context.Background()

	require.NoError(t, s.SaveFlow(ctx, testFlow("flow-1", clk.Now())))
	require.NoError(t, s.DeleteFlow(ctx, "flow-1"))

	_, err := s.GetFlow(ctx, "flow-1")
	assert.ErrorIs(t, err, model.ErrFlowNotFound)
}
