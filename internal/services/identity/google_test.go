package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/testutil"
)

// stubProvider fakes the token and userinfo endpoints
type stubProvider struct {
	userinfo string
}

func (p *stubProvider) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
	})

	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Authorization"), "provider-token") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(p.userinfo))
	})

	return mux
}

func newTestService(t *testing.T, userinfo string) *Service {
	t.Helper()

	srv := httptest.NewServer((&stubProvider{userinfo: userinfo}).handler())
	t.Cleanup(srv.Close)

	return New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://portal.local/auth/google/callback",
		AuthURL:      srv.URL + "/auth",
		TokenURL:     srv.URL + "/token",
		UserinfoURL:  srv.URL + "/userinfo",
		HTTPClient:   srv.Client(),
	}, testutil.NopLogger())
}

func TestAuthCodeURLCarriesState(t *testing.T) {
	svc := newTestService(t, `{}`)

	u := svc.AuthCodeURL("flow-token-123")
	assert.Contains(t, u, "state=flow-token-123")
	assert.Contains(t, u, "client_id=client-id")
}

func TestAuthenticateResolvesProfile(t *testing.T) {
	svc := newTestService(t, `{"name":"Alice Example","email":"alice@example.com","gender":"female","ageRange":{"min":21}}`)

	identity, err := svc.Authenticate(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Equal(t, model.SourceGoogle, identity.Source)
	assert.Equal(t, "Alice Example", identity.DisplayName)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, "female", identity.Gender)
	assert.Equal(t, 21, identity.AgeRangeMin)
}

func TestAuthenticateMinimalProfile(t *testing.T) {
	svc := newTestService(t, `{"name":"Bob","email":"bob@example.com"}`)

	identity, err := svc.Authenticate(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Empty(t, identity.Gender)
	assert.Zero(t, identity.AgeRangeMin)
}

func TestAuthenticateIncompleteProfile(t *testing.T) {
	svc := newTestService(t, `{"name":"No Email"}`)

	_, err := svc.Authenticate(context.Background(), "auth-code")
	assert.ErrorIs(t, err, model.ErrIdentityIncomplete)
}
