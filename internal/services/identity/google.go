// Package identity resolves guest identities, either through the Google
// OAuth handshake or from the manual name/email form.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/lcabral/guestportal/internal/model"
)

const (
	defaultAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Config holds the provider settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint overrides for tests
	AuthURL     string
	TokenURL    string
	UserinfoURL string
	HTTPClient  *http.Client
}

// Service performs the authorization-code handshake with Google
type Service struct {
	oauth       *oauth2.Config
	userinfoURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// New creates a new identity service
func New(cfg Config, logger *slog.Logger) *Service {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	userinfoURL := cfg.UserinfoURL
	if userinfoURL == "" {
		userinfoURL = defaultUserinfoURL
	}

	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		userinfoURL: userinfoURL,
		httpClient:  cfg.HTTPClient,
		logger:      logger,
	}
}

// AuthCodeURL returns the provider URL to redirect the guest to. The state
// parameter carries the flow token so the callback can recover the guest's
// join parameters.
func (s *Service) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Authenticate exchanges the callback code and fetches the guest's profile.
// A profile without both a name and an email fails with
// ErrIdentityIncomplete.
func (s *Service) Authenticate(ctx context.Context, code string) (*model.Identity, error) {
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("identity: code exchange: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	identity, err := model.NewOAuthIdentity(profile.Name, profile.Email, profile.Gender, profile.AgeRange.Min)
	if err != nil {
		return nil, err
	}

	s.logger.Info("provider identity resolved", slog.String("email", identity.Email))

	return identity, nil
}

// googleProfile is the subset of the userinfo response the portal records
type googleProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	AgeRange struct {
		Min int `json:"min"`
	} `json:"ageRange"`
}

func (s *Service) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.oauth.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userinfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: userinfo request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity: userinfo returned %d: %s", resp.StatusCode, string(snippet))
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("identity: decode userinfo: %w", err)
	}

	return &profile, nil
}
