// Package sheets is a minimal client for the Google Sheets values.append
// endpoint, authenticating with a service account via the JWT bearer grant.
package sheets

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lcabral/guestportal/internal/dependencies/clock"
)

const (
	defaultAPIBaseURL = "https://sheets.googleapis.com"
	defaultRange      = "Sheet1!A:I"
	scopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	jwtBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Shave a minute off token lifetime so a token is never used at the
	// edge of expiry
	tokenExpirySlack = time.Minute
)

// Config holds connection settings for the Sheets client
type Config struct {
	// CredentialsFile is the path to the service account JSON key
	CredentialsFile string
	// SpreadsheetID identifies the target spreadsheet
	SpreadsheetID string
	// Range is the A1-notation append range (default Sheet1!A:I)
	Range string
	// APIBaseURL overrides the Sheets API base URL (for tests)
	APIBaseURL string
	// TokenURL overrides the OAuth token endpoint (for tests)
	TokenURL string
	// HTTPClient overrides the HTTP client (for tests)
	HTTPClient *http.Client
}

// credentials is the subset of the service account key file the client needs
type credentials struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// Client appends rows to one spreadsheet
type Client struct {
	http   *http.Client
	clock  clock.Clock
	logger *slog.Logger

	creds      credentials
	signingKey *rsa.PrivateKey
	tokenURL   string
	baseURL    string

	spreadsheetID string
	appendRange   string

	// mu guards the cached bearer token
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// New creates a Sheets client from a service account key file
func New(cfg Config, clk clock.Clock, logger *slog.Logger) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id required")
	}

	raw, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets: read credentials: %w", err)
	}

	var creds credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("sheets: parse credentials: %w", err)
	}
	if creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("sheets: credentials missing client_email or private_key")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("sheets: parse private key: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = creds.TokenURI
	}
	if tokenURL == "" {
		return nil, fmt.Errorf("sheets: no token endpoint in credentials or config")
	}

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	appendRange := cfg.Range
	if appendRange == "" {
		appendRange = defaultRange
	}

	return &Client{
		http:          httpClient,
		clock:         clk,
		logger:        logger,
		creds:         creds,
		signingKey:    key,
		tokenURL:      tokenURL,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   appendRange,
	}, nil
}

// AppendRow appends one row of cell values to the configured range
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}

	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	body, err := json.Marshal(map[string]any{
		"values": [][]any{cells},
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.appendRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: append request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets: append returned %d: %s", resp.StatusCode, string(snippet))
	}

	return nil
}

// bearerToken returns a cached access token, exchanging a fresh JWT
// assertion when the cache is empty or expired
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.token != "" && now.Before(c.tokenExpiry) {
		return c.token, nil
	}

	assertion, err := c.signAssertion(now)
	if err != nil {
		return "", err
	}

	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sheets: token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("sheets: token endpoint returned %d: %s", resp.StatusCode, string(snippet))
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return "", fmt.Errorf("sheets: decode token response: %w", err)
	}
	if grant.AccessToken == "" {
		return "", fmt.Errorf("sheets: token response missing access_token")
	}

	c.token = grant.AccessToken
	c.tokenExpiry = now.Add(time.Duration(grant.ExpiresIn)*time.Second - tokenExpirySlack)

	c.logger.Info("sheets access token refreshed",
		slog.Time("expires_at", c.tokenExpiry),
	)

	return c.token, nil
}

// signAssertion builds the RS256 service account assertion for the JWT
// bearer grant
func (c *Client) signAssertion(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   c.creds.ClientEmail,
		"scope": scopeSpreadsheets,
		"aud":   c.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("sheets: sign assertion: %w", err)
	}
	return signed, nil
}
