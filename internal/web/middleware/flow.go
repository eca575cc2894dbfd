package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/services/flow"
)

type contextKey string

const (
	flowContextKey contextKey = "flow"

	// FlowCookieName is the cookie carrying the signed flow token
	FlowCookieName = "portal_flow"
)

// GetFlow retrieves the login flow from the request context.
// Returns nil if no flow is attached.
func GetFlow(ctx context.Context) *model.Flow {
	f, _ := ctx.Value(flowContextKey).(*model.Flow)
	return f
}

// SetFlowCookie writes the signed flow token cookie
func SetFlowCookie(w http.ResponseWriter, token model.FlowToken, secret string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlowCookieName,
		Value:    signToken(token, secret),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FlowTokenFromCookie extracts and verifies the flow token from the request
// cookie. Returns empty token if the cookie is absent or its signature does
// not check out.
func FlowTokenFromCookie(r *http.Request, secret string) model.FlowToken {
	cookie, err := r.Cookie(FlowCookieName)
	if err != nil {
		return ""
	}
	return verifyToken(cookie.Value, secret)
}

// LoadFlow returns middleware that resolves the guest's flow from the cookie
// and attaches it to the request context. Requests without a valid flow pass
// through with a nil flow; handlers decide whether that is an error.
func LoadFlow(flows *flow.Service, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var f *model.Flow
			if token := FlowTokenFromCookie(r, secret); token != "" {
				f, _ = flows.Get(r.Context(), token)
			}

			ctx := context.WithValue(r.Context(), flowContextKey, f)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// signToken encodes the token as "<token>.<base64 hmac>"
func signToken(token model.FlowToken, secret string) string {
	return string(token) + "." + sign(string(token), secret)
}

// verifyToken checks the cookie signature and returns the embedded token,
// or empty on mismatch
func verifyToken(value, secret string) model.FlowToken {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return ""
	}
	if !hmac.Equal([]byte(sig), []byte(sign(token, secret))) {
		return ""
	}
	return model.FlowToken(token)
}

func sign(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
