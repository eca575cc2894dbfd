package web_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/lcabral/guestportal/internal/factory"
	"github.com/lcabral/guestportal/internal/services/identity"
	"github.com/lcabral/guestportal/internal/web"
)

const (
	testSessionSecret = "test-secret"
	testControllerIP  = "10.0.0.2"
)

// stubProvider fakes the identity provider's token and userinfo endpoints
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
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(p.userinfo))
	})

	return mux
}

// webTestServer provides a test server for portal testing
type webTestServer struct {
	t        *testing.T
	handler  http.Handler
	app      *factory.TestApp
	provider *stubProvider
	cookies  *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	provider := &stubProvider{
		userinfo: `{"name":"Alice Example","email":"alice@example.com","gender":"female","ageRange":{"min":21}}`,
	}
	providerSrv := httptest.NewServer(provider.handler())
	t.Cleanup(providerSrv.Close)

	app := factory.NewTestApp(identity.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://portal.local/auth/google/callback",
		AuthURL:      providerSrv.URL + "/auth",
		TokenURL:     providerSrv.URL + "/token",
		UserinfoURL:  providerSrv.URL + "/userinfo",
		HTTPClient:   providerSrv.Client(),
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router, err := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		FlowService:      app.FlowService,
		IdentityService:  app.IdentityService,
		GuestbookService: app.GuestbookService,
		SessionSecret:    testSessionSecret,
		ControllerIP:     testControllerIP,
		FlowTTL:          24 * time.Hour,
		StaticDir:        "", // No static files in tests
	})
	require.NoError(t, err)

	return &webTestServer{
		t:        t,
		handler:  router,
		app:      app,
		provider: provider,
		cookies:  newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// followRedirect follows the Location header of a redirect response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "response has no Location header")
	return ts.get(location)
}

// loginQuery builds a complete, valid /login query string
func loginQuery() url.Values {
	return url.Values{
		"client_mac": {"AA:BB:CC:DD:EE:FF"},
		"client_ip":  {"192.168.1.10"},
		"ap_mac":     {"11:22:33:44:55:66"},
		"ssid":       {"guest-wifi"},
		"redirect":   {"http://controller.local/redirect"},
	}
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, c := range j.cookies {
		req.AddCookie(c)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	resp := rr.Result()
	for _, c := range resp.Cookies() {
		if c.MaxAge < 0 {
			delete(j.cookies, c.Name)
			continue
		}
		j.cookies[c.Name] = c
	}
}

func (j *cookieJar) hasFlow() bool {
	_, ok := j.cookies["portal_flow"]
	return ok
}
