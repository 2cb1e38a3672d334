package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/service"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(ok), mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ctxkeys.CSRFToken(r.Context())))
	}))

	// GET issues a token.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	assert.Equal(t, token, rec.Body.String())

	post := func(form url.Values, header string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		if header != "" {
			req.Header.Set(csrfHeader, header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, post(url.Values{}, ""))
	assert.Equal(t, http.StatusForbidden, post(url.Values{csrfFormField: {"wrong"}}, ""))
	assert.Equal(t, http.StatusOK, post(url.Values{csrfFormField: {token}}, ""))
	assert.Equal(t, http.StatusOK, post(url.Values{}, token))

	// The API is never checked.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/goals", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	h := rl.Limit(ok)
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)
	rl.Allow("1.2.3.4")
	time.Sleep(5 * time.Millisecond)

	rl.Sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.requests)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestAPICORSOnlyOnAPI(t *testing.T) {
	h := APICORS([]string{"https://app.example.com"})(http.HandlerFunc(ok))

	preflight := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("/api/goals")
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight("/app/goals")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSessionToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: service.AuthCookieName, Value: "cookie-token"})
	token, fromCookie := sessionToken(req)
	assert.Equal(t, "cookie-token", token)
	assert.True(t, fromCookie)

	req.Header.Set("Authorization", "Bearer header-token")
	token, fromCookie = sessionToken(req)
	assert.Equal(t, "header-token", token)
	assert.False(t, fromCookie)

	// The API ignores the cookie.
	req = httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.AddCookie(&http.Cookie{Name: service.AuthCookieName, Value: "cookie-token"})
	token, _ = sessionToken(req)
	assert.Empty(t, token)
}

func TestGuards(t *testing.T) {
	withSession := func(req *http.Request) *http.Request {
		return req.WithContext(ctxkeys.WithSession(req.Context(), &model.Session{UserID: "u1"}))
	}

	rec := httptest.NewRecorder()
	RequireAuth(ok)(rec, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	RequireAuth(ok)(rec, withSession(httptest.NewRequest(http.MethodGet, "/app", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("HX-Request", "true")
	RequireAuth(ok)(rec, req)
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))

	rec = httptest.NewRecorder()
	RequireAPIAuth(ok)(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	RequireGuest(ok)(rec, withSession(httptest.NewRequest(http.MethodGet, "/auth", nil)))
	assert.Equal(t, "/app", rec.Header().Get("Location"))
}

func TestSecurityHeadersCarryNonce(t *testing.T) {
	var nonce string
	h := Nonce(SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = GetNonce(r.Context())
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, nonce)
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'nonce-"+nonce+"'")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
