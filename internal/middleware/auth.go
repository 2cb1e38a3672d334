package middleware

import (
	"net/http"
	"strings"

	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/service"
)

// Session resolves the request's session token (Bearer header, or the auth
// cookie outside the JSON API) through the tracker and puts the session in ctx.
// Adopting also makes sure the user's goal mirror is loaded.
func Session(tracker *goalstore.Tracker, authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromCookie := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := tracker.Adopt(r.Context(), token)
			if err != nil || sess == nil {
				if fromCookie {
					authService.ClearJWTCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) (token string, fromCookie bool) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), false
	}

	// The API is exempt from CSRF checks, so it never accepts the cookie.
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return "", false
	}

	cookie, err := r.Cookie(service.AuthCookieName)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// RequireAuth sends guests to the landing page.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Session(r.Context()) == nil {
			redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAPIAuth answers 401 instead of redirecting.
func RequireAPIAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Session(r.Context()) == nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="taigen"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest sends signed-in users to the app.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Session(r.Context()) != nil {
			redirect(w, r, "/app")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// redirect uses HX-Redirect for htmx requests so the whole page navigates.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
