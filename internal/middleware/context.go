package middleware

import (
	"net/http"

	"github.com/taigen-app/taigen/internal/config"
	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/i18n"
)

// RequestContext stores the sanitized config, the URL path and the
// negotiated language in the request context.
func RequestContext(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			ctx = ctxkeys.WithURLPath(ctx, r.URL.Path)
			ctx = ctxkeys.WithLang(ctx, i18n.FromRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
