package ctxkeys

import (
	"context"

	"github.com/taigen-app/taigen/internal/config"
	"github.com/taigen-app/taigen/internal/model"
	"golang.org/x/text/language"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	SessionKey   contextKey = "session"
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
	LangKey      contextKey = "lang"
)

// Session is nil for guests.
func Session(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(SessionKey).(*model.Session)
	return sess
}

func WithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

// Lang defaults to Japanese.
func Lang(ctx context.Context) language.Tag {
	tag, ok := ctx.Value(LangKey).(language.Tag)
	if !ok {
		return language.Japanese
	}
	return tag
}

func WithLang(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, LangKey, tag)
}
