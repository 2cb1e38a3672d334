package routes

import (
	"io/fs"
	"net/http"

	"github.com/taigen-app/taigen/assets"
	"github.com/taigen-app/taigen/internal/app"
	"github.com/taigen-app/taigen/internal/handler"
	"github.com/taigen-app/taigen/internal/metrics"
	"github.com/taigen-app/taigen/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	seo := handler.NewSEOHandler(app.Cfg.AppURL)
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg.MinPasswordLength)
	goal := handler.NewGoalHandler(app.Tracker, app.Markdown, app.Cfg.AppURL, app.Cfg.Timezone)
	api := handler.NewAPIHandler(app.Tracker, app.Cfg.Timezone)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Operations
	mux.HandleFunc("GET /healthz", home.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Home
	mux.HandleFunc("GET /{$}", middleware.RequireGuest(home.HomePage))

	// Auth - Authentication flow (rate limited)
	limit := app.AuthLimiter.Limit

	mux.HandleFunc("GET /auth", middleware.RequireGuest(auth.AuthPage))
	mux.HandleFunc("POST /auth/signin", limit(middleware.RequireGuest(auth.SignIn)))
	mux.HandleFunc("POST /auth/signup", limit(middleware.RequireGuest(auth.SignUp)))
	mux.HandleFunc("GET /auth/confirm/{token}", limit(auth.ConfirmEmail))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	mux.HandleFunc("GET /app", middleware.RequireAuth(goal.App))

	// Goals
	mux.HandleFunc("GET /app/goals", middleware.RequireAuth(goal.GoalsPage))
	mux.HandleFunc("GET /app/goals/new", middleware.RequireAuth(goal.NewGoalPage))
	mux.HandleFunc("GET /app/goals/export", middleware.RequireAuth(goal.Export))
	mux.HandleFunc("POST /app/goals/confirm", middleware.RequireAuth(goal.ConfirmGoal))
	mux.HandleFunc("POST /app/goals", middleware.RequireAuth(goal.CreateGoal))

	// Progress
	mux.HandleFunc("GET /app/goals/{id}/progress", middleware.RequireAuth(goal.ProgressPage))
	mux.HandleFunc("POST /app/goals/{id}/progress", middleware.RequireAuth(goal.RecordProgress))
	mux.HandleFunc("GET /app/goals/{id}/history", middleware.RequireAuth(goal.HistoryPage))

	// Milestones
	mux.HandleFunc("GET /app/goals/{id}/milestones/new", middleware.RequireAuth(goal.MilestonePage))
	mux.HandleFunc("POST /app/goals/{id}/milestones", middleware.RequireAuth(goal.AddMilestone))
	mux.HandleFunc("POST /app/goals/{id}/milestones/{mid}/toggle", middleware.RequireAuth(goal.ToggleMilestone))

	// ============================================================================
	// JSON API (/api/*, Bearer token)
	// ============================================================================

	mux.HandleFunc("GET /api/goals", middleware.RequireAPIAuth(api.Goals))
	mux.HandleFunc("POST /api/goals", middleware.RequireAPIAuth(api.CreateGoal))
	mux.HandleFunc("POST /api/goals/{id}/progress", middleware.RequireAPIAuth(api.RecordProgress))
	mux.HandleFunc("POST /api/goals/{id}/milestones", middleware.RequireAPIAuth(api.AddMilestone))
	mux.HandleFunc("POST /api/goals/{id}/milestones/{mid}/toggle", middleware.RequireAPIAuth(api.ToggleMilestone))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		// Config, URL path and language first; later middleware reads them
		middleware.RequestContext(app.Cfg),
		// CSP nonce, must be before SecurityHeaders
		middleware.Nonce,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		// CORS for /api/* only
		middleware.APICORS(app.Cfg.CORSAllowedOrigins),
		// CSRF for state-changing page requests; /api/* is skipped
		middleware.CSRFProtection,
		middleware.Session(app.Tracker, app.AuthService),
	)

	return handler
}
