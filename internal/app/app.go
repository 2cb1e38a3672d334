package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taigen-app/taigen/internal/config"
	"github.com/taigen-app/taigen/internal/db"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/markdown"
	"github.com/taigen-app/taigen/internal/middleware"
	"github.com/taigen-app/taigen/internal/repository"
	"github.com/taigen-app/taigen/internal/service"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	EmailService    *service.EmailService
	GoalService     *service.GoalService
	ReminderService *service.ReminderService
	Stores          *goalstore.Registry
	Tracker         *goalstore.Tracker
	Markdown        *markdown.Parser
	AuthLimiter     *middleware.RateLimiter
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewWithDB(cfg, database), nil
}

// NewWithDB wires services over an open, migrated database.
func NewWithDB(cfg *config.Config, database *sqlx.DB) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	milestoneRepository := repository.NewMilestoneRepository(database)
	progressUpdateRepository := repository.NewProgressUpdateRepository(database)
	reminderRepository := repository.NewReminderRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.ConfirmExpiry,
		cfg.MinPasswordLength,
		cfg.IsProduction(),
	)
	goalService := service.NewGoalService(database, goalRepository, milestoneRepository, progressUpdateRepository)
	reminderService := service.NewReminderService(
		goalRepository,
		userRepository,
		reminderRepository,
		emailService,
		cfg.ReminderWindow,
		cfg.Timezone,
	)

	// Goal state
	stores := goalstore.NewRegistry(goalService, cfg.Timezone)
	tracker := goalstore.NewTracker(authService, stores)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		EmailService:    emailService,
		GoalService:     goalService,
		ReminderService: reminderService,
		Stores:          stores,
		Tracker:         tracker,
		Markdown:        markdown.NewParser(),
		AuthLimiter:     middleware.NewRateLimiter(authRateLimit, authRateWindow),
	}
}

// Start runs the background parts: session tracking, the reminder schedule
// and rate limiter cleanup. They stop when ctx is done.
func (a *App) Start(ctx context.Context) error {
	a.Tracker.Start(ctx)

	if a.Cfg.ReminderSchedule != "" {
		err := a.ReminderService.Schedule(ctx, a.Cfg.ReminderSchedule)
		if err != nil {
			return fmt.Errorf("failed to schedule reminders: %w", err)
		}
		a.ReminderService.Start()
	}

	go a.AuthLimiter.SweepEvery(ctx, authRateWindow)
	return nil
}

func (a *App) Close() error {
	a.ReminderService.Stop()
	a.Tracker.Close()
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
