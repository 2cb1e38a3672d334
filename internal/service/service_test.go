package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taigen-app/taigen/internal/db/dbtest"
	"github.com/taigen-app/taigen/internal/repository"
)

type testEnv struct {
	db        *sqlx.DB
	users     repository.UserRepository
	goalRepo  repository.GoalRepository
	reminders repository.ReminderRepository
	email     *EmailService
	auth      *AuthService
	goals     *GoalService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := dbtest.New(t)
	users := repository.NewUserRepository(conn)
	goalRepo := repository.NewGoalRepository(conn)
	email := NewEmailService("", "Taigen <noreply@example.com>", "http://localhost:8090", "Taigen", true)

	return &testEnv{
		db:        conn,
		users:     users,
		goalRepo:  goalRepo,
		reminders: repository.NewReminderRepository(conn),
		email:     email,
		auth:      NewAuthService(users, email, "test-secret", time.Hour, 24*time.Hour, 6, false),
		goals: NewGoalService(conn, goalRepo,
			repository.NewMilestoneRepository(conn),
			repository.NewProgressUpdateRepository(conn)),
	}
}
