package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/taigen-app/taigen/internal/model"
)

type EmailService struct {
	client  *resend.Client
	from    string
	isDev   bool
	appURL  string
	appName string
}

func NewEmailService(apiKey, from, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:  client,
		from:    from,
		isDev:   isDev,
		appURL:  appURL,
		appName: appName,
	}
}

func (s *EmailService) SendSignUpConfirmation(ctx context.Context, email, token string) error {
	confirmURL := fmt.Sprintf("%s/auth/confirm/%s", s.appURL, token)
	subject, body := signUpConfirmationTemplate(confirmURL, s.appName)

	return s.send(ctx, "signup_confirmation", email, subject, body, "url", confirmURL)
}

func (s *EmailService) SendDeadlineReminder(ctx context.Context, email string, goal *model.Goal, now time.Time) error {
	goalsURL := fmt.Sprintf("%s/app/goals", s.appURL)
	daysLeft := int(calendarDate(goal.Deadline).Sub(calendarDate(now)).Hours() / 24)
	subject, body := deadlineReminderTemplate(goal, daysLeft, goalsURL, s.appName)

	return s.send(ctx, "deadline_reminder", email, subject, body, "goal_id", goal.ID)
}

// send logs instead of delivering in development.
func (s *EmailService) send(ctx context.Context, kind, to, subject, body string, attrs ...any) error {
	if s.isDev {
		args := append([]any{"type", kind, "to", to, "subject", subject}, attrs...)
		slog.Info("email sent (dev mode)", args...)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

// calendarDate keeps t's wall-clock date as midnight UTC. Deadlines are
// stored this way so SQL comparisons do not depend on zones.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
