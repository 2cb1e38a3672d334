package pages

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/model"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	ctx := ctxkeys.WithCSRFToken(context.Background(), "tok")
	ctx = ctxkeys.WithSession(ctx, &model.Session{UserID: "u1", Email: "u1@example.com"})
	var b strings.Builder
	require.NoError(t, c.Render(ctx, &b))
	return b.String()
}

func TestAuthToggle(t *testing.T) {
	signIn := render(t, Auth(AuthProps{MinPasswordLength: 6}))
	assert.Contains(t, signIn, `action="/auth/signin"`)
	assert.Contains(t, signIn, `minlength="6"`)
	assert.Contains(t, signIn, `href="/auth?mode=signup"`)
	assert.Contains(t, signIn, `name="csrf_token" value="tok"`)

	signUp := render(t, Auth(AuthProps{SignUp: true, Error: "エラー", MinPasswordLength: 6}))
	assert.Contains(t, signUp, `action="/auth/signup"`)
	assert.Contains(t, signUp, `role="alert"`)
}

func TestComposeListsCategories(t *testing.T) {
	out := render(t, Compose(ComposeProps{Draft: goalstore.Draft{Category: "社会貢献"}, Today: "2026-01-01"}))
	for _, c := range model.Categories {
		assert.Contains(t, out, `<option value="`+c+`"`)
	}
	assert.Contains(t, out, `<option value="社会貢献" selected>`)
	assert.Contains(t, out, `min="2026-01-01"`)
}

func TestGoalCard(t *testing.T) {
	g := &model.Goal{
		ID:       "g1",
		Title:    "<走る>",
		Category: "健康・フィットネス",
		Progress: 40,
		Status:   model.GoalStatusProgress,
		Deadline: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Milestones: []*model.Milestone{
			{ID: "m1", GoalID: "g1", Title: "5km", Completed: true},
		},
	}

	out := render(t, GoalCard(GoalView{Goal: g, DescriptionHTML: "<p>desc</p>", DaysLeft: 3}))
	assert.Contains(t, out, `id="goal-g1"`)
	assert.Contains(t, out, "&lt;走る&gt;")
	assert.Contains(t, out, "<p>desc</p>")
	assert.Contains(t, out, "2026年12月31日")
	assert.Contains(t, out, "あと3日")
	assert.Contains(t, out, `hx-post="/app/goals/g1/milestones/m1/toggle"`)
	assert.Contains(t, out, `aria-pressed="true"`)
	assert.Contains(t, out, `aria-valuenow="40"`)
}

func TestDaysLeftLabel(t *testing.T) {
	assert.Equal(t, "2日超過", daysLeftLabel(-2))
	assert.Equal(t, "今日が期限", daysLeftLabel(0))
	assert.Equal(t, "あと5日", daysLeftLabel(5))
}

func TestGoalsEmptyState(t *testing.T) {
	out := render(t, Goals(GoalsProps{}))
	assert.Contains(t, out, "まだ目標がありません。")
	assert.Contains(t, out, `id="toast-container"`)
}

func TestProgressEditorStartsAtZero(t *testing.T) {
	out := render(t, ProgressEditor(ProgressEditorProps{Goal: &model.Goal{ID: "g1", Title: "t", Progress: 70}}))
	assert.Contains(t, out, `name="progress" type="number" value="0"`)
	assert.Contains(t, out, "70%")
}
