package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigen-app/taigen/internal/app"
	"github.com/taigen-app/taigen/internal/config"
	"github.com/taigen-app/taigen/internal/db/dbtest"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/service"
)

type client struct {
	t      *testing.T
	server *httptest.Server
	http   *http.Client
	jar    *cookiejar.Jar
	app    *app.App
}

func newClient(t *testing.T, opts ...func(*config.Config)) *client {
	t.Helper()

	cfg := &config.Config{
		AppName:           "Taigen",
		AppEnv:            "development",
		AppURL:            "http://localhost:8080",
		DBDriver:          "sqlite",
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		ConfirmExpiry:     24 * time.Hour,
		MinPasswordLength: 6,
		ReminderWindow:    72 * time.Hour,
		Timezone:          time.FixedZone("JST", 9*60*60),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	a := app.NewWithDB(cfg, dbtest.New(t))
	require.NoError(t, a.Start(t.Context()))
	t.Cleanup(a.Tracker.Close)

	server := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &client{
		t:      t,
		server: server,
		jar:    jar,
		app:    a,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) cookie(name string) string {
	u, _ := url.Parse(c.server.URL)
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

func (c *client) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *client) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.server.URL+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

// post submits a form with the CSRF token from the cookie, fetching a page
// first when no token cookie exists yet.
func (c *client) post(path string, form url.Values, headers ...string) (*http.Response, string) {
	c.t.Helper()
	if c.cookie("csrf_token") == "" {
		c.get("/auth")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", c.cookie("csrf_token"))

	req, err := http.NewRequest(http.MethodPost, c.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return c.do(req)
}

func (c *client) api(method, path, body string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token := c.cookie(service.AuthCookieName); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req)
}

func (c *client) signUp(email string) {
	c.t.Helper()
	resp, _ := c.post("/auth/signup", url.Values{"email": {email}, "password": {"secret123"}})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
	require.NotEmpty(c.t, c.cookie(service.AuthCookieName))
}

func (c *client) declare(title string) *model.Goal {
	c.t.Helper()
	deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	resp, _ := c.post("/app/goals/confirm", url.Values{
		"title": {title}, "deadline": {deadline}, "category": {"キャリア"}, "description": {"**本気**で"},
	})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	resp, _ = c.post("/app/goals", nil)
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)

	_, body := c.api(http.MethodGet, "/api/goals", "")
	var out struct {
		Goals []*model.Goal `json:"goals"`
	}
	require.NoError(c.t, json.Unmarshal([]byte(body), &out))
	for _, g := range out.Goals {
		if g.Title == title {
			return g
		}
	}
	c.t.Fatalf("goal %q not found", title)
	return nil
}

func TestPublicPages(t *testing.T) {
	c := newClient(t)

	resp, body := c.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "目標を宣言して、達成しよう")
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))

	resp, _ = c.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = c.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "taigen_http_requests_total")

	resp, body = c.get("/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Disallow: /app/")

	resp, _ = c.get("/assets/js/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = c.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "404")
}

func TestGuestsAreSentToLanding(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/app", "/app/goals", "/app/goals/new"} {
		resp, _ := c.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

func TestAuthMessages(t *testing.T) {
	c := newClient(t)

	resp, body := c.post("/auth/signup", url.Values{"email": {"a@example.com"}, "password": {"short"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "パスワードは6文字以上で入力してください")
	assert.Equal(t, 0, c.app.Stores.Len())

	resp, body = c.post("/auth/signup", url.Values{"email": {"not-an-email"}, "password": {"secret123"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "有効なメールアドレスを入力してください")

	resp, body = c.post("/auth/signin", url.Values{"email": {"nobody@example.com"}, "password": {"secret123"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "メールアドレスまたはパスワードが正しくありません")

	resp, body = c.post("/auth/signup", url.Values{"email": {"a@example.com"}, "password": {strings.Repeat("x", 73)}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "パスワードは72バイト以内で入力してください")
}

func TestAuthMessagesUseConfiguredMinimum(t *testing.T) {
	c := newClient(t, func(cfg *config.Config) { cfg.MinPasswordLength = 8 })

	resp, body := c.post("/auth/signup", url.Values{"email": {"a@example.com"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "パスワードは8文字以上で入力してください")

	resp, _ = c.post("/auth/signup", url.Values{"email": {"a@example.com"}, "password": {"secret12"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestCSRFRequiredForForms(t *testing.T) {
	c := newClient(t)

	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/auth/signin",
		strings.NewReader(url.Values{"email": {"a@example.com"}, "password": {"secret123"}}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, _ := c.do(req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeclareGoalFlow(t *testing.T) {
	c := newClient(t)
	c.signUp("taro@example.com")

	resp, body := c.get("/app/goals/new?welcome=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "確認メールを送信しました")

	// Missing fields never reach the database.
	resp, body = c.post("/app/goals/confirm", url.Values{"title": {"走る"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "目標、期限、カテゴリーは必須項目です")

	deadline := time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	resp, body = c.post("/app/goals/confirm", url.Values{
		"title": {"フルマラソン完走"}, "deadline": {deadline}, "category": {"健康・フィットネス"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "フルマラソン完走")
	assert.Contains(t, body, "https://twitter.com/intent/tweet?")

	// Back to the composer keeps the draft.
	_, body = c.get("/app/goals/new")
	assert.Contains(t, body, `value="フルマラソン完走"`)

	resp, body = c.post("/app/goals/confirm", url.Values{
		"title": {"フルマラソン完走"}, "deadline": {deadline}, "category": {"健康・フィットネス"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, _ = c.post("/app/goals", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app/goals?notice=created", resp.Header.Get("Location"))

	_, body = c.get("/app/goals?notice=created")
	assert.Contains(t, body, "目標を宣言しました！")
	assert.Contains(t, body, "フルマラソン完走")

	// Mode is now the my page.
	resp, _ = c.get("/app")
	assert.Equal(t, "/app/goals", resp.Header.Get("Location"))

	// Declaring again without a fresh confirmation does nothing.
	resp, _ = c.post("/app/goals", nil)
	assert.Equal(t, "/app/goals/new", resp.Header.Get("Location"))
}

func TestProgressAndMilestones(t *testing.T) {
	c := newClient(t)
	c.signUp("hanako@example.com")
	goal := c.declare("資格を取る")

	_, body := c.get("/app/goals")
	assert.Contains(t, body, "<strong>本気</strong>")

	resp, body := c.post("/app/goals/"+goal.ID+"/progress", url.Values{"progress": {"101"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "進捗は0から100の間で入力してください")

	resp, _ = c.post("/app/goals/"+goal.ID+"/progress", url.Values{"progress": {"100"}, "note": {"合格!"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = c.get("/app/goals")
	assert.Contains(t, body, `aria-valuenow="100"`)
	assert.Contains(t, body, "100%")

	_, body = c.get("/app/goals/" + goal.ID + "/history")
	assert.Contains(t, body, "合格!")

	resp, body = c.post("/app/goals/"+goal.ID+"/milestones", url.Values{"title": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "マイルストーン名を入力してください")

	resp, _ = c.post("/app/goals/"+goal.ID+"/milestones", url.Values{"title": {"過去問を解く"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	g := c.app.Tracker.Store(goal.UserID).Goal(goal.ID)
	require.Len(t, g.Milestones, 1)
	mid := g.Milestones[0].ID

	resp, body = c.post("/app/goals/"+goal.ID+"/milestones/"+mid+"/toggle", nil, "HX-Request", "true")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="goal-`+goal.ID+`"`)
	assert.Contains(t, body, `aria-pressed="true"`)
	assert.True(t, c.app.Tracker.Store(goal.UserID).Goal(goal.ID).Milestones[0].Completed)

	resp, _ = c.get("/app/goals/unknown/progress")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.get("/app/goals/export")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, body, "過去問を解く")
}

func TestAPI(t *testing.T) {
	c := newClient(t)

	resp, _ := c.api(http.MethodGet, "/api/goals", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	c.signUp("api@example.com")

	// The cookie alone does not authenticate the API.
	req, err := http.NewRequest(http.MethodGet, c.server.URL+"/api/goals", nil)
	require.NoError(t, err)
	resp, _ = c.do(req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := c.api(http.MethodPost, "/api/goals", `{"title":"","deadline":"2000-01-01","category":"キャリア"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `"title":"required"`)

	deadline := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	resp, body = c.api(http.MethodPost, "/api/goals", `{"title":"本を10冊読む","deadline":"`+deadline+`","category":"学習・教育"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var goal model.Goal
	require.NoError(t, json.Unmarshal([]byte(body), &goal))
	assert.Equal(t, model.GoalStatusProgress, goal.Status)

	resp, _ = c.api(http.MethodPost, "/api/goals/"+goal.ID+"/progress", `{"progress":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, body = c.api(http.MethodPost, "/api/goals/"+goal.ID+"/progress", `{"progress":40,"note":"4冊"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Contains(t, body, `"progress":40`)

	resp, body = c.api(http.MethodPost, "/api/goals/"+goal.ID+"/milestones", `{"title":"5冊目"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var milestone model.Milestone
	require.NoError(t, json.Unmarshal([]byte(body), &milestone))

	resp, body = c.api(http.MethodPost, "/api/goals/"+goal.ID+"/milestones/"+milestone.ID+"/toggle", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"completed":true`)

	resp, _ = c.api(http.MethodPost, "/api/goals/nope/progress", `{"progress":10}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.api(http.MethodPost, "/api/goals/"+goal.ID+"/milestones/nope/toggle", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "マイルストーンが見つかりません")
	assert.NotContains(t, body, "milestone not found")
}

func TestLogoutClearsState(t *testing.T) {
	c := newClient(t)
	c.signUp("jiro@example.com")
	goal := c.declare("早起きする")
	token := c.cookie(service.AuthCookieName)

	resp, _ := c.post("/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Empty(t, c.cookie(service.AuthCookieName))

	assert.False(t, c.app.Tracker.Authenticated(goal.UserID))
	assert.Empty(t, c.app.Tracker.Store(goal.UserID).Goals())

	// The old token is revoked.
	req, err := http.NewRequest(http.MethodGet, c.server.URL+"/api/goals", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = c.do(req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Signing back in reloads the goals.
	resp, _ = c.post("/auth/signin", url.Values{"email": {"jiro@example.com"}, "password": {"secret123"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Len(t, c.app.Tracker.Store(goal.UserID).Goals(), 1)
}
