package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/i18n"
	"github.com/taigen-app/taigen/internal/markdown"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/components/toast"
	"github.com/taigen-app/taigen/internal/ui/pages"
)

var notices = map[string]string{
	"created":   i18n.GoalCreated,
	"progress":  i18n.ProgressSaved,
	"milestone": i18n.MilestoneAdded,
}

type GoalHandler struct {
	tracker  *goalstore.Tracker
	markdown *markdown.Parser
	appURL   string
	loc      *time.Location
	now      func() time.Time
}

func NewGoalHandler(tracker *goalstore.Tracker, parser *markdown.Parser, appURL string, loc *time.Location) *GoalHandler {
	if loc == nil {
		loc = time.Local
	}
	return &GoalHandler{
		tracker:  tracker,
		markdown: parser,
		appURL:   appURL,
		loc:      loc,
		now:      time.Now,
	}
}

func (h *GoalHandler) today() time.Time {
	return h.now().In(h.loc)
}

func (h *GoalHandler) session(r *http.Request) (*model.Session, *goalstore.Store) {
	sess := ctxkeys.Session(r.Context())
	return sess, h.tracker.Store(sess.UserID)
}

// App sends the user to the page of their current mode.
func (h *GoalHandler) App(w http.ResponseWriter, r *http.Request) {
	sess := ctxkeys.Session(r.Context())
	http.Redirect(w, r, modePath(h.tracker.Mode(sess.UserID)), http.StatusSeeOther)
}

func modePath(mode goalstore.Mode) string {
	switch m := mode.(type) {
	case goalstore.ModeMyPage:
		return "/app/goals"
	case goalstore.ModeProgressEditor:
		return "/app/goals/" + m.GoalID + "/progress"
	case goalstore.ModeMilestoneEditor:
		return "/app/goals/" + m.GoalID + "/milestones/new"
	default:
		return "/app/goals/new"
	}
}

func (h *GoalHandler) GoalsPage(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	h.tracker.SetMode(sess.UserID, goalstore.ModeMyPage{})

	props := pages.GoalsProps{}
	if key, ok := notices[r.URL.Query().Get("notice")]; ok {
		props.Notice = msg(r, key)
	}

	if !store.Loaded() {
		err := store.Load(r.Context(), sess)
		if err != nil {
			props.Error = msg(r, i18n.LoadFailed)
		}
	}

	props.Stats = store.Stats()
	for _, g := range store.Goals() {
		props.Goals = append(props.Goals, h.view(g))
	}

	ui.Render(w, r, pages.Goals(props))
}

func (h *GoalHandler) view(g *model.Goal) pages.GoalView {
	html, err := h.markdown.Render(g.DescriptionText())
	if err != nil {
		slog.Warn("failed to render goal description", "error", err, "goal_id", g.ID)
	}
	return pages.GoalView{
		Goal:            g,
		DescriptionHTML: html,
		DaysLeft:        daysUntil(h.today(), g.Deadline),
	}
}

// daysUntil counts calendar days from today to the deadline's date.
func daysUntil(today, deadline time.Time) int {
	y, m, d := today.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = deadline.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// NewGoalPage shows the composer. Coming back from the confirmation step
// keeps what was typed.
func (h *GoalHandler) NewGoalPage(w http.ResponseWriter, r *http.Request) {
	sess := ctxkeys.Session(r.Context())

	var draft goalstore.Draft
	switch m := h.tracker.Mode(sess.UserID).(type) {
	case goalstore.ModeConfirm:
		draft = m.Request.Draft()
	case goalstore.ModeCompose:
		draft = m.Draft
	}
	h.tracker.SetMode(sess.UserID, goalstore.ModeCompose{Draft: draft})

	props := pages.ComposeProps{Draft: draft, Today: h.today().Format(goalstore.DateLayout)}
	if r.URL.Query().Get("welcome") != "" {
		props.Notice = msg(r, i18n.AuthSignUpConfirm)
	}
	ui.Render(w, r, pages.Compose(props))
}

func draftFromForm(r *http.Request) goalstore.Draft {
	return goalstore.Draft{
		Title:       r.FormValue("title"),
		Deadline:    r.FormValue("deadline"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}
}

// composeMessageKey picks the alert for a rejected draft. Missing fields
// take precedence over the date rules.
func composeMessageKey(err error) string {
	var verr *goalstore.ValidationError
	if !errors.As(err, &verr) {
		return i18n.GoalRequiredFields
	}
	for _, reason := range verr.Fields {
		if reason == goalstore.ReasonRequired || reason == goalstore.ReasonDate {
			return i18n.GoalRequiredFields
		}
	}
	if verr.Fields["category"] == goalstore.ReasonCategory {
		return i18n.GoalBadCategory
	}
	return i18n.GoalDeadlinePast
}

// ConfirmGoal validates the draft and moves to the confirmation step.
func (h *GoalHandler) ConfirmGoal(w http.ResponseWriter, r *http.Request) {
	sess := ctxkeys.Session(r.Context())
	draft := draftFromForm(r)

	req, err := draft.Compose(h.today())
	if err != nil {
		h.tracker.SetMode(sess.UserID, goalstore.ModeCompose{Draft: draft})
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Compose(pages.ComposeProps{
			Draft: draft,
			Error: msg(r, composeMessageKey(err)),
			Today: h.today().Format(goalstore.DateLayout),
		}))
		return
	}

	h.tracker.SetMode(sess.UserID, goalstore.ModeConfirm{Request: req})
	ui.Render(w, r, pages.Confirm(pages.ConfirmProps{
		Request: req,
		Links:   goalstore.ShareLinks(req, h.appURL),
	}))
}

// CreateGoal declares the goal held by the confirmation step.
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)

	confirm, ok := h.tracker.Mode(sess.UserID).(goalstore.ModeConfirm)
	if !ok {
		http.Redirect(w, r, "/app/goals/new", http.StatusSeeOther)
		return
	}

	_, err := store.CreateGoal(r.Context(), sess, confirm.Request)
	if errors.Is(err, goalstore.ErrValidation) {
		// The deadline passed while the user sat on the confirmation step.
		draft := confirm.Request.Draft()
		h.tracker.SetMode(sess.UserID, goalstore.ModeCompose{Draft: draft})
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Compose(pages.ComposeProps{
			Draft: draft,
			Error: msg(r, composeMessageKey(err)),
			Today: h.today().Format(goalstore.DateLayout),
		}))
		return
	}
	if err != nil {
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.Confirm(pages.ConfirmProps{
			Request: confirm.Request,
			Links:   goalstore.ShareLinks(confirm.Request, h.appURL),
			Error:   msg(r, i18n.GoalCreateFailed),
		}))
		return
	}

	h.tracker.SetMode(sess.UserID, goalstore.ModeMyPage{})
	http.Redirect(w, r, "/app/goals?notice=created", http.StatusSeeOther)
}

func (h *GoalHandler) notFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

func (h *GoalHandler) ProgressPage(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	goal := store.Goal(r.PathValue("id"))
	if goal == nil {
		h.notFound(w, r)
		return
	}

	h.tracker.SetMode(sess.UserID, goalstore.ModeProgressEditor{GoalID: goal.ID})
	ui.Render(w, r, pages.ProgressEditor(pages.ProgressEditorProps{Goal: goal}))
}

func (h *GoalHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	goalID := r.PathValue("id")

	props := pages.ProgressEditorProps{
		Goal:  store.Goal(goalID),
		Value: r.FormValue("progress"),
		Note:  r.FormValue("note"),
	}
	if props.Goal == nil {
		h.notFound(w, r)
		return
	}

	value, err := strconv.Atoi(strings.TrimSpace(props.Value))
	if err != nil {
		props.Error = msg(r, i18n.ProgressOutOfRange)
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.ProgressEditor(props))
		return
	}

	_, err = store.RecordProgress(r.Context(), sess, goalID, value, props.Note)
	switch {
	case errors.Is(err, goalstore.ErrProgressOutOfRange):
		props.Error = msg(r, i18n.ProgressOutOfRange)
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.ProgressEditor(props))
		return
	case errors.Is(err, goalstore.ErrGoalNotFound):
		h.notFound(w, r)
		return
	case err != nil:
		props.Error = msg(r, i18n.ProgressFailed)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ProgressEditor(props))
		return
	}

	h.tracker.SetMode(sess.UserID, goalstore.ModeMyPage{})
	http.Redirect(w, r, "/app/goals?notice=progress", http.StatusSeeOther)
}

func (h *GoalHandler) MilestonePage(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	goal := store.Goal(r.PathValue("id"))
	if goal == nil {
		h.notFound(w, r)
		return
	}

	h.tracker.SetMode(sess.UserID, goalstore.ModeMilestoneEditor{GoalID: goal.ID})
	ui.Render(w, r, pages.MilestoneEditor(pages.MilestoneEditorProps{Goal: goal}))
}

func (h *GoalHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	goalID := r.PathValue("id")

	props := pages.MilestoneEditorProps{
		Goal:  store.Goal(goalID),
		Title: r.FormValue("title"),
	}
	if props.Goal == nil {
		h.notFound(w, r)
		return
	}

	milestone, err := store.AddMilestone(r.Context(), sess, goalID, props.Title)
	switch {
	case errors.Is(err, goalstore.ErrGoalNotFound):
		h.notFound(w, r)
		return
	case err != nil:
		props.Error = msg(r, i18n.MilestoneAddFailed)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.MilestoneEditor(props))
		return
	case milestone == nil:
		props.Error = msg(r, i18n.MilestoneTitleMissing)
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.MilestoneEditor(props))
		return
	}

	h.tracker.SetMode(sess.UserID, goalstore.ModeMyPage{})
	http.Redirect(w, r, "/app/goals?notice=milestone", http.StatusSeeOther)
}

// ToggleMilestone answers htmx with the goal card, as stored after the
// write. A failed write re-renders the unchanged card with an error toast.
func (h *GoalHandler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	goalID := r.PathValue("id")

	_, err := store.ToggleMilestone(r.Context(), sess, goalID, r.PathValue("mid"))
	if errors.Is(err, goalstore.ErrMilestoneNotFound) {
		h.notFound(w, r)
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/app/goals", http.StatusSeeOther)
		return
	}

	goal := store.Goal(goalID)
	if goal == nil {
		h.notFound(w, r)
		return
	}

	if err != nil {
		ui.RenderOOB(w, r, toast.Toast(toast.Props{
			Title:       msg(r, i18n.MilestoneUpdateFailed),
			Variant:     toast.VariantError,
			Icon:        true,
			Dismissible: true,
		}), "beforeend:#toast-container")
	}
	ui.Render(w, r, pages.GoalCard(h.view(goal)))
}

func (h *GoalHandler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	sess, store := h.session(r)
	goal := store.Goal(r.PathValue("id"))
	if goal == nil {
		h.notFound(w, r)
		return
	}

	updates, err := store.ProgressHistory(r.Context(), sess, goal.ID)
	if err != nil {
		http.Error(w, "Failed to load progress history", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.History(pages.HistoryProps{Goal: goal, Updates: updates}))
}

// Export downloads the mirrored goals, milestones included, as JSON.
func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	_, store := h.session(r)

	filename := fmt.Sprintf("taigen-goals-%s.json", h.today().Format("20060102"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(store.Goals())
	if err != nil {
		slog.Error("failed to export goals", "error", err)
	}
}
