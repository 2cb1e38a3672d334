package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/i18n"
	"github.com/taigen-app/taigen/internal/model"
)

// APIHandler serves the JSON API over the same goal stores as the pages.
// Authentication is a Bearer session token.
type APIHandler struct {
	tracker *goalstore.Tracker
	loc     *time.Location
	now     func() time.Time
}

func NewAPIHandler(tracker *goalstore.Tracker, loc *time.Location) *APIHandler {
	if loc == nil {
		loc = time.Local
	}
	return &APIHandler{tracker: tracker, loc: loc, now: time.Now}
}

func (h *APIHandler) store(r *http.Request) (*model.Session, *goalstore.Store) {
	sess := ctxkeys.Session(r.Context())
	return sess, h.tracker.Store(sess.UserID)
}

type goalsResponse struct {
	Goals []*model.Goal   `json:"goals"`
	Stats goalstore.Stats `json:"stats"`
}

func (h *APIHandler) Goals(w http.ResponseWriter, r *http.Request) {
	sess, store := h.store(r)

	if !store.Loaded() {
		err := store.Load(r.Context(), sess)
		if err != nil {
			writeError(w, http.StatusBadGateway, msg(r, i18n.LoadFailed))
			return
		}
	}

	writeJSON(w, http.StatusOK, goalsResponse{Goals: store.Goals(), Stats: store.Stats()})
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Deadline    string `json:"deadline"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *APIHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	sess, store := h.store(r)

	var body createGoalRequest
	if !decode(w, r, &body) {
		return
	}

	draft := goalstore.Draft{
		Title:       body.Title,
		Deadline:    body.Deadline,
		Category:    body.Category,
		Description: body.Description,
	}
	req, err := draft.Compose(h.now().In(h.loc))
	if err != nil {
		writeValidation(w, r, err)
		return
	}

	goal, err := store.CreateGoal(r.Context(), sess, req)
	if errors.Is(err, goalstore.ErrValidation) {
		writeValidation(w, r, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, msg(r, i18n.GoalCreateFailed))
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

type progressRequest struct {
	Progress *int   `json:"progress"`
	Note     string `json:"note"`
}

func (h *APIHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	sess, store := h.store(r)

	var body progressRequest
	if !decode(w, r, &body) {
		return
	}
	if body.Progress == nil {
		writeError(w, http.StatusUnprocessableEntity, msg(r, i18n.ProgressOutOfRange))
		return
	}

	update, err := store.RecordProgress(r.Context(), sess, r.PathValue("id"), *body.Progress, body.Note)
	switch {
	case errors.Is(err, goalstore.ErrProgressOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, msg(r, i18n.ProgressOutOfRange))
		return
	case errors.Is(err, goalstore.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, msg(r, i18n.GoalNotFound))
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, msg(r, i18n.ProgressFailed))
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Update *model.ProgressUpdate `json:"update"`
		Goal   *model.Goal           `json:"goal"`
	}{update, store.Goal(r.PathValue("id"))})
}

type milestoneRequest struct {
	Title string `json:"title"`
}

func (h *APIHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	sess, store := h.store(r)

	var body milestoneRequest
	if !decode(w, r, &body) {
		return
	}

	milestone, err := store.AddMilestone(r.Context(), sess, r.PathValue("id"), body.Title)
	switch {
	case errors.Is(err, goalstore.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, msg(r, i18n.GoalNotFound))
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, msg(r, i18n.MilestoneAddFailed))
		return
	case milestone == nil:
		writeError(w, http.StatusUnprocessableEntity, msg(r, i18n.MilestoneTitleMissing))
		return
	}

	writeJSON(w, http.StatusCreated, milestone)
}

func (h *APIHandler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	sess, store := h.store(r)

	completed, err := store.ToggleMilestone(r.Context(), sess, r.PathValue("id"), r.PathValue("mid"))
	if errors.Is(err, goalstore.ErrMilestoneNotFound) {
		writeError(w, http.StatusNotFound, msg(r, i18n.MilestoneNotFound))
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, msg(r, i18n.MilestoneUpdateFailed))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        r.PathValue("mid"),
		"completed": completed,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, r *http.Request, err error) {
	resp := apiError{Error: msg(r, composeMessageKey(err))}
	var verr *goalstore.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
