package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/i18n"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/service"
	"github.com/taigen-app/taigen/internal/ui"
	"github.com/taigen-app/taigen/internal/ui/pages"
)

type authHandler struct {
	authService       *service.AuthService
	minPasswordLength int
}

func NewAuthHandler(authService *service.AuthService, minPasswordLength int) *authHandler {
	return &authHandler{
		authService:       authService,
		minPasswordLength: minPasswordLength,
	}
}

func (h *authHandler) props(r *http.Request, signUp bool) pages.AuthProps {
	return pages.AuthProps{
		SignUp:            signUp,
		Email:             strings.TrimSpace(r.FormValue("email")),
		MinPasswordLength: h.minPasswordLength,
	}
}

// AuthPage shows the sign-in form, or sign-up with ?mode=signup. Guests have
// no identity to keep a mode for, so it comes from the URL.
func (h *authHandler) AuthPage(w http.ResponseWriter, r *http.Request) {
	mode := goalstore.ModeAuth{SignUp: r.URL.Query().Get("mode") == "signup"}
	ui.Render(w, r, pages.Auth(h.props(r, mode.SignUp)))
}

func (h *authHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, false)
}

func (h *authHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, true)
}

func (h *authHandler) submit(w http.ResponseWriter, r *http.Request, signUp bool) {
	props := h.props(r, signUp)
	password := r.FormValue("password")

	// Checked here so a short password never reaches the auth service.
	if utf8.RuneCountInString(password) < h.minPasswordLength {
		props.Error = printer(r).Sprintf(i18n.AuthWeakPassword, h.minPasswordLength)
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Auth(props))
		return
	}

	var sess *model.Session
	var err error
	if signUp {
		sess, err = h.authService.SignUp(r.Context(), props.Email, password)
	} else {
		sess, err = h.authService.SignInWithPassword(r.Context(), props.Email, password)
	}
	if err != nil {
		slog.Warn("authentication failed", "error", err, "email", props.Email, "sign_up", signUp)
		props.Error = i18n.AuthText(printer(r), err, h.minPasswordLength)
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Auth(props))
		return
	}

	h.authService.SetJWTCookie(w, sess)
	slog.Info("user authenticated", "user_id", sess.UserID, "sign_up", signUp)

	if signUp {
		http.Redirect(w, r, "/app/goals/new?welcome=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(service.AuthCookieName)
	if err == nil && cookie.Value != "" {
		err = h.authService.SignOut(r.Context(), cookie.Value)
		if err != nil {
			slog.Warn("sign out failed", "error", err)
		}
	}

	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmEmail handles the link from the sign-up confirmation email.
func (h *authHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	props := pages.AuthProps{MinPasswordLength: h.minPasswordLength}

	user, err := h.authService.ConfirmEmail(r.Context(), r.PathValue("token"))
	if err != nil {
		slog.Warn("email confirmation failed", "error", err)
		props.Error = msg(r, i18n.AuthConfirmInvalid)
		ui.RenderStatus(w, r, http.StatusBadRequest, pages.Auth(props))
		return
	}

	props.Email = user.Email
	props.Notice = msg(r, i18n.AuthEmailConfirmed)
	ui.Render(w, r, pages.Auth(props))
}
