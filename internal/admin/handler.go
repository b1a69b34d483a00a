package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grillshine/grillshine/internal/quotes"
	"github.com/grillshine/grillshine/pkg/logging"
)

// Handler serves the session-gated admin dashboard.
type Handler struct {
	repo          quotes.Repository
	sessions      SessionStore
	creds         *Credentials
	sessionTTL    time.Duration
	secureCookies bool
	logger        *logging.Logger
}

// HandlerConfig wires the admin handler's collaborators.
type HandlerConfig struct {
	Repo          quotes.Repository
	Sessions      SessionStore
	Credentials   *Credentials
	SessionTTL    time.Duration
	SecureCookies bool
	Logger        *logging.Logger
}

// NewHandler creates a new admin handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &Handler{
		repo:          cfg.Repo,
		sessions:      cfg.Sessions,
		creds:         cfg.Credentials,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
		logger:        cfg.Logger,
	}
}

// LoginForm handles GET /admin/login.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := loginTmpl.Execute(w, map[string]any{
		"Error": r.URL.Query().Get("error") != "",
	})
	if err != nil {
		h.logger.Error("failed to render login page", "error", err)
	}
}

// Login handles POST /admin/login. A failed check redirects back to the form
// without detail.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if !h.creds.Check(username, password) {
		h.logger.Warn("admin login rejected", "username", username)
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusSeeOther)
		return
	}

	token := uuid.NewString()
	if err := h.sessions.Create(r.Context(), token, h.sessionTTL); err != nil {
		h.logger.Error("failed to create session", "error", err)
		http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("admin logged in", "username", username)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles GET /admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to destroy session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// Dashboard handles GET /admin and GET /admin/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	subs, err := h.repo.List(r.Context(), 0)
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		http.Error(w, "failed to load submissions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = dashboardTmpl.Execute(w, map[string]any{
		"Submissions": subs,
		"Count":       len(subs),
	})
	if err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
	}
}

// Delete handles GET /admin/delete/{id} and redirects back to the dashboard.
// Deleting an id that is already gone is not an error.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid submission id", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		h.logger.Error("failed to delete submission", "error", err, "id", id)
		http.Error(w, "failed to delete submission", http.StatusInternalServerError)
		return
	}

	h.logger.Info("submission deleted", "id", id)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
