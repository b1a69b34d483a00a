package admin

import (
	"net/http"

	"github.com/grillshine/grillshine/pkg/logging"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "gs_admin_session"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// RequireSession redirects to the login form unless the request carries a
// valid session cookie. No detail about the failure is leaked.
func RequireSession(sessions SessionStore, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			ok, err := sessions.Exists(r.Context(), cookie.Value)
			if err != nil {
				logger.Error("session lookup failed", "error", err)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
