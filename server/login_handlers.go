package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/styledecor/styledecor-web/guard"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/internal/metrics"
	"github.com/styledecor/styledecor-web/users"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	basePageData
	From       string // intended destination, carried through the form
	Email      string // preserve email on error
	SSOEnabled bool
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl := parsePage("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			basePageData: s.basePage("", "", r.URL.Query().Get("error")),
			From:         sanitizeDestination(r.URL.Query().Get("from")),
			Email:        r.URL.Query().Get("email"),
			SSOEnabled:   s.sso != nil,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// LoginSubmissionHandler processes the login form (POST /auth/login) and
// decides where to send the user afterward:
//
//  1. both fields present, checked locally before any network call
//  2. authenticate and resolve the role through the session store
//  3. role mismatch against the intended destination's prefix requirement
//     goes to the unauthorized view, not to the destination
//  4. otherwise the intended destination, or the role's default dashboard
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		from := sanitizeDestination(r.FormValue("from"))

		if err := users.ValidateCredentials(email, password); err != nil {
			metrics.LoginsTotal.WithLabelValues("validation_failed").Inc()
			s.renderLoginError(w, r, "Email and password are required", email, from)
			return
		}

		token, _, err := s.sessions.Login(r.Context(), email, password)
		if err != nil {
			// Only an explicit credential rejection blames the user; a
			// timeout or backend failure must not read as a wrong password.
			if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
				metrics.LoginsTotal.WithLabelValues("rejected").Inc()
				log.Debug().Str("email", email).Err(err).Msg("login rejected")
				s.renderLoginError(w, r, "Invalid email or password", email, from)
				return
			}
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			log.Err(err).Str("email", email).Msg("login failed against the backend")
			s.renderLoginError(w, r, "The service is unavailable right now. Please try again.", email, from)
			return
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()

		// Login has fully resolved the user by now; the role is known.
		sess := s.sessions.Snapshot(token)
		s.setTokenCookie(w, token)

		s.completeLogin(w, r, sess.Role, from)
	}
}

// completeLogin performs the post-login navigation decision shared by the
// password, signup, and SSO entry points.
func (s *Server) completeLogin(w http.ResponseWriter, r *http.Request, role users.Role, from string) {
	if from != "" {
		if required := guard.RequiredRoleForPath(from); required != "" && required != role {
			s.redirectToUnauthorized(w, r, guard.Result{
				Decision:     guard.DecisionForbidden,
				RequiredRole: required,
				ActualRole:   role,
				From:         from,
			})
			return
		}
		http.Redirect(w, r, from, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, guard.DashboardForRole(role), http.StatusSeeOther)
}

// LogoutHandler clears the session and the persisted token (GET /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := s.tokenFromRequest(r); token != "" {
			s.sessions.Logout(token)
		}
		s.clearTokenCookie(w)
		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// renderLoginError redirects back to the login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email, from string) {
	params := url.Values{}
	params.Set("error", errorMsg)
	if email != "" {
		params.Set("email", email)
	}
	if from != "" {
		params.Set("from", from)
	}
	http.Redirect(w, r, RouteLogin+"?"+params.Encode(), http.StatusSeeOther)
}

// sanitizeDestination keeps redirect targets on this site. Anything that is
// not a local absolute path is dropped.
func sanitizeDestination(from string) string {
	if from == "" {
		return ""
	}
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return ""
	}
	return from
}
