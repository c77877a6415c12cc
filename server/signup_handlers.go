package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/styledecor/styledecor-web/backend"
	"github.com/styledecor/styledecor-web/internal/metrics"
	"github.com/styledecor/styledecor-web/users"
)

// SignupPageData contains data for rendering the signup page
type SignupPageData struct {
	basePageData
	From  string
	Name  string
	Email string
}

// SignupPageHandler displays the registration page (GET /signup)
func (s *Server) SignupPageHandler() http.HandlerFunc {
	tmpl := parsePage("signup.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := SignupPageData{
			basePageData: s.basePage("", "", r.URL.Query().Get("error")),
			From:         sanitizeDestination(r.URL.Query().Get("from")),
			Name:         r.URL.Query().Get("name"),
			Email:        r.URL.Query().Get("email"),
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// SignupSubmissionHandler creates the account via the backend, then logs in
// with the same credentials and joins the normal post-login redirect logic
// (POST /auth/signup).
func (s *Server) SignupSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		photoURL := strings.TrimSpace(r.FormValue("photoUrl"))
		from := sanitizeDestination(r.FormValue("from"))

		if err := users.ValidateSignup(name, email, password); err != nil {
			s.renderSignupError(w, r, err.Error(), name, email, from)
			return
		}

		if _, err := s.backend.UpsertUser(r.Context(), "", backend.UpsertUserRequest{
			Name:     name,
			Email:    email,
			Password: password,
			PhotoURL: photoURL,
		}); err != nil {
			log.Err(err).Str("email", email).Msg("signup failed")
			s.renderSignupError(w, r, "Could not create your account. Please try again.", name, email, from)
			return
		}

		token, _, err := s.sessions.Login(r.Context(), email, password)
		if err != nil {
			// Account exists but login failed; fall back to the login page.
			log.Err(err).Str("email", email).Msg("post-signup login failed")
			s.renderLoginError(w, r, "Account created, please sign in", email, from)
			return
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()

		sess := s.sessions.Snapshot(token)
		s.setTokenCookie(w, token)
		s.completeLogin(w, r, sess.Role, from)
	}
}

func (s *Server) renderSignupError(w http.ResponseWriter, r *http.Request, errorMsg, name, email, from string) {
	params := url.Values{}
	params.Set("error", errorMsg)
	if name != "" {
		params.Set("name", name)
	}
	if email != "" {
		params.Set("email", email)
	}
	if from != "" {
		params.Set("from", from)
	}
	http.Redirect(w, r, RouteSignup+"?"+params.Encode(), http.StatusSeeOther)
}
