package server

import (
	"net/http"
	"strings"

	"github.com/styledecor/styledecor-web/backend"
)

// ApplyPageData backs the decorator application form.
type ApplyPageData struct {
	basePageData
	Name      string
	Email     string
	Submitted bool
}

// ApplyPageHandler renders the decorator application form (GET /apply)
func (s *Server) ApplyPageHandler() http.HandlerFunc {
	tmpl := parsePage("apply.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		data := ApplyPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, r.URL.Query().Get("error")),
			Name:         sess.User.Name,
			Email:        sess.User.Email,
			Submitted:    r.URL.Query().Get("submitted") == "1",
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// ApplySubmissionHandler submits a decorator application (POST /apply)
func (s *Server) ApplySubmissionHandler() http.HandlerFunc {
	tmpl := parsePage("apply.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		app := backend.DecoratorApplication{
			Name:       strings.TrimSpace(r.FormValue("name")),
			Email:      sess.User.Email,
			Phone:      strings.TrimSpace(r.FormValue("phone")),
			Experience: strings.TrimSpace(r.FormValue("experience")),
			Portfolio:  strings.TrimSpace(r.FormValue("portfolio")),
			Bio:        strings.TrimSpace(r.FormValue("bio")),
		}
		if app.Name == "" || app.Phone == "" || app.Experience == "" || app.Bio == "" {
			data := ApplyPageData{
				basePageData: s.basePage(displayName(sess.User), sess.Role, "Please fill in all required fields"),
				Name:         app.Name,
				Email:        app.Email,
			}
			s.renderPage(w, tmpl, http.StatusUnprocessableEntity, data)
			return
		}

		if _, err := s.backend.ApplyDecorator(r.Context(), sess.Token, app); s.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, RouteApply+"?submitted=1", http.StatusSeeOther)
	}
}
