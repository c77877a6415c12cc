package server

import (
	"net/http"

	"github.com/styledecor/styledecor-web/guard"
)

// UnauthorizedPageData explains a role mismatch and offers a role-correct
// destination.
type UnauthorizedPageData struct {
	basePageData
	RequiredRole string
	ActualRole   string
	From         string
	Dashboard    string // the role-correct destination to offer instead
}

// UnauthorizedHandler renders the role-mismatch page (GET /unauthorized)
func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	tmpl := parsePage("unauthorized.html")

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		actual := q.Get("actual")
		data := UnauthorizedPageData{
			basePageData: s.basePage("", actual, ""),
			RequiredRole: q.Get("required"),
			ActualRole:   actual,
			From:         sanitizeDestination(q.Get("from")),
			Dashboard:    guard.DashboardForRole(actual),
		}
		s.renderPage(w, tmpl, http.StatusForbidden, data)
	}
}
