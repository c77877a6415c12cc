package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/styledecor/styledecor-web/users"
)

//go:embed templates/*
var templateFiles embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

// parsePage parses one page template together with the shared layout.
// Pages define a "content" block rendered inside the layout. Parsing happens
// once, at handler construction; a missing or broken template is a
// programming error and panics at startup.
func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name))
}

func (s *Server) renderPage(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("failed to render template")
	}
}

// basePageData carries the fields the layout needs on every page.
type basePageData struct {
	AppName  string
	UserName string
	Role     string
	Error    string
}

func (s *Server) basePage(userName, role, errorMsg string) basePageData {
	return basePageData{
		AppName:  s.config.GetAppName(),
		UserName: userName,
		Role:     role,
		Error:    errorMsg,
	}
}

type errorPageData struct {
	basePageData
	Message string
}

func (s *Server) renderErrorPage(w http.ResponseWriter, status int, message string) {
	s.renderPage(w, errorTmpl, status, errorPageData{
		basePageData: s.basePage("", "", ""),
		Message:      message,
	})
}

// renderCheckingPage is the "verifying access" placeholder shown while a
// session bootstrap is still in flight. It instructs the browser to retry.
func (s *Server) renderCheckingPage(w http.ResponseWriter) {
	w.Header().Set("Refresh", "1")
	s.renderPage(w, checkingTmpl, http.StatusOK, s.basePage("", "", ""))
}

var (
	errorTmpl    = parsePage("error.html")
	checkingTmpl = parsePage("checking.html")
)

func displayName(u *users.User) string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
