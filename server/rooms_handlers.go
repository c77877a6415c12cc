package server

import (
	"net/http"

	"github.com/styledecor/styledecor-web/backend"
)

// IndexPageData backs the landing page.
type IndexPageData struct {
	basePageData
	Featured   []backend.Room
	MapTileURL string
}

// IndexHandler renders the landing page with a few featured services (GET /)
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl := parsePage("index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := s.resolveSession(r)

		// The landing page degrades gracefully when the catalog is down.
		rooms, err := s.backend.Rooms(r.Context())
		if err != nil {
			rooms = nil
		}
		if len(rooms) > 3 {
			rooms = rooms[:3]
		}

		data := IndexPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Featured:     rooms,
			MapTileURL:   s.config.GetMapTileURL(),
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// ServicesPageData backs the catalog listing.
type ServicesPageData struct {
	basePageData
	Rooms []backend.Room
}

// ServicesHandler lists the decoration service catalog (GET /services)
func (s *Server) ServicesHandler() http.HandlerFunc {
	tmpl := parsePage("services.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := s.resolveSession(r)

		rooms, err := s.backend.Rooms(r.Context())
		if s.handleBackendError(w, r, err) {
			return
		}

		data := ServicesPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Rooms:        rooms,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// ServiceDetailPageData backs one catalog entry.
type ServiceDetailPageData struct {
	basePageData
	Room       backend.Room
	CanBook    bool
	MapTileURL string
}

// ServiceDetailHandler renders one service (GET /services/{id})
func (s *Server) ServiceDetailHandler() http.HandlerFunc {
	tmpl := parsePage("service_detail.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := s.resolveSession(r)

		room, err := s.backend.Room(r.Context(), r.PathValue("id"))
		if s.handleBackendError(w, r, err) {
			return
		}

		data := ServiceDetailPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Room:         *room,
			CanBook:      sess.Authenticated(),
			MapTileURL:   s.config.GetMapTileURL(),
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}
