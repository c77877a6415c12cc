package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
)

// handleBackendError maps a backend failure to the right page, honoring the
// global session-expiry policy. Returns true when the response has been
// written and the handler should stop.
func (s *Server) handleBackendError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case apperrors.Is(err, apperrors.ErrSessionExpired):
		// The session store has already purged the token; finish the job
		// browser-side and send the user back to login.
		s.clearTokenCookie(w)
		s.redirectToLogin(w, r, r.URL.RequestURI(), "Session expired")
	case apperrors.Is(err, apperrors.ErrNotFound):
		s.renderErrorPage(w, http.StatusNotFound, "We could not find what you were looking for.")
	case apperrors.Is(err, apperrors.ErrBackendTimeout):
		log.Err(err).Str("path", r.URL.Path).Msg("backend timed out")
		s.renderErrorPage(w, http.StatusGatewayTimeout, "The service is taking too long to respond. Please try again.")
	default:
		log.Err(err).Str("path", r.URL.Path).Msg("backend call failed")
		s.renderErrorPage(w, http.StatusBadGateway, "Something went wrong talking to the service. Please try again.")
	}
	return true
}
