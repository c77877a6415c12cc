package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/styledecor/styledecor-web/guard"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/session"
	"github.com/styledecor/styledecor-web/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the resolved session for the request
const ContextKeySession ContextKey = "session"

// SessionFromContext returns the session a guard attached to the request.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ContextKeySession).(session.Session)
	return sess, ok
}

// RequireAuth gates a route on having any authenticated session.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return s.requireGuard("")
}

// RequireRole gates a route on a specific role. The role demanded here must
// agree with guard.RequiredRoleForPath for the route's path; both read the
// same prefix table.
func (s *Server) RequireRole(role users.Role) func(http.HandlerFunc) http.HandlerFunc {
	return s.requireGuard(role)
}

func (s *Server) requireGuard(role users.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			from := r.URL.RequestURI()

			sess, err := s.resolveSession(r)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrSessionExpired) {
					// Credential is dead: purge the cookie and start over
					// at the login page, keeping the destination.
					s.clearTokenCookie(w)
					s.redirectToLogin(w, r, from, "Session expired")
					return
				}
				log.Err(err).Str("path", r.URL.Path).Msg("session resolution failed")
				s.renderErrorPage(w, http.StatusBadGateway, "We could not verify your session. Please try again.")
				return
			}

			res := guard.Evaluate(sess, role, from)
			switch res.Decision {
			case guard.DecisionChecking:
				s.renderCheckingPage(w)
			case guard.DecisionUnauthenticated:
				s.redirectToLogin(w, r, from, "")
			case guard.DecisionForbidden:
				s.redirectToUnauthorized(w, r, res)
			case guard.DecisionAuthorized:
				ctx := context.WithValue(r.Context(), ContextKeySession, sess)
				next(w, r.WithContext(ctx))
			}
		}
	}
}

// resolveSession turns the request's token cookie into a session, performing
// the bootstrap fetch if this token has not been seen yet. With no cookie it
// returns the empty (unauthenticated) session.
func (s *Server) resolveSession(r *http.Request) (session.Session, error) {
	token := s.tokenFromRequest(r)
	if token == "" {
		return session.Session{}, nil
	}
	return s.sessions.Resolve(r.Context(), token)
}

func (s *Server) tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(s.config.GetTokenCookieName())
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setTokenCookie persists the bearer token across reloads. This cookie is
// the only durable client-side auth state; it is written here and by
// clearTokenCookie only.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetTokenCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetTokenCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request, from, errorMsg string) {
	params := url.Values{}
	if from != "" && from != RouteIndex {
		params.Set("from", from)
	}
	if errorMsg != "" {
		params.Set("error", errorMsg)
	}
	target := RouteLogin
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) redirectToUnauthorized(w http.ResponseWriter, r *http.Request, res guard.Result) {
	params := url.Values{}
	params.Set("required", res.RequiredRole)
	params.Set("actual", res.ActualRole)
	if res.From != "" {
		params.Set("from", res.From)
	}
	http.Redirect(w, r, RouteUnauthorized+"?"+params.Encode(), http.StatusSeeOther)
}
