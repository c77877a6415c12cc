package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/styledecor/styledecor-web/backend"
	"github.com/styledecor/styledecor-web/internal/config"
	"github.com/styledecor/styledecor-web/internal/metrics"
	"golang.org/x/oauth2"
)

const (
	ssoStateCookie = "sso_state"
	ssoFromCookie  = "sso_from"
)

// ssoAuthenticator wraps the optional OIDC identity-provider login. The
// provider is contacted lazily on first use so the gateway starts cleanly
// when the identity provider is unreachable.
type ssoAuthenticator struct {
	cfg config.SSOConfig

	mu       sync.Mutex
	oauthCfg *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

func newSSOAuthenticator(cfg config.SSOConfig) *ssoAuthenticator {
	return &ssoAuthenticator{cfg: cfg}
}

func (a *ssoAuthenticator) init(ctx context.Context) (*oauth2.Config, *oidc.IDTokenVerifier, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.oauthCfg != nil {
		return a.oauthCfg, a.verifier, nil
	}

	provider, err := oidc.NewProvider(ctx, a.cfg.GetOIDCIssuer())
	if err != nil {
		return nil, nil, errors.Wrap(err, "[ssoAuthenticator.init] provider discovery")
	}

	a.oauthCfg = &oauth2.Config{
		ClientID:     a.cfg.GetOIDCClientID(),
		ClientSecret: a.cfg.GetOIDCClientSecret(),
		RedirectURL:  a.cfg.GetOIDCRedirectURL(),
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	a.verifier = provider.Verifier(&oidc.Config{ClientID: a.cfg.GetOIDCClientID()})
	return a.oauthCfg, a.verifier, nil
}

// SSOStartHandler redirects to the identity provider (GET /auth/sso)
func (s *Server) SSOStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oauthCfg, _, err := s.sso.init(r.Context())
		if err != nil {
			log.Err(err).Msg("sso provider unavailable")
			s.redirectToLogin(w, r, "", "Single sign-on is unavailable right now")
			return
		}

		state := uuid.New().String()
		s.setFlowCookie(w, ssoStateCookie, state)
		if from := sanitizeDestination(r.URL.Query().Get("from")); from != "" {
			s.setFlowCookie(w, ssoFromCookie, from)
		}

		http.Redirect(w, r, oauthCfg.AuthCodeURL(state), http.StatusSeeOther)
	}
}

// SSOCallbackHandler completes the provider round trip (GET /auth/sso/callback):
// verifies state and ID token locally, upserts the profile on the backend,
// exchanges the verified identity for a backend bearer token, and joins the
// normal post-login redirect logic.
func (s *Server) SSOCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oauthCfg, verifier, err := s.sso.init(r.Context())
		if err != nil {
			s.redirectToLogin(w, r, "", "Single sign-on is unavailable right now")
			return
		}

		stateCookie, err := r.Cookie(ssoStateCookie)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
			s.redirectToLogin(w, r, "", "Sign-in state mismatch, please try again")
			return
		}
		s.clearFlowCookie(w, ssoStateCookie)

		from := ""
		if fromCookie, err := r.Cookie(ssoFromCookie); err == nil {
			from = sanitizeDestination(fromCookie.Value)
			s.clearFlowCookie(w, ssoFromCookie)
		}

		oauthToken, err := oauthCfg.Exchange(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			log.Err(err).Msg("sso code exchange failed")
			s.redirectToLogin(w, r, from, "Sign-in failed, please try again")
			return
		}

		rawIDToken, ok := oauthToken.Extra("id_token").(string)
		if !ok {
			s.redirectToLogin(w, r, from, "Sign-in failed, please try again")
			return
		}
		idToken, err := verifier.Verify(r.Context(), rawIDToken)
		if err != nil {
			log.Err(err).Msg("sso id token rejected")
			s.redirectToLogin(w, r, from, "Sign-in failed, please try again")
			return
		}

		var claims struct {
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
			s.redirectToLogin(w, r, from, "Sign-in failed, please try again")
			return
		}

		// Keep the backend profile in sync with the provider identity.
		if _, err := s.backend.UpsertUser(r.Context(), "", backend.UpsertUserRequest{
			Name:     claims.Name,
			Email:    claims.Email,
			PhotoURL: claims.Picture,
		}); err != nil {
			log.Err(err).Str("email", claims.Email).Msg("sso profile upsert failed")
		}

		token, _, err := s.backend.LoginWithIDToken(r.Context(), claims.Email, rawIDToken)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			log.Err(err).Str("email", claims.Email).Msg("sso backend login failed")
			s.redirectToLogin(w, r, from, "Sign-in failed, please try again")
			return
		}

		sess, err := s.sessions.Resolve(r.Context(), token)
		if err != nil {
			s.redirectToLogin(w, r, from, "Sign-in failed, please try again")
			return
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()

		s.setTokenCookie(w, token)
		s.completeLogin(w, r, sess.Role, from)
	}
}

func (s *Server) setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearFlowCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}
