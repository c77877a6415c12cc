package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/styledecor/styledecor-web/backend"
	"github.com/styledecor/styledecor-web/internal/config"
	"github.com/styledecor/styledecor-web/session"
)

// Server is the styleDecor web gateway: it renders the marketing pages and
// the role-gated dashboards, and brokers every data access to the remote
// REST backend through one client.
type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	backend  *backend.Client
	sessions *session.Store

	sso *ssoAuthenticator // nil when OIDC login is not configured
}

// Option modifies a Server during construction.
type Option func(*Server)

// WithBackendClient injects a pre-built backend client (primarily for
// testing against an httptest server).
func WithBackendClient(client *backend.Client) Option {
	return func(s *Server) {
		s.backend = client
	}
}

func New(cfg config.Config, options ...Option) (*Server, error) {
	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		env:    cfg.GetEnv(),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.backend == nil {
		s.backend = backend.New(cfg.GetBackendBaseURL())
	}

	store, err := session.NewStore(s.backend)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session store: %w", err)
	}
	s.sessions = store

	// Global 401 policy: any unauthorized backend response purges the
	// session for that token, regardless of which call discovered it.
	s.backend.SetUnauthorizedHook(store.Invalidate)

	if cfg.SSOEnabled() {
		s.sso = newSSOAuthenticator(cfg)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Sessions exposes the session store for tests that need to inspect state.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
