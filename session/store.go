package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/users"
)

// Resolver is the slice of the backend client the store depends on.
// *backend.Client satisfies it.
type Resolver interface {
	Login(ctx context.Context, email, password string) (string, map[string]any, error)
	CurrentUser(ctx context.Context, token string) (*users.User, error)
}

// entry tracks the resolution state for one token value.
type entry struct {
	user     *users.User
	errMsg   string
	resolved bool          // bootstrap completed at least once
	inflight chan struct{} // non-nil while a who-am-I fetch is outstanding
}

// Store resolves tokens to users and caches the result per token value, so
// that a single token change triggers at most one bootstrap fetch no matter
// how many requests race on it.
type Store struct {
	resolver Resolver

	mu      sync.Mutex
	entries map[string]*entry
}

// Option modifies a Store during construction.
type Option func(*Store)

func NewStore(resolver Resolver, options ...Option) (*Store, error) {
	if resolver == nil {
		return nil, errors.New("[NewStore] resolver is required")
	}
	s := &Store{
		resolver: resolver,
		entries:  make(map[string]*entry),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login authenticates the credentials and resolves the resulting session's
// user before returning, so callers never make a navigation decision while
// the role is still unknown. The raw login payload is returned for callers
// that need extra fields. On any failure no partial session state survives.
func (s *Store) Login(ctx context.Context, email, password string) (string, map[string]any, error) {
	if err := users.ValidateCredentials(email, password); err != nil {
		return "", nil, err
	}

	token, raw, err := s.resolver.Login(ctx, email, password)
	if err != nil {
		log.Debug().Str("email", email).Err(err).Msg("login rejected")
		return "", nil, errors.Wrap(err, "[Store.Login] authenticate")
	}

	if _, err := s.RefreshCurrentUser(ctx, token); err != nil {
		s.Invalidate(token)
		return "", nil, errors.Wrap(err, "[Store.Login] resolve user")
	}
	return token, raw, nil
}

// Resolve returns the session for token, performing the bootstrap fetch if
// this token value has not been resolved yet. Subsequent calls reuse the
// cached resolution; concurrent calls share a single fetch.
func (s *Store) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, nil
	}

	s.mu.Lock()
	e := s.entries[token]
	if e != nil && e.resolved && e.inflight == nil {
		s.mu.Unlock()
		return s.Snapshot(token), nil
	}
	s.mu.Unlock()

	if _, err := s.RefreshCurrentUser(ctx, token); err != nil {
		return Session{}, err
	}
	return s.Snapshot(token), nil
}

// RefreshCurrentUser fetches the "who am I" endpoint for token and updates
// the cached user. A missing token is a no-op returning absent. A response
// with no usable user clears the cached user but keeps the token: only an
// explicit 401 destroys the credential, through the backend adapter's
// global policy. Re-entrant calls while a fetch is outstanding join it
// instead of issuing a duplicate request.
func (s *Store) RefreshCurrentUser(ctx context.Context, token string) (*users.User, error) {
	if token == "" {
		return nil, nil
	}

	s.mu.Lock()
	e := s.entries[token]
	if e == nil {
		e = &entry{}
		s.entries[token] = e
	}
	if e.inflight != nil {
		done := e.inflight
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		cur := s.entries[token]
		if cur == nil {
			// The token was invalidated while we waited.
			return nil, apperrors.ErrSessionExpired
		}
		if !cur.resolved && cur.errMsg != "" {
			return nil, errors.New(cur.errMsg)
		}
		return cur.user, nil
	}
	e.inflight = make(chan struct{})
	s.mu.Unlock()

	user, err := s.resolver.CurrentUser(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e.inflight != nil {
		close(e.inflight)
		e.inflight = nil
	}
	if s.entries[token] != e {
		// Invalidated while the fetch was in flight; discard the result
		// rather than resurrecting a purged session.
		return nil, apperrors.ErrSessionExpired
	}
	if err != nil {
		// Transient failures leave the cached state untouched so the next
		// call retries; a 401 has already purged the entry via Invalidate.
		e.errMsg = err.Error()
		return nil, errors.Wrap(err, "[Store.RefreshCurrentUser] who am I")
	}
	e.user = user
	e.resolved = true
	e.errMsg = ""
	if user == nil {
		log.Warn().Msg("who am I returned no usable user, clearing user but keeping token")
	}
	return user, nil
}

// Logout clears the error, user, and cached resolution for token. Callers
// are responsible for clearing the cookie and navigating away.
func (s *Store) Logout(token string) {
	s.Invalidate(token)
}

// Invalidate drops all state for token. Registered as the backend adapter's
// 401 hook, so an expired credential is purged no matter which call
// discovered it.
func (s *Store) Invalidate(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.entries[token]; e != nil && e.inflight != nil {
		close(e.inflight)
		e.inflight = nil
	}
	delete(s.entries, token)
}

// Snapshot returns the current session state for token without triggering
// any fetch. An unresolved token reports Loading.
func (s *Store) Snapshot(token string) Session {
	if token == "" {
		return Session{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[token]
	if e == nil || !e.resolved || e.inflight != nil {
		return Session{Token: token, Loading: true}
	}
	sess := Session{Token: token, User: e.user, Err: e.errMsg}
	if e.user != nil {
		sess.Role = users.NormalizeRole(e.user.Role)
	}
	return sess
}
