// Package session owns the authentication state derived from a bearer
// token: login, logout, and resolution of the current user. It is the single
// source of truth consulted by route guards and views; nothing else mutates
// auth state.
package session

import (
	"github.com/styledecor/styledecor-web/users"
)

// Session is a snapshot of one browser session's auth state.
//
// Invariants:
//   - User is never set without Token.
//   - Role is always the normalized role of User, never mutated on its own.
//   - Loading is true until the bootstrap fetch for this token has completed
//     or failed at least once.
type Session struct {
	Token   string
	User    *users.User
	Role    users.Role
	Loading bool
	Err     string
}

// Authenticated reports whether a resolved user is attached.
func (s Session) Authenticated() bool {
	return s.User != nil
}
