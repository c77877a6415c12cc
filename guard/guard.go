// Package guard holds the route-guarding decision procedure. It is pure:
// given session state and a required role it resolves deterministically to
// one of four decisions and never errors. HTTP concerns (redirects, pages)
// live in the server package.
package guard

import (
	"github.com/styledecor/styledecor-web/internal/metrics"
	"github.com/styledecor/styledecor-web/session"
	"github.com/styledecor/styledecor-web/users"
)

type Decision int

const (
	// DecisionChecking: session bootstrap has not finished; render a
	// "verifying access" placeholder, never a redirect.
	DecisionChecking Decision = iota
	// DecisionUnauthenticated: no user; redirect to login carrying the
	// intended destination.
	DecisionUnauthenticated
	// DecisionForbidden: authenticated but the wrong role for this
	// destination; redirect to the unauthorized view.
	DecisionForbidden
	// DecisionAuthorized: render the protected content.
	DecisionAuthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionChecking:
		return "checking"
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionForbidden:
		return "forbidden"
	case DecisionAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Result is a guard decision plus the context the redirect targets need.
type Result struct {
	Decision     Decision
	RequiredRole users.Role
	ActualRole   users.Role
	From         string
}

// Evaluate gates access to a protected view. requiredRole is empty for the
// generic "requires authentication" guard. from is the intended destination,
// passed through so the login flow can return the user there.
//
// While the session is still loading no redirect is ever issued, even if no
// user is attached: a persisted token may still resolve into a session.
func Evaluate(sess session.Session, requiredRole users.Role, from string) Result {
	res := Result{RequiredRole: requiredRole, ActualRole: sess.Role, From: from}

	switch {
	case sess.Loading:
		res.Decision = DecisionChecking
	case !sess.Authenticated():
		res.Decision = DecisionUnauthenticated
	case requiredRole != "" && sess.Role != requiredRole:
		res.Decision = DecisionForbidden
	default:
		res.Decision = DecisionAuthorized
	}

	metrics.GuardDecisionsTotal.WithLabelValues(res.Decision.String()).Inc()
	return res
}
