package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/styledecor/styledecor-web/guard"
	"github.com/styledecor/styledecor-web/session"
	"github.com/styledecor/styledecor-web/users"
)

func userSession(role users.Role) session.Session {
	return session.Session{
		Token: "T1",
		User:  &users.User{ID: "u1", Email: "a@b.com", Role: role},
		Role:  role,
	}
}

func TestEvaluateDecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		sess     session.Session
		required users.Role
		want     guard.Decision
	}{
		{"loading with no user", session.Session{Loading: true}, "", guard.DecisionChecking},
		{"loading with user still checks", session.Session{Loading: true, Token: "T1"}, users.RoleAdmin, guard.DecisionChecking},
		{"no user", session.Session{}, "", guard.DecisionUnauthenticated},
		{"no user with required role", session.Session{Token: "T1"}, users.RoleAdmin, guard.DecisionUnauthenticated},
		{"user, generic guard", userSession(users.RoleUser), "", guard.DecisionAuthorized},
		{"user, matching role", userSession(users.RoleDecorator), users.RoleDecorator, guard.DecisionAuthorized},
		{"user, wrong role", userSession(users.RoleUser), users.RoleAdmin, guard.DecisionForbidden},
		{"admin on decorator area", userSession(users.RoleAdmin), users.RoleDecorator, guard.DecisionForbidden},
		{"roleless user on gated area", userSession(""), users.RoleUser, guard.DecisionForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := guard.Evaluate(tc.sess, tc.required, "/somewhere")
			assert.Equal(t, tc.want, res.Decision)
		})
	}
}

func TestEvaluateNeverRedirectsWhileLoading(t *testing.T) {
	// A persisted token from a prior session must not be flash-redirected
	// before the bootstrap fetch has had a chance to resolve it.
	res := guard.Evaluate(session.Session{Token: "T1", Loading: true}, users.RoleAdmin, guard.AdminRoot)
	assert.Equal(t, guard.DecisionChecking, res.Decision)
}

func TestEvaluateCarriesRedirectContext(t *testing.T) {
	res := guard.Evaluate(userSession(users.RoleUser), users.RoleAdmin, "/dashboard/admin/bookings")

	assert.Equal(t, guard.DecisionForbidden, res.Decision)
	assert.Equal(t, users.RoleAdmin, res.RequiredRole)
	assert.Equal(t, users.RoleUser, res.ActualRole)
	assert.Equal(t, "/dashboard/admin/bookings", res.From)
}

func TestRequiredRoleForPath(t *testing.T) {
	tests := []struct {
		path string
		want users.Role
	}{
		{guard.AdminRoot, users.RoleAdmin},
		{guard.AdminRoot + "/bookings", users.RoleAdmin},
		{guard.DecoratorRoot, users.RoleDecorator},
		{guard.DecoratorRoot + "/assigned", users.RoleDecorator},
		{guard.UserRoot, users.RoleUser},
		{guard.UserRoot + "/bookings", users.RoleUser},
		{"/dashboard/adminX", ""},
		{"/services", ""},
		{"/", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, guard.RequiredRoleForPath(tc.path), tc.path)
	}
}

func TestDashboardForRole(t *testing.T) {
	assert.Equal(t, guard.AdminRoot, guard.DashboardForRole(users.RoleAdmin))
	assert.Equal(t, guard.DecoratorRoot, guard.DashboardForRole(users.RoleDecorator))
	assert.Equal(t, guard.UserRoot, guard.DashboardForRole(users.RoleUser))
	assert.Equal(t, guard.UserRoot, guard.DashboardForRole(""))
	assert.Equal(t, guard.UserRoot, guard.DashboardForRole("moderator"))
}
