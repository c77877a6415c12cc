package guard

import (
	"strings"

	"github.com/styledecor/styledecor-web/users"
)

// Dashboard roots. Every path under a root requires the matching role.
// This table is the single source of truth for the prefix-to-role contract;
// both the guard middleware and the post-login redirect consult it, so the
// two can never disagree.
const (
	AdminRoot     = "/dashboard/admin"
	DecoratorRoot = "/dashboard/decorator"
	UserRoot      = "/dashboard/user"
)

var rolesByPrefix = []struct {
	prefix string
	role   users.Role
}{
	{AdminRoot, users.RoleAdmin},
	{DecoratorRoot, users.RoleDecorator},
	{UserRoot, users.RoleUser},
}

// RequiredRoleForPath returns the role a path demands, or "" when the path
// is not role-gated.
func RequiredRoleForPath(path string) users.Role {
	for _, entry := range rolesByPrefix {
		if path == entry.prefix || strings.HasPrefix(path, entry.prefix+"/") {
			return entry.role
		}
	}
	return ""
}

// DashboardForRole maps a resolved role to its default dashboard root.
// Anything that is not admin or decorator lands on the user dashboard.
func DashboardForRole(role users.Role) string {
	switch role {
	case users.RoleAdmin:
		return AdminRoot
	case users.RoleDecorator:
		return DecoratorRoot
	default:
		return UserRoot
	}
}
