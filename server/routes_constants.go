package server

import "github.com/styledecor/styledecor-web/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos.
// Role-gated dashboard paths are built from the guard package's roots so the
// prefix-to-role contract stays in one place.
const (
	// Public pages
	RouteIndex         = "/"
	RouteServices      = "/services"
	RouteServiceDetail = "/services/{id}"

	// Auth Routes - Login, Logout, Signup
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"
	RouteSignup     = "/signup"
	RouteAuthSignup = "/auth/signup"

	// Auth Routes - SSO (optional, enabled via OIDC env config)
	RouteSSOStart    = "/auth/sso"
	RouteSSOCallback = "/auth/sso/callback"

	// Authorization
	RouteUnauthorized = "/unauthorized"

	// Decorator recruitment (any authenticated user may apply)
	RouteApply = "/apply"

	// User dashboard
	RouteUserDashboard = guard.UserRoot
	RouteUserBookings  = guard.UserRoot + "/bookings"
	RouteBookService   = guard.UserRoot + "/book/{roomID}"
	RouteCancelBooking = guard.UserRoot + "/bookings/{id}/cancel"
	RoutePayment       = guard.UserRoot + "/payment/{bookingID}"
	RoutePayConfirm    = guard.UserRoot + "/payment/{bookingID}/confirm"

	// Decorator dashboard
	RouteDecoratorDashboard = guard.DecoratorRoot
	RouteDecoratorStatus    = guard.DecoratorRoot + "/bookings/{id}/status"

	// Admin dashboard
	RouteAdminDashboard  = guard.AdminRoot
	RouteAdminBookings   = guard.AdminRoot + "/bookings"
	RouteAdminDecorators = guard.AdminRoot + "/decorators"
	RouteAdminApprove    = guard.AdminRoot + "/decorators/{id}/approve"
	RouteAdminAssign     = guard.AdminRoot + "/bookings/{id}/assign"

	// Operational
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)
