package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/styledecor/styledecor-web/internal/metrics"
	"github.com/styledecor/styledecor-web/users"
)

func (s *Server) initRoutes() {
	// Public pages
	s.RegisterRouteFunc("GET /{$}", s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteServices, s.ServicesHandler())
	s.RegisterRouteFunc("GET "+RouteServiceDetail, s.ServiceDetailHandler())

	// LOGIN / SIGNUP
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LoginSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())
	s.RegisterRouteFunc("GET "+RouteSignup, s.SignupPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthSignup, s.SignupSubmissionHandler())

	if s.sso != nil {
		s.RegisterRouteFunc("GET "+RouteSSOStart, s.SSOStartHandler())
		s.RegisterRouteFunc("GET "+RouteSSOCallback, s.SSOCallbackHandler())
	}

	s.RegisterRouteFunc("GET "+RouteUnauthorized, s.UnauthorizedHandler())

	// Decorator application: requires a session, any role
	s.RegisterRouteHandler("GET "+RouteApply, ChainMiddleware(s.ApplyPageHandler(), s.HTMLMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteApply, ChainMiddleware(s.ApplySubmissionHandler(), s.HTMLMiddleware(s.RequireAuth())...))

	// User dashboard
	s.RegisterRouteHandler("GET "+RouteUserDashboard, ChainMiddleware(s.UserDashboardHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))
	s.RegisterRouteHandler("GET "+RouteUserBookings, ChainMiddleware(s.UserBookingsHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))
	s.RegisterRouteHandler("GET "+RouteBookService, ChainMiddleware(s.BookServicePageHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))
	s.RegisterRouteHandler("POST "+RouteBookService, ChainMiddleware(s.BookServiceSubmissionHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))
	s.RegisterRouteHandler("POST "+RouteCancelBooking, ChainMiddleware(s.CancelBookingHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))
	s.RegisterRouteHandler("GET "+RoutePayment, ChainMiddleware(s.PaymentPageHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))
	s.RegisterRouteHandler("POST "+RoutePayConfirm, ChainMiddleware(s.PaymentConfirmHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleUser))...))

	// Decorator dashboard
	s.RegisterRouteHandler("GET "+RouteDecoratorDashboard, ChainMiddleware(s.DecoratorDashboardHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleDecorator))...))
	s.RegisterRouteHandler("POST "+RouteDecoratorStatus, ChainMiddleware(s.DecoratorStatusHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleDecorator))...))

	// Admin dashboard
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("GET "+RouteAdminBookings, ChainMiddleware(s.AdminBookingsHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("GET "+RouteAdminDecorators, ChainMiddleware(s.AdminDecoratorsHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("POST "+RouteAdminApprove, ChainMiddleware(s.AdminApproveHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteHandler("POST "+RouteAdminAssign, ChainMiddleware(s.AdminAssignHandler(), s.HTMLMiddleware(s.RequireRole(users.RoleAdmin))...))

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
}
