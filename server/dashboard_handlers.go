package server

import (
	"net/http"

	"github.com/styledecor/styledecor-web/backend"
	"github.com/styledecor/styledecor-web/users"
)

// DecoratorDashboardPageData backs the decorator work queue.
type DecoratorDashboardPageData struct {
	basePageData
	Bookings  []backend.Booking
	Assigned  int
	Completed int
}

// DecoratorDashboardHandler renders the decorator's assigned work
// (GET /dashboard/decorator)
func (s *Server) DecoratorDashboardHandler() http.HandlerFunc {
	tmpl := parsePage("decorator_dashboard.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		bookings, err := s.backend.Bookings(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := DecoratorDashboardPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, r.URL.Query().Get("error")),
			Bookings:     bookings,
		}
		for _, b := range bookings {
			switch b.Status {
			case backend.BookingAssigned:
				data.Assigned++
			case backend.BookingCompleted:
				data.Completed++
			}
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// decoratorTransitions lists the statuses a decorator may move a booking to.
var decoratorTransitions = map[string]bool{
	backend.BookingAssigned:  true,
	backend.BookingCompleted: true,
}

// DecoratorStatusHandler moves an assigned booking through its lifecycle
// (POST /dashboard/decorator/bookings/{id}/status)
func (s *Server) DecoratorStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		status := r.FormValue("status")
		if !decoratorTransitions[status] {
			http.Redirect(w, r, RouteDecoratorDashboard+"?error=Invalid+status", http.StatusSeeOther)
			return
		}

		err := s.backend.UpdateBookingStatus(r.Context(), sess.Token, r.PathValue("id"), status)
		if s.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, RouteDecoratorDashboard, http.StatusSeeOther)
	}
}

// AdminDashboardPageData backs the admin overview.
type AdminDashboardPageData struct {
	basePageData
	Bookings     []backend.Booking
	PendingApps  []backend.DecoratorApplication
	TotalRevenue float64
}

// AdminDashboardHandler renders the admin overview (GET /dashboard/admin)
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	tmpl := parsePage("admin_dashboard.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		bookings, err := s.backend.AdminBookings(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}
		apps, err := s.backend.PendingDecorators(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := AdminDashboardPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Bookings:     bookings,
			PendingApps:  apps,
		}
		for _, b := range bookings {
			if b.PaymentStatus == "paid" {
				data.TotalRevenue += b.Amount
			}
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// AdminBookingsPageData backs the full booking list with assignment controls.
type AdminBookingsPageData struct {
	basePageData
	Bookings   []backend.Booking
	Decorators []users.User
}

// AdminBookingsHandler lists every booking with assignment controls
// (GET /dashboard/admin/bookings)
func (s *Server) AdminBookingsHandler() http.HandlerFunc {
	tmpl := parsePage("admin_bookings.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		bookings, err := s.backend.AdminBookings(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}
		decorators, err := s.backend.Decorators(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := AdminBookingsPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, r.URL.Query().Get("error")),
			Bookings:     bookings,
			Decorators:   decorators,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// AdminDecoratorsPageData backs the application review page.
type AdminDecoratorsPageData struct {
	basePageData
	Pending    []backend.DecoratorApplication
	Decorators []users.User
}

// AdminDecoratorsHandler lists pending applications and approved decorators
// (GET /dashboard/admin/decorators)
func (s *Server) AdminDecoratorsHandler() http.HandlerFunc {
	tmpl := parsePage("admin_decorators.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		pending, err := s.backend.PendingDecorators(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}
		decorators, err := s.backend.Decorators(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := AdminDecoratorsPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Pending:      pending,
			Decorators:   decorators,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// AdminApproveHandler approves a decorator application
// (POST /dashboard/admin/decorators/{id}/approve)
func (s *Server) AdminApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		err := s.backend.ApproveDecorator(r.Context(), sess.Token, r.PathValue("id"))
		if s.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, RouteAdminDecorators, http.StatusSeeOther)
	}
}

// AdminAssignHandler attaches a decorator to a booking
// (POST /dashboard/admin/bookings/{id}/assign)
func (s *Server) AdminAssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		decoratorEmail := r.FormValue("decoratorEmail")
		if decoratorEmail == "" {
			http.Redirect(w, r, RouteAdminBookings+"?error=Pick+a+decorator", http.StatusSeeOther)
			return
		}

		err := s.backend.AssignDecorator(r.Context(), sess.Token, r.PathValue("id"), decoratorEmail)
		if s.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, RouteAdminBookings, http.StatusSeeOther)
	}
}
