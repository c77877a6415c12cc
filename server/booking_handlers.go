package server

import (
	"net/http"
	"strings"

	"github.com/styledecor/styledecor-web/backend"
)

// UserDashboardPageData backs the customer dashboard landing page.
type UserDashboardPageData struct {
	basePageData
	Bookings []backend.Booking
	Pending  int
	Upcoming int
}

// UserDashboardHandler renders the customer dashboard (GET /dashboard/user)
func (s *Server) UserDashboardHandler() http.HandlerFunc {
	tmpl := parsePage("user_dashboard.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		bookings, err := s.backend.Bookings(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := UserDashboardPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Bookings:     bookings,
		}
		for _, b := range bookings {
			switch b.Status {
			case backend.BookingPending:
				data.Pending++
			case backend.BookingAssigned:
				data.Upcoming++
			}
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// UserBookingsPageData backs the customer booking list.
type UserBookingsPageData struct {
	basePageData
	Bookings []backend.Booking
}

// UserBookingsHandler lists the customer's bookings
// (GET /dashboard/user/bookings)
func (s *Server) UserBookingsHandler() http.HandlerFunc {
	tmpl := parsePage("user_bookings.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		bookings, err := s.backend.Bookings(r.Context(), sess.Token)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := UserBookingsPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, ""),
			Bookings:     bookings,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// BookingFormPageData backs the booking form for one service.
type BookingFormPageData struct {
	basePageData
	Room backend.Room
}

// BookServicePageHandler renders the booking form (GET /dashboard/user/book/{roomID})
func (s *Server) BookServicePageHandler() http.HandlerFunc {
	tmpl := parsePage("booking_form.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		room, err := s.backend.Room(r.Context(), r.PathValue("roomID"))
		if s.handleBackendError(w, r, err) {
			return
		}

		data := BookingFormPageData{
			basePageData: s.basePage(displayName(sess.User), sess.Role, r.URL.Query().Get("error")),
			Room:         *room,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// BookServiceSubmissionHandler creates the booking and moves on to payment
// (POST /dashboard/user/book/{roomID})
func (s *Server) BookServiceSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		roomID := r.PathValue("roomID")
		date := strings.TrimSpace(r.FormValue("date"))
		if date == "" {
			http.Redirect(w, r, bookingFormPath(roomID)+"?error=Please+pick+a+date", http.StatusSeeOther)
			return
		}

		room, err := s.backend.Room(r.Context(), roomID)
		if s.handleBackendError(w, r, err) {
			return
		}

		booking, err := s.backend.CreateBooking(r.Context(), sess.Token, backend.CreateBookingRequest{
			RoomID:    room.ID,
			RoomName:  room.Name,
			UserEmail: sess.User.Email,
			Date:      date,
			Amount:    room.Price,
		})
		if s.handleBackendError(w, r, err) {
			return
		}

		http.Redirect(w, r, paymentPath(booking.ID), http.StatusSeeOther)
	}
}

// CancelBookingHandler cancels one of the user's bookings
// (POST /dashboard/user/bookings/{id}/cancel)
func (s *Server) CancelBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		err := s.backend.CancelBooking(r.Context(), sess.Token, r.PathValue("id"))
		if s.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, RouteUserBookings, http.StatusSeeOther)
	}
}

func bookingFormPath(roomID string) string {
	return strings.Replace(RouteBookService, "{roomID}", roomID, 1)
}

func paymentPath(bookingID string) string {
	return strings.Replace(RoutePayment, "{bookingID}", bookingID, 1)
}
