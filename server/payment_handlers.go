package server

import (
	"math"
	"net/http"
	"strings"

	"github.com/styledecor/styledecor-web/backend"
)

// PaymentPageData backs the payment page. The processor is driven
// browser-side with the publishable key and the intent's client secret.
type PaymentPageData struct {
	basePageData
	Booking        backend.Booking
	ClientSecret   string
	PublishableKey string
	AmountCents    int64
}

// PaymentPageHandler creates a payment intent and renders the payment page
// (GET /dashboard/user/payment/{bookingID})
func (s *Server) PaymentPageHandler() http.HandlerFunc {
	tmpl := parsePage("payment.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		booking, err := s.backend.Booking(r.Context(), sess.Token, r.PathValue("bookingID"))
		if s.handleBackendError(w, r, err) {
			return
		}

		// Round, don't truncate: 4.35 * 100 is 434.99... in binary floating
		// point and must still charge 435 cents.
		amountCents := int64(math.Round(booking.Amount * 100))
		intent, err := s.backend.CreatePaymentIntent(r.Context(), sess.Token, amountCents, booking.ID)
		if s.handleBackendError(w, r, err) {
			return
		}

		data := PaymentPageData{
			basePageData:   s.basePage(displayName(sess.User), sess.Role, ""),
			Booking:        *booking,
			ClientSecret:   intent.ClientSecret,
			PublishableKey: s.config.GetPaymentPublishableKey(),
			AmountCents:    amountCents,
		}
		s.renderPage(w, tmpl, http.StatusOK, data)
	}
}

// PaymentConfirmHandler records the processor transaction against the
// booking (POST /dashboard/user/payment/{bookingID}/confirm)
func (s *Server) PaymentConfirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		transactionID := strings.TrimSpace(r.FormValue("transactionId"))
		if transactionID == "" {
			http.Error(w, "Missing transaction id", http.StatusBadRequest)
			return
		}

		err := s.backend.ConfirmPayment(r.Context(), sess.Token, r.PathValue("bookingID"), transactionID)
		if s.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, RouteUserBookings, http.StatusSeeOther)
	}
}
