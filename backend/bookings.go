package backend

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// Booking statuses used across the dashboards.
const (
	BookingPending   = "pending"
	BookingAssigned  = "assigned"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID             string  `json:"_id"`
	RoomID         string  `json:"roomId"`
	RoomName       string  `json:"roomName"`
	UserEmail      string  `json:"userEmail"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	PaymentStatus  string  `json:"paymentStatus"`
	TransactionID  string  `json:"transactionId,omitempty"`
	DecoratorEmail string  `json:"decoratorEmail,omitempty"`
}

type CreateBookingRequest struct {
	RoomID    string  `json:"roomId"`
	RoomName  string  `json:"roomName"`
	UserEmail string  `json:"userEmail"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
}

// Bookings lists the caller's bookings. The backend scopes the result by the
// bearer token's identity and role, so the same call serves the user and the
// decorator dashboards.
func (c *Client) Bookings(ctx context.Context, token string) ([]Booking, error) {
	var bookings []Booking
	if err := c.getJSON(ctx, "/bookings", token, &bookings); err != nil {
		return nil, errors.Wrap(err, "[Client.Bookings] list")
	}
	return bookings, nil
}

func (c *Client) Booking(ctx context.Context, token, id string) (*Booking, error) {
	var booking Booking
	if err := c.getJSON(ctx, "/bookings/"+url.PathEscape(id), token, &booking); err != nil {
		return nil, errors.Wrapf(err, "[Client.Booking] get %q", id)
	}
	return &booking, nil
}

func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (*Booking, error) {
	var booking Booking
	if err := c.postJSON(ctx, "/bookings", token, req, &booking); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateBooking] create")
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking through its lifecycle. Decorators use
// it for assigned work, admins for any booking.
func (c *Client) UpdateBookingStatus(ctx context.Context, token, id, status string) error {
	body := map[string]string{"status": status}
	if err := c.putJSON(ctx, "/bookings/"+url.PathEscape(id), token, body, nil); err != nil {
		return errors.Wrapf(err, "[Client.UpdateBookingStatus] %q -> %q", id, status)
	}
	return nil
}

func (c *Client) CancelBooking(ctx context.Context, token, id string) error {
	if err := c.deleteJSON(ctx, "/bookings/"+url.PathEscape(id), token, nil); err != nil {
		return errors.Wrapf(err, "[Client.CancelBooking] %q", id)
	}
	return nil
}
