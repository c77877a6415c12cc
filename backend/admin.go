package backend

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/users"
)

// Admin operations. Deployed backends differ in which admin paths they
// expose, so each call documents a fallback path tried when the primary
// returns 404. Any other failure propagates immediately.

// AdminBookings lists every booking on the platform.
// Primary: GET /admin/bookings. Fallback: GET /bookings (the backend scopes
// by role, so an admin token sees everything).
func (c *Client) AdminBookings(ctx context.Context, token string) ([]Booking, error) {
	var bookings []Booking
	err := c.getJSON(ctx, "/admin/bookings", token, &bookings)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		err = c.getJSON(ctx, "/bookings", token, &bookings)
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Client.AdminBookings] list")
	}
	return bookings, nil
}

// PendingDecorators lists applications awaiting review.
// Primary: GET /admin/decorators/pending. Fallback: GET /decorator/applications.
func (c *Client) PendingDecorators(ctx context.Context, token string) ([]DecoratorApplication, error) {
	var apps []DecoratorApplication
	err := c.getJSON(ctx, "/admin/decorators/pending", token, &apps)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		err = c.getJSON(ctx, "/decorator/applications", token, &apps)
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Client.PendingDecorators] list")
	}
	return apps, nil
}

// ApproveDecorator approves an application, promoting the applicant's role.
// Primary: PATCH /admin/decorators/{id}/approve.
// Fallback: POST /admin/decorators/approve with the id in the body.
func (c *Client) ApproveDecorator(ctx context.Context, token, applicationID string) error {
	err := c.patchJSON(ctx, "/admin/decorators/"+url.PathEscape(applicationID)+"/approve", token, nil, nil)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		body := map[string]string{"applicationId": applicationID}
		err = c.postJSON(ctx, "/admin/decorators/approve", token, body, nil)
	}
	if err != nil {
		return errors.Wrapf(err, "[Client.ApproveDecorator] %q", applicationID)
	}
	return nil
}

// Decorators lists approved decorators for assignment.
// Primary: GET /admin/decorators. Fallback: GET /users?role=decorator.
func (c *Client) Decorators(ctx context.Context, token string) ([]users.User, error) {
	var decorators []users.User
	err := c.getJSON(ctx, "/admin/decorators", token, &decorators)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		err = c.getJSON(ctx, "/users?role=decorator", token, &decorators)
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Decorators] list")
	}
	return decorators, nil
}

// AssignDecorator attaches a decorator to a booking.
// Primary: PATCH /admin/bookings/{id}/assign.
// Fallback: PUT /bookings/{id} with the assignment in the body.
func (c *Client) AssignDecorator(ctx context.Context, token, bookingID, decoratorEmail string) error {
	body := map[string]string{"decoratorEmail": decoratorEmail}
	err := c.patchJSON(ctx, "/admin/bookings/"+url.PathEscape(bookingID)+"/assign", token, body, nil)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		fallback := map[string]string{"decoratorEmail": decoratorEmail, "status": BookingAssigned}
		err = c.putJSON(ctx, "/bookings/"+url.PathEscape(bookingID), token, fallback, nil)
	}
	if err != nil {
		return errors.Wrapf(err, "[Client.AssignDecorator] booking %q", bookingID)
	}
	return nil
}
