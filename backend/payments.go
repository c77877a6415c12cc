package backend

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// PaymentIntent is the processor handle the payment page needs. The gateway
// never talks to the payment processor directly; the backend creates the
// intent and hands back the client secret.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

type createPaymentIntentRequest struct {
	Amount    int64  `json:"amount"`
	BookingID string `json:"bookingId"`
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transactionId"`
}

// CreatePaymentIntent asks the backend for a processor client secret.
// Amount is in the smallest currency unit.
func (c *Client) CreatePaymentIntent(ctx context.Context, token string, amount int64, bookingID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	req := createPaymentIntentRequest{Amount: amount, BookingID: bookingID}
	if err := c.postJSON(ctx, "/create-payment-intent", token, req, &intent); err != nil {
		return nil, errors.Wrap(err, "[Client.CreatePaymentIntent] create intent")
	}
	return &intent, nil
}

// ConfirmPayment records a completed processor transaction against a booking.
func (c *Client) ConfirmPayment(ctx context.Context, token, bookingID, transactionID string) error {
	req := confirmPaymentRequest{TransactionID: transactionID}
	if err := c.patchJSON(ctx, "/payments/confirm/"+url.PathEscape(bookingID), token, req, nil); err != nil {
		return errors.Wrapf(err, "[Client.ConfirmPayment] booking %q", bookingID)
	}
	return nil
}
