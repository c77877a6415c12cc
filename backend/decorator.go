package backend

import (
	"context"

	"github.com/pkg/errors"
)

// DecoratorApplication is a request to join the platform as a decorator.
// Admins review applications on their dashboard.
type DecoratorApplication struct {
	ID         string `json:"_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Experience string `json:"experience"`
	Portfolio  string `json:"portfolio,omitempty"`
	Bio        string `json:"bio"`
	Status     string `json:"status,omitempty"`
}

// ApplyDecorator submits a decorator application via POST /decorator/apply.
func (c *Client) ApplyDecorator(ctx context.Context, token string, app DecoratorApplication) (*DecoratorApplication, error) {
	var created DecoratorApplication
	if err := c.postJSON(ctx, "/decorator/apply", token, app, &created); err != nil {
		return nil, errors.Wrap(err, "[Client.ApplyDecorator] submit application")
	}
	return &created, nil
}
