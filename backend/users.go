package backend

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/styledecor/styledecor-web/users"
)

// UpsertUserRequest creates or updates a user profile via POST /users.
// Password is omitted for SSO-created profiles.
type UpsertUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UpsertUser registers a new account or refreshes an existing profile.
// Registration is unauthenticated; profile updates carry the caller's token.
func (c *Client) UpsertUser(ctx context.Context, token string, req UpsertUserRequest) (*users.User, error) {
	var raw json.RawMessage
	if err := c.postJSON(ctx, "/users", token, req, &raw); err != nil {
		return nil, errors.Wrap(err, "[Client.UpsertUser] post user")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return users.DecodeUser(raw)
}
