package backend

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/styledecor/styledecor-web/users"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	IDToken  string `json:"idToken,omitempty"`
}

// Login authenticates against POST /auth/jwt and returns the extracted
// bearer token together with the raw response payload. Callers may need
// additional fields from the raw response.
func (c *Client) Login(ctx context.Context, email, password string) (string, map[string]any, error) {
	return c.requestToken(ctx, loginRequest{Email: email, Password: password})
}

// LoginWithIDToken exchanges a provider-verified identity for a backend
// bearer token. Used by the SSO callback after the ID token has been
// verified locally.
func (c *Client) LoginWithIDToken(ctx context.Context, email, idToken string) (string, map[string]any, error) {
	return c.requestToken(ctx, loginRequest{Email: email, IDToken: idToken})
}

func (c *Client) requestToken(ctx context.Context, req loginRequest) (string, map[string]any, error) {
	var payload map[string]any
	if err := c.postJSON(ctx, "/auth/jwt", "", req, &payload); err != nil {
		return "", nil, errors.Wrap(err, "[Client.Login] auth request")
	}
	token, err := ExtractToken(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "[Client.Login] extract token")
	}
	return token, payload, nil
}

// CurrentUser resolves the session's principal via GET /users/me. The
// response is normalized through users.DecodeUser, so both the bare and the
// wrapped shape are accepted. A 2xx response with no usable user yields
// (nil, nil).
func (c *Client) CurrentUser(ctx context.Context, token string) (*users.User, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/users/me", token, &raw); err != nil {
		return nil, errors.Wrap(err, "[Client.CurrentUser] who am I")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return users.DecodeUser(raw)
}
