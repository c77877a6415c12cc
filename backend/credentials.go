package backend

import (
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
)

// tokenFields is the documented priority order for the bearer token in a
// login response. The backend contract is not perfectly pinned down, so the
// first present field wins.
var tokenFields = []string{"token", "accessToken", "jwt"}

// ExtractToken pulls the bearer token out of a decoded login response.
// Returns ErrTokenMissing when none of the known fields carries a non-empty
// string. The ambiguity of the backend contract stops at this boundary.
func ExtractToken(payload map[string]any) (string, error) {
	for _, field := range tokenFields {
		if value, ok := payload[field].(string); ok && value != "" {
			return value, nil
		}
	}
	return "", apperrors.ErrTokenMissing
}
