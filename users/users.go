package users

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	apperrors "github.com/styledecor/styledecor-web/internal/errors"
)

// Role classifies a user's permission tier. The set is open: unknown roles
// are carried through normalized, they simply match none of the gated areas.
type Role = string

const (
	RoleAdmin     Role = "admin"
	RoleDecorator Role = "decorator"
	RoleUser      Role = "user"
)

// User is the authenticated principal as resolved from the backend.
type User struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// NormalizeRole lower-cases and trims a backend-supplied role string.
// An empty result means the user carries no role.
func NormalizeRole(role string) Role {
	return strings.ToLower(strings.TrimSpace(role))
}

// userPayload tolerates the field names the backend has been observed to use.
type userPayload struct {
	ID       string `json:"id"`
	MongoID  string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl"`
}

type wrappedUserPayload struct {
	User *userPayload `json:"user"`
}

// DecodeUser normalizes a "who am I" response body into a User. The backend
// returns the user either bare or wrapped under a "user" field; the wrapped
// form wins when both are present. A payload with no identifier and no email
// is not usable and yields (nil, nil).
func DecodeUser(data []byte) (*User, error) {
	var wrapped wrappedUserPayload
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User.normalize(), nil
	}

	var bare userPayload
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, apperrors.Wrapf(err, "[DecodeUser] unexpected user payload")
	}
	return bare.normalize(), nil
}

func (p *userPayload) normalize() *User {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	if id == "" && p.Email == "" {
		return nil
	}
	return &User{
		ID:       id,
		Name:     p.Name,
		Email:    p.Email,
		Role:     NormalizeRole(p.Role),
		PhotoURL: p.PhotoURL,
	}
}

// ValidateCredentials checks the login form fields locally, before any
// network call is made.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return apperrors.ErrMissingFields
	}
	return nil
}

// ValidateSignup checks the registration form fields locally.
func ValidateSignup(name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return apperrors.ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ErrInvalidEmail
	}
	return ValidatePasswordStrength(password)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long: %w", apperrors.ErrWeakPassword)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter: %w", apperrors.ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter: %w", apperrors.ErrWeakPassword)
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number: %w", apperrors.ErrWeakPassword)
	}

	return nil
}
