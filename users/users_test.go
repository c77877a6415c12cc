package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/users"
)

func TestDecodeUserBare(t *testing.T) {
	u, err := users.DecodeUser([]byte(`{"_id":"u1","name":"A","email":"a@b.com","role":"Admin"}`))
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, users.RoleAdmin, u.Role)
}

func TestDecodeUserWrapped(t *testing.T) {
	u, err := users.DecodeUser([]byte(`{"user":{"id":"u2","email":"d@b.com","role":"DECORATOR"}}`))
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "u2", u.ID)
	assert.Equal(t, users.RoleDecorator, u.Role)
}

func TestDecodeUserWrappedWinsOverBareFields(t *testing.T) {
	u, err := users.DecodeUser([]byte(`{"email":"outer@b.com","user":{"email":"inner@b.com","role":"user"}}`))
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "inner@b.com", u.Email)
}

func TestDecodeUserUnusablePayload(t *testing.T) {
	u, err := users.DecodeUser([]byte(`{"message":"nothing here"}`))
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestDecodeUserMissingRole(t *testing.T) {
	u, err := users.DecodeUser([]byte(`{"_id":"u3","email":"n@b.com"}`))
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Empty(t, u.Role)
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "admin", users.NormalizeRole(" Admin "))
	assert.Equal(t, "decorator", users.NormalizeRole("DECORATOR"))
	assert.Equal(t, "", users.NormalizeRole(""))
}

func TestValidateCredentials(t *testing.T) {
	assert.ErrorIs(t, users.ValidateCredentials("", "secret"), apperrors.ErrMissingFields)
	assert.ErrorIs(t, users.ValidateCredentials("a@b.com", ""), apperrors.ErrMissingFields)
	assert.NoError(t, users.ValidateCredentials("a@b.com", "secret"))
}

func TestValidateSignup(t *testing.T) {
	assert.ErrorIs(t, users.ValidateSignup("", "a@b.com", "Passw0rd"), apperrors.ErrMissingFields)
	assert.ErrorIs(t, users.ValidateSignup("A", "not-an-email", "Passw0rd"), apperrors.ErrInvalidEmail)
	assert.ErrorIs(t, users.ValidateSignup("A", "a@b.com", "short"), apperrors.ErrWeakPassword)
	assert.ErrorIs(t, users.ValidateSignup("A", "a@b.com", "alllowercase1"), apperrors.ErrWeakPassword)
	assert.NoError(t, users.ValidateSignup("A", "a@b.com", "Passw0rd"))
}
