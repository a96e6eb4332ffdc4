package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/services/dto"
)

func TestValidateSignupRequest(t *testing.T) {
	t.Parallel()
	v := New()

	valid := dto.SignupRequest{
		Name:            "Ayla",
		Email:           "ayla@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
	assert.NoError(t, v.Validate(&valid))
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	t.Parallel()
	v := New()

	bad := dto.SignupRequest{
		Name:            "Ayla",
		Email:           "not-an-email",
		Password:        "short",
		PasswordConfirm: "different",
	}
	err := v.Validate(&bad)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// keys use the wire names, not Go field names
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.Contains(t, vErr.Errors, "passwordConfirm")
	assert.NotContains(t, vErr.Errors, "Email")

	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must match the 'Password' field", vErr.Errors["passwordConfirm"])
}

func TestValidatePartialSkipsAbsentFields(t *testing.T) {
	t.Parallel()
	v := New()

	// Email alone validates even though Name is required on full validation
	req := dto.SignupRequest{Email: "ayla@example.com"}
	assert.NoError(t, v.ValidatePartial(&req, "Email"))
	assert.Error(t, v.ValidatePartial(&req, "Name"))
	assert.NoError(t, v.ValidatePartial(&req))
}
