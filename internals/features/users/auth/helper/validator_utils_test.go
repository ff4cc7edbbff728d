// file: internals/features/users/auth/helper/validator_utils_test.go
package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegisterInput(t *testing.T) {
	assert.Nil(t, ValidateRegisterInput("john", "john@example.com", "supersecret", "supersecret"))

	tests := []struct {
		name                                       string
		username, email, password, passwordConfirm string
		wantField                                  string
	}{
		{"blank username", "  ", "a@b.co", "supersecret", "supersecret", "username"},
		{"short username", "jo", "a@b.co", "supersecret", "supersecret", "username"},
		{"bad email", "john", "not-an-email", "supersecret", "supersecret", "email"},
		{"short password", "john", "a@b.co", "short", "short", "password"},
		{"confirm mismatch", "john", "a@b.co", "supersecret", "different1", "password_confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegisterInput(tt.username, tt.email, tt.password, tt.passwordConfirm)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
			assert.NotEmpty(t, errs[tt.wantField])
		})
	}
}

func TestValidateRegisterInputCollectsAllViolations(t *testing.T) {
	errs := ValidateRegisterInput("jo", "not-an-email", "short", "different1")
	require.NotNil(t, errs)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "password_confirm")
}

func TestValidateLoginInput(t *testing.T) {
	assert.NoError(t, ValidateLoginInput("john", "secret"))
	assert.Error(t, ValidateLoginInput("", "secret"))
	assert.Error(t, ValidateLoginInput("john", ""))
}

func TestValidateChangePassword(t *testing.T) {
	assert.NoError(t, ValidateChangePassword("oldpassword", "newpassword", "newpassword"))
	assert.EqualError(t, ValidateChangePassword("", "newpassword", "newpassword"), "old password is required")
	assert.EqualError(t, ValidateChangePassword("oldpassword", "short", "short"), "new password must be at least 8 characters")
	assert.EqualError(t, ValidateChangePassword("oldpassword", "newpassword", "other"), "new passwords do not match")
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	require.NotEqual(t, "supersecret", hash)

	assert.NoError(t, CheckPasswordHash(hash, "supersecret"))
	assert.Error(t, CheckPasswordHash(hash, "wrongpassword"))
}
