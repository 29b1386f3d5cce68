package user

import (
	"strings"
	"testing"

	"condoadmin/internal/domain/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValidator_ValidateLogin(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{name: "valid email", email: "sindico@condo.com.br"},
		{name: "valid with plus", email: "ana+admin@condo.com"},
		{name: "empty", email: "", wantErr: true, expectedErr: "email is required"},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.io", wantErr: true, expectedErr: "at most 254"},
		{name: "space", email: "ana @condo.com", wantErr: true, expectedErr: "valid address"},
		{name: "no at", email: "ana.condo.com", wantErr: true, expectedErr: "valid address"},
		{name: "no local part", email: "@condo.com", wantErr: true, expectedErr: "valid address"},
		{name: "two at", email: "a@b@condo.com", wantErr: true, expectedErr: "valid address"},
		{name: "no domain", email: "ana@", wantErr: true, expectedErr: "valid address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateLogin(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{name: "too short", password: "Abc123!", wantErr: true, expectedErr: "password must be at least 8 characters"},
		{name: "no uppercase", password: "abc123!@", wantErr: true, expectedErr: "password must contain at least one uppercase letter"},
		{name: "no lowercase", password: "ABC123!@", wantErr: true, expectedErr: "password must contain at least one lowercase letter"},
		{name: "no digit", password: "Abcdef!@", wantErr: true, expectedErr: "password must contain at least one digit"},
		{name: "no special char", password: "Abcdef12", wantErr: true, expectedErr: "password must contain at least one special character"},
		{name: "strong", password: "P@ssw0rd123!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidateRegister(t *testing.T) {
	validator := NewPasswordValidator()

	assert.NoError(t, validator.ValidateRegister("ana@condo.com", "P@ssw0rd123!"))

	err := validator.ValidateRegister("ana", "P@ssw0rd123!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email validation failed")

	err = validator.ValidateRegister("ana@condo.com", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password validation failed")
}

func TestEmailRule_SameAsUsuariosCollection(t *testing.T) {
	var found bool
	for _, def := range collection.DefaultDefinitions() {
		if def.Name == collection.Usuarios {
			found = true
			assert.Equal(t, emailRule, def.Rules["email"])
		}
	}
	assert.True(t, found)
}
