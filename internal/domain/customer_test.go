package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerMarshalOmitsCredentials(t *testing.T) {
	code := "654321"
	c := Customer{
		ID:               7,
		FirstName:        "Grace",
		Email:            "grace@example.com",
		Password:         "$argon2id$v=19$secret",
		Role:             RoleUser,
		VerificationCode: &code,
	}
	out, err := json.Marshal(c)
	require.NoError(t, err)

	body := string(out)
	assert.NotContains(t, body, "argon2id")
	assert.NotContains(t, body, "654321")
	assert.Contains(t, body, `"customerID":7`)
	assert.Contains(t, body, `"isVerified":false`)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}
