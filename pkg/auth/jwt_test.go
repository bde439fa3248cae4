package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sampleClaims() Claims {
	return Claims{
		CustomerID:  42,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "0700111222",
		Role:        "user",
	}
}

func TestNewAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken(sampleClaims(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.CustomerID)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken(sampleClaims(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "another-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	claims := sampleClaims()
	past := time.Now().Add(-2 * time.Hour)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		Audience:  []string{audience},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsTokenWithoutExpiry(t *testing.T) {
	claims := sampleClaims()
	claims.RegisteredClaims = jwt.RegisteredClaims{Audience: []string{audience}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.Error(t, err)
}

func TestNewAccessTokenRequiresSecretAndTTL(t *testing.T) {
	_, err := NewAccessToken(sampleClaims(), "", time.Hour)
	assert.Error(t, err)

	_, err = NewAccessToken(sampleClaims(), testSecret, 0)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token", testSecret)
	assert.Error(t, err)
}
