package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestGenerateJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "jane@x.com", testSecret)
	assert.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "jane@x.com", claims["email"])

	exp, ok := claims["exp"].(float64)
	assert.True(t, ok)
	assert.InDelta(t, time.Now().Add(TokenTTL).Unix(), int64(exp), 5)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, "jane@x.com", testSecret)
	assert.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func signWithExpiry(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": "jane@x.com",
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

// Expiry is exclusive: a token is accepted strictly before exp and rejected
// once exp has passed.
func TestParseJWTExpiryBoundary(t *testing.T) {
	stillValid := signWithExpiry(t, 10*time.Second)
	_, err := ParseJWT(stillValid, testSecret)
	assert.NoError(t, err)

	expired := signWithExpiry(t, -10*time.Second)
	_, err = ParseJWT(expired, testSecret)
	assert.Error(t, err)
}

func TestParseJWTRejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{"email": "jane@x.com"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = ParseJWT(unsigned, testSecret)
	assert.Error(t, err)
}

func TestGenerateVerificationTokenBindsEmail(t *testing.T) {
	token, err := GenerateVerificationToken("jane@x.com", testSecret)
	assert.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "jane@x.com", claims["email"])
	_, hasUserID := claims["user_id"]
	assert.False(t, hasUserID)
}
