package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"jane@x.com", "john.doe@example.co.uk", "a+b@domain.io"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}
	invalid := []string{"", "plainaddress", "missing@tld", "@no-local.com", "two@@x.com", "spa ce@x.com"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestValidPassword(t *testing.T) {
	valid := []string{"abcdefg1", "Passw0rdExtra", "1234567a"}
	for _, p := range valid {
		assert.True(t, ValidPassword(p), p)
	}
	invalid := []string{
		"",
		"short1a",   // 7 chars
		"abcdefgh",  // no digit
		"12345678",  // no letter
		"        1", // no letter
	}
	for _, p := range invalid {
		assert.False(t, ValidPassword(p), p)
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correcthorse1")
	assert.NoError(t, err)
	assert.NotEqual(t, "correcthorse1", hash)

	assert.True(t, CheckPasswordHash("correcthorse1", hash))
	// single-character difference must be rejected
	assert.False(t, CheckPasswordHash("correcthorse2", hash))
	assert.False(t, CheckPasswordHash("Correcthorse1", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("samepassword1")
	assert.NoError(t, err)
	h2, err := HashPassword("samepassword1")
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPasswordHash("samepassword1", h1))
	assert.True(t, CheckPasswordHash("samepassword1", h2))
}
