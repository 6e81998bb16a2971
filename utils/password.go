package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)
)

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidPassword enforces the account password policy: at least 8 characters
// containing at least one letter and one digit.
func ValidPassword(password string) bool {
	return len(password) >= 8 &&
		letterRegex.MatchString(password) &&
		digitRegex.MatchString(password)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
