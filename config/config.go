package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and handed to the router, controllers
// and middleware. Business logic never reads the environment directly.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	Port      string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string

	AllowedOrigins []string

	// VerifyBaseURL is the public base URL embedded in verification mail
	// links. FrontendSuccessURL / FrontendFailureURL are where the browser
	// lands after email verification and the OAuth callback.
	VerifyBaseURL      string
	FrontendSuccessURL string
	FrontendFailureURL string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             getenvOrDefault("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		RedisAddr:          getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               getenvOrDefault("PORT", "3000"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getenvOrDefault("SMTP_PORT", "587"),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleSecret:       os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirect:     os.Getenv("GOOGLE_REDIRECT_URI"),
		AllowedOrigins:     splitOrigins(getenvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		VerifyBaseURL:      getenvOrDefault("VERIFY_BASE_URL", "http://localhost:3000"),
		FrontendSuccessURL: getenvOrDefault("FRONTEND_SUCCESS_URL", "http://localhost:3000/email-verified"),
		FrontendFailureURL: getenvOrDefault("FRONTEND_FAILURE_URL", "http://localhost:3000/login-failed"),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
