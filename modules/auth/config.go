package auth

import (
	"os"
	"strconv"
	"time"
)

// Config holds the auth module configuration. It is constructed explicitly
// and handed to the service at startup, so tests can substitute their own.
type Config struct {
	// Username and Password are the single accepted credential pair.
	Username string
	Password string

	// SecretKey signs issued tokens. Must be overridden in production.
	SecretKey string
	// Algorithm is the HMAC signing algorithm name (HS256, HS384 or HS512).
	Algorithm string
	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration
	Issuer   string
}

// DefaultConfig returns the development defaults, mirroring the service's
// documented environment defaults.
func DefaultConfig() Config {
	return Config{
		Username:  "user",
		Password:  "password",
		SecretKey: "your-super-secret-key-replace-me-in-production",
		Algorithm: "HS256",
		TokenTTL:  30 * time.Minute,
		Issuer:    "task-manager",
	}
}

// loadConfig overlays environment variables on the defaults.
func loadConfig() Config {
	config := DefaultConfig()

	if username := os.Getenv("TASKS_AUTH_USERNAME"); username != "" {
		config.Username = username
	}
	if password := os.Getenv("TASKS_AUTH_PASSWORD"); password != "" {
		config.Password = password
	}
	if secret := os.Getenv("TASKS_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}
	if alg := os.Getenv("TASKS_JWT_ALGORITHM"); alg != "" {
		config.Algorithm = alg
	}
	if ttl := os.Getenv("TASKS_TOKEN_TTL_MINUTES"); ttl != "" {
		if minutes, err := strconv.Atoi(ttl); err == nil && minutes > 0 {
			config.TokenTTL = time.Duration(minutes) * time.Minute
		}
	}
	if issuer := os.Getenv("TASKS_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}

	return config
}
