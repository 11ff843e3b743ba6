package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AuthServerURL         string `validate:"required,url"` // Required: identity provider base URL or realm URL
	Realm                 string `validate:"required"`     // Required: provider realm name
	ClientID              string `validate:"required"`     // Required: OAuth2 client id
	ClientSecret          string `validate:"required"`     // Required: OAuth2 client secret
	RedirectURI           string `validate:"required,url"` // Required: our /auth/callback URL as registered at the provider
	FrontendURL           string `validate:"required,url"` // Required: where the browser lands after the callback
	PostLogoutRedirectURI string `validate:"omitempty,url"` // Optional: post-logout landing page (default: FrontendURL)

	StateSecret     string        `validate:"required"` // Secret for signing state JWTs (default: ClientSecret)
	ResultTTL       time.Duration // Optional: lifetime of unconsumed auth results (default: 60s)
	JWKSCacheTTL    time.Duration // Optional: provider signing key cache lifetime (default: 24h)
	ProviderTimeout time.Duration // Optional: HTTP timeout for provider calls (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment, after loading a
// .env file if one is present.
func LoadConfig() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		AuthServerURL:         os.Getenv("SSO_AUTH_SERVER_URL"),
		Realm:                 os.Getenv("SSO_REALM"),
		ClientID:              os.Getenv("SSO_CLIENT_ID"),
		ClientSecret:          os.Getenv("SSO_CLIENT_SECRET"),
		RedirectURI:           os.Getenv("SSO_REDIRECT_URI"),
		FrontendURL:           os.Getenv("FRONTEND_URL"),
		PostLogoutRedirectURI: os.Getenv("SSO_POST_LOGOUT_REDIRECT_URI"),
		StateSecret:           os.Getenv("AUTH_STATE_SECRET"),
		JWKSCacheTTL:          getEnvDurationOrDefault("JWKS_CACHE_TTL", 24*time.Hour),
		ProviderTimeout:       getEnvDurationOrDefault("PROVIDER_TIMEOUT", 10*time.Second),
		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Result TTL is configured in whole seconds to match the provider's
	// expires_in convention.
	cfg.ResultTTL = time.Duration(getEnvIntOrDefault("AUTH_RESULT_TTL_SECONDS", 60)) * time.Second

	// The state signing secret only needs to be known to this service, so
	// reusing the client secret is acceptable when no dedicated one is set.
	if cfg.StateSecret == "" {
		cfg.StateSecret = cfg.ClientSecret
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
