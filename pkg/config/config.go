package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

// StripeConfig carries separate TEST and LIVE credentials so sandbox and
// production billing objects never collide.
type StripeConfig struct {
	SecretKeyTest     string
	SecretKeyLive     string
	WebhookSecretTest string
	WebhookSecretLive string
}

// AdminConfig seeds the bootstrap admin account.
type AdminConfig struct {
	Email    string
	Password string
	Tier     string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "postgres://postgres@localhost:5432/llmarena"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "llmarena-dev-secret"),
		},
		Stripe: StripeConfig{
			SecretKeyTest:     os.Getenv("STRIPE_SECRET_KEY_TEST"),
			SecretKeyLive:     os.Getenv("STRIPE_SECRET_KEY_LIVE"),
			WebhookSecretTest: os.Getenv("STRIPE_WEBHOOK_SECRET_TEST"),
			WebhookSecretLive: os.Getenv("STRIPE_WEBHOOK_SECRET_LIVE"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@llmarena.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
			Tier:     getEnv("ADMIN_TIER", "ENTERPRISE"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
