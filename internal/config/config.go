package config

import "os"

type Config struct {
	Port    string
	BaseURL string
	DBDSN   string

	StripeSecretKey     string
	StripeWebhookSecret string

	AdminPassword   string
	CORSAllowOrigin string
}

func FromEnv() Config {
	return Config{
		Port:                envOr("PORT", "8080"),
		BaseURL:             envOr("BASE_URL", "http://localhost:8080"),
		DBDSN:               os.Getenv("DB_DSN"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		CORSAllowOrigin:     envOr("CORS_ALLOW_ORIGIN", "*"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
