package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ListenAddr string
	LogLevel   string
	LogFormat  string

	DatabaseURL string

	// Provider API keys. An empty key selects the static stand-in for
	// that provider.
	ShodanAPIKey    string
	EmailRepAPIKey  string
	VirusTotalKey   string
	AbuseIPDBAPIKey string

	// SMTP notification settings; empty host disables delivery.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Advisory per-user request budget per minute; 0 disables limiting.
	RateLimitPerMinute int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Env:                getenv("APP_ENV", "development"),
		ListenAddr:         getenv("LISTEN_ADDR", ":8080"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "text"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ShodanAPIKey:       os.Getenv("SHODAN_API_KEY"),
		EmailRepAPIKey:     os.Getenv("EMAILREP_API_KEY"),
		VirusTotalKey:      os.Getenv("VIRUSTOTAL_API_KEY"),
		AbuseIPDBAPIKey:    os.Getenv("ABUSEIPDB_API_KEY"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getenvInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 5),
	}
	if cfg.DatabaseURL == "" {
		// Not fatal for early local runs; warn via error value so callers can decide.
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}
