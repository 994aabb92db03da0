package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Email provider selection: resend, postmark or file
	EmailProvider string
	// Resend Configuration
	ResendAPIKey string
	ResendAPIURL string
	// Postmark Configuration
	PostmarkServerToken  string
	PostmarkAccountToken string
	// Local outbox used by the file provider
	EmailOutboxDir string
	// Contact Form Configuration
	ContactOwnerEmail   string
	ContactOwnerName    string
	ContactFromEmail    string // Must be verified with the provider
	ContactFromName     string
	ConfirmationEnabled bool // Requires a verified sending domain
	// Timeouts
	ProviderTimeout time.Duration
	ShutdownTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Local only; in production the variables come from the environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// Email provider
		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "resend"))),
		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		// Strip the trailing slash so the endpoint path joins cleanly
		ResendAPIURL:         strings.TrimRight(getEnv("RESEND_API_URL", "https://api.resend.com"), "/"),
		PostmarkServerToken:  getEnv("POSTMARK_SERVER_TOKEN", ""),
		PostmarkAccountToken: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),
		EmailOutboxDir:       getEnv("EMAIL_OUTBOX_DIR", "./email-outbox"),
		// Contact form
		ContactOwnerEmail:   getEnv("CONTACT_OWNER_EMAIL", ""),
		ContactOwnerName:    getEnv("CONTACT_OWNER_NAME", ""),
		ContactFromEmail:    getEnv("CONTACT_FROM_EMAIL", "onboarding@resend.dev"), // Resend shared test sender
		ContactFromName:     getEnv("CONTACT_FROM_NAME", "Portfolio Contact"),
		ConfirmationEnabled: getEnvBool("CONFIRMATION_ENABLED", false),
		// Timeouts
		ProviderTimeout: time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 10)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
	}

	if cfg.ContactOwnerEmail == "" {
		log.Println("WARNING: CONTACT_OWNER_EMAIL is missing. Contact notifications have no recipient.")
	}

	switch cfg.EmailProvider {
	case "resend":
		if cfg.ResendAPIKey == "" {
			log.Println("WARNING: RESEND_API_KEY not configured. Every submission will be rejected by the provider.")
		}
	case "postmark":
		if cfg.PostmarkServerToken == "" {
			log.Println("WARNING: POSTMARK_SERVER_TOKEN not configured. Every submission will be rejected by the provider.")
		}
	}

	return cfg, nil
}

// ClientConfig configures the terminal submission client
type ClientConfig struct {
	Endpoint string
	Timeout  time.Duration
}

func LoadClientConfig() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		Endpoint: getEnv("CONTACT_ENDPOINT", "http://localhost:8080/v1/contact"),
		Timeout:  time.Duration(getEnvInt("CONTACT_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
