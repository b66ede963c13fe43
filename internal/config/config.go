package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Gemini (OCR + chat assistant)
	GeminiAPIKey      string
	OCRModel          string
	ChatModel         string
	ChatFallbackModel string

	// Catalogs: allowed transaction categories and payment methods.
	// Free-form labels validated at the service layer.
	Categories      []string
	PaymentMethods  []string
	MaxReceiptBytes int64
}

// defaultCategories mirrors the stock category set offered in the UI.
var defaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Other",
}

var defaultPaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"UPI",
	"Bank Transfer",
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "moneymind"),
		DBPassword: getEnv("DB_PASSWORD", "moneymind"),
		DBName:     getEnv("DB_NAME", "moneymind"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Gemini
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		OCRModel:          getEnv("OCR_MODEL", "gemini-2.0-flash"),
		ChatModel:         getEnv("CHAT_MODEL", "gemini-2.0-flash"),
		ChatFallbackModel: getEnv("CHAT_FALLBACK_MODEL", "gemini-2.0-flash-lite"),

		Categories:      getEnvList("CATEGORIES", defaultCategories),
		PaymentMethods:  getEnvList("PAYMENT_METHODS", defaultPaymentMethods),
		MaxReceiptBytes: 10 << 20,
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList parses a comma-separated environment variable into a list of
// trimmed labels, or returns the default list when unset.
func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
