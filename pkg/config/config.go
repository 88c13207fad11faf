package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Evidence acceptance policy
	EvidenceMaxSizeBytes  int64
	EvidenceAcceptedTypes []string

	// Seed administrator, created only when the actor registry is empty.
	BootstrapAdminName     string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string

	CORSAllowedOrigins []string

	// Global API rate limit in ulule/limiter notation, e.g. "100-M".
	APIRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "findoc-backend")
	viper.SetDefault("EVIDENCE_MAX_SIZE_BYTES", int64(5*1024*1024))
	viper.SetDefault("EVIDENCE_ACCEPTED_TYPES", "image/png,image/jpeg,application/pdf")
	viper.SetDefault("BOOTSTRAP_ADMIN_NAME", "Administrator")
	viper.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "admin@clubsalud.local")
	viper.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("API_RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.EvidenceMaxSizeBytes = viper.GetInt64("EVIDENCE_MAX_SIZE_BYTES")
	if cfg.EvidenceMaxSizeBytes <= 0 {
		cfg.EvidenceMaxSizeBytes = 5 * 1024 * 1024
		log.Printf("Warning: Invalid EVIDENCE_MAX_SIZE_BYTES. Defaulting to %d.\n", cfg.EvidenceMaxSizeBytes)
	}
	cfg.EvidenceAcceptedTypes = splitAndTrim(viper.GetString("EVIDENCE_ACCEPTED_TYPES"))

	cfg.BootstrapAdminName = viper.GetString("BOOTSTRAP_ADMIN_NAME")
	cfg.BootstrapAdminEmail = viper.GetString("BOOTSTRAP_ADMIN_EMAIL")
	cfg.BootstrapAdminPassword = viper.GetString("BOOTSTRAP_ADMIN_PASSWORD")
	if cfg.BootstrapAdminPassword == "" {
		log.Println("Warning: BOOTSTRAP_ADMIN_PASSWORD not set. Bootstrap admin will not be seeded.")
	}

	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
