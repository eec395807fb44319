package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBLogLevel  string
	SeedData    bool

	JWTSecret string
	JWTTTL    time.Duration

	// Period boundaries and the dates shown in history details are evaluated here
	Timezone       string
	CurrencySymbol string

	LogLevel string

	RateLimitPerMinute int
	RateLimitBurst     int

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	SummaryReportInterval time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/milestone?charset=utf8mb4&parseTime=True&loc=Local"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),
		SeedData:    getEnvBool("SEED_DATA", false),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		JWTTTL:    getEnvDuration("JWT_TTL", time.Hour),

		Timezone:       getEnv("TIMEZONE", "Local"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 2525),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@milestone.app"),
		FromName:     getEnv("FROM_NAME", "Milestone"),

		SummaryReportInterval: getEnvDuration("SUMMARY_REPORT_INTERVAL", 0),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DatabaseURL == "" {
		problems = append(problems, "database URL cannot be empty")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, "JWT secret cannot be empty")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid JWT TTL %s: must be positive", c.JWTTTL))
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		problems = append(problems, "rate limit values must be positive")
	}

	if c.SummaryReportInterval < 0 {
		problems = append(problems, fmt.Sprintf("invalid summary report interval %s: cannot be negative", c.SummaryReportInterval))
	}
	if c.SummaryReportInterval > 0 && !c.EmailEnabled() {
		problems = append(problems, "summary reports require SMTP_HOST to be set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
