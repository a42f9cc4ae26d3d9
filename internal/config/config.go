package config

import (
	"fmt"     // For error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort             string        // Application port
	DBDriver            string        // Database driver: mysql or postgres
	DBUser              string        // Database user
	DBPassword          string        // Database password
	DBHost              string        // Database host
	DBPort              string        // Database port
	DBName              string        // Database name
	DBSSLMode           string        // PostgreSQL sslmode
	JWTSecret           string        // JWT secret key, also the root key for confirmation codes
	AccessTokenTTL      time.Duration // Lifetime of issued access tokens
	ConfirmationCodeTTL time.Duration // Lifetime of emailed confirmation codes
	ReservedUsernames   []string      // Usernames nobody may register
	RedisAddr           string        // Redis server address, empty disables the cache
	RedisPass           string        // Redis password
	RedisDB             int           // Redis database number
	CacheTTL            time.Duration // Lifetime of cached title responses
	MailFrom            string        // Sender address for confirmation mails
	SMTPHost            string        // SMTP host, empty logs mails instead of sending them
	SMTPPort            int           // SMTP port
	SMTPUser            string        // SMTP user
	SMTPPass            string        // SMTP password
	SignupRatePerMinute float64       // Signup requests allowed per client IP per minute
	SignupBurst         int           // Signup burst size per client IP
	TrustedProxies      []string      // Proxies trusted for client IP resolution
	LogLevel            string        // Logrus level
	LogFormat           string        // text or json
	IsProd              bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:             envString("APP_PORT", "8000"),
		DBDriver:            envString("DB_DRIVER", "mysql"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBHost:              envString("DB_HOST", "localhost"),
		DBPort:              os.Getenv("DB_PORT"),
		DBName:              os.Getenv("DB_NAME"),
		DBSSLMode:           envString("DB_SSLMODE", "disable"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AccessTokenTTL:      envDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		ConfirmationCodeTTL: envDuration("CONFIRMATION_CODE_TTL", 24*time.Hour),
		ReservedUsernames:   envList("RESERVED_USERNAMES", []string{"me"}),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPass:           os.Getenv("REDIS_PASS"),
		RedisDB:             envInt("REDIS_DB", 0),
		CacheTTL:            envDuration("CACHE_TTL", 60*time.Second),
		MailFrom:            envString("MAIL_FROM", "noreply@yamdb.local"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            envInt("SMTP_PORT", 587),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		SignupRatePerMinute: envFloat("SIGNUP_RATE_PER_MINUTE", 5),
		SignupBurst:         envInt("SIGNUP_BURST", 5),
		TrustedProxies:      envList("TRUSTED_PROXIES", []string{"127.0.0.1"}),
		LogLevel:            envString("LOG_LEVEL", "info"),
		LogFormat:           envString("LOG_FORMAT", "text"),
		IsProd:              os.Getenv("IS_PROD") == "true",
	}
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var problems []string
	if c.DBDriver != "mysql" && c.DBDriver != "postgres" {
		problems = append(problems, "DB_DRIVER must be mysql or postgres")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.IsProd && len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET should be at least 32 characters long in production")
	}
	if c.AccessTokenTTL <= 0 || c.ConfirmationCodeTTL <= 0 {
		problems = append(problems, "token lifetimes must be positive")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, "LOG_FORMAT must be text or json")
	}
	if c.SignupRatePerMinute <= 0 || c.SignupBurst <= 0 {
		problems = append(problems, "signup rate limit must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
	}
	// MySQL Data Source Name, parseTime is needed for time.Time columns
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// envList splits a comma separated variable, dropping empty items
func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
