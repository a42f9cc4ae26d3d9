package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("RESERVED_USERNAMES", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")

	cfg := LoadConfig()
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"me"}, cfg.ReservedUsernames)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("RESERVED_USERNAMES", " me, Voldemort ,,admin")
	t.Setenv("CONFIRMATION_CODE_TTL", "15m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SIGNUP_RATE_PER_MINUTE", "0.5")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"me", "Voldemort", "admin"}, cfg.ReservedUsernames)
	assert.Equal(t, 15*time.Minute, cfg.ConfirmationCodeTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 0.5, cfg.SignupRatePerMinute)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		DBDriver:            "sqlite",
		AccessTokenTTL:      time.Hour,
		ConfirmationCodeTTL: time.Hour,
		LogFormat:           "xml",
		SignupRatePerMinute: 1,
		SignupBurst:         1,
		IsProd:              true,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "yamdb"}
	assert.Equal(t, "u:p@tcp(h:3306)/yamdb?parseTime=true", cfg.DSN())

	cfg.DBDriver = "postgres"
	cfg.DBPort = "5432"
	cfg.DBSSLMode = "disable"
	assert.Equal(t, "host=h user=u password=p dbname=yamdb port=5432 sslmode=disable", cfg.DSN())
}
