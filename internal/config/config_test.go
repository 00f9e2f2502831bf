package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://localhost:5432/slotbot")
	t.Setenv("ADMIN_ID", "123456789")
	t.Setenv("ENV", "")
	t.Setenv("MIGRATIONS_PATH", "")
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(123456789), cfg.AdminID)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoadRequiredVars(t *testing.T) {
	tests := []struct {
		name   string
		unset  string
		substr string
	}{
		{"token required", "TELEGRAM_TOKEN", "TELEGRAM_TOKEN"},
		{"dsn required", "DB_DSN", "DB_DSN"},
		{"admin id required", "ADMIN_ID", "ADMIN_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestLoadAdminIDMustBeNumeric(t *testing.T) {
	setValidEnv(t)
	t.Setenv("ADMIN_ID", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_ID")
}

func TestLoadEnvironmentOverride(t *testing.T) {
	setValidEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("MIGRATIONS_PATH", "/srv/migrations")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "/srv/migrations", cfg.MigrationsPath)
}
