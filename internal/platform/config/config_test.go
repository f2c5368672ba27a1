package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "gatekeeper/pkg/domain-errors"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "1001")
	t.Setenv("GROUP_ID", "-100200300")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, int64(1001), cfg.Telegram.AdminID)
	assert.Equal(t, int64(-100200300), cfg.Telegram.GroupID)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultLimits(), cfg.Limits)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "gatekeeper.audit", cfg.Audit.KafkaTopic)
	assert.Equal(t, 10000, cfg.Audit.MemoryCapacity)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("ATTEMPT_MAX_FAILURES", "5")
	t.Setenv("AUDIT_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Limits.RequestWindow)
	assert.Equal(t, 5, cfg.Limits.MaxAttempts)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	os.Unsetenv("BOT_TOKEN")
	t.Setenv("ADMIN_ID", "7")
	t.Setenv("GROUP_ID", "-1")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOT_TOKEN=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Telegram.Token)
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "")
	os.Unsetenv("ADMIN_ID")
	t.Setenv("GROUP_ID", "-1")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestLoadParseError(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_ID", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
