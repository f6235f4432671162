package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromEnv(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

func TestDefaultsWithPostgres(t *testing.T) {
	cfg, err := fromEnv(t, map[string]string{"DATABASE_URL": "postgres://x"})
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.RecordTimeout)
	assert.Equal(t, 3, cfg.DueSoonDays)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.DigestEnabled())
}

func TestMissingBackendSettings(t *testing.T) {
	_, err := fromEnv(t, map[string]string{"RECORD_BACKEND": "http"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECORD_SERVICE_URL")
	assert.Contains(t, err.Error(), "RECORD_PROJECT_ID")

	_, err = fromEnv(t, map[string]string{"RECORD_BACKEND": "sqlite"})
	require.Error(t, err)
}

func TestMemoryBackendAndDigest(t *testing.T) {
	cfg, err := fromEnv(t, map[string]string{
		"RECORD_BACKEND":  "memory",
		"BOT_TOKEN":       "123:abc",
		"NOTIFY_CHAT_ID":  "100, 200",
		"DIGEST_INTERVAL": "30m",
		"CORS_ORIGINS":    "http://a.test,http://b.test",
		"TZ":              "Europe/Moscow",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, cfg.NotifyChatIDs)
	assert.Equal(t, 30*time.Minute, cfg.DigestInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.True(t, cfg.DigestEnabled())
}

func TestBadChatID(t *testing.T) {
	_, err := fromEnv(t, map[string]string{"RECORD_BACKEND": "memory", "NOTIFY_CHAT_ID": "abc"})
	require.Error(t, err)
}

func TestBadTimezone(t *testing.T) {
	_, err := fromEnv(t, map[string]string{"RECORD_BACKEND": "memory", "TZ": "Mars/Olympus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TZ")
}

func TestServeRecordsNeedsKey(t *testing.T) {
	_, err := fromEnv(t, map[string]string{"RECORD_BACKEND": "memory", "SERVE_RECORDS": "true"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECORD_PUBLIC_KEY")

	cfg, err := fromEnv(t, map[string]string{"RECORD_BACKEND": "memory", "SERVE_RECORDS": "true", "RECORD_PUBLIC_KEY": "pk"})
	require.NoError(t, err)
	assert.True(t, cfg.ServeRecords)
}
