package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_Defaults(t *testing.T) {
	t.Setenv("COUNTDOWN_LOCATION", "UTC")

	cfg, err := readConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.listenAddr)
	assert.True(t, cfg.target.IsZero(), "default target is end of month")
	assert.Equal(t, "UTC", cfg.location.String())
	assert.Equal(t, time.Second, cfg.tickInterval)
	assert.Equal(t, 10, cfg.rateBurst)
	assert.Equal(t, 500, cfg.streamMax)
	assert.False(t, cfg.eventsEnabled)
	assert.Equal(t, "end-of-month", targetLabel(cfg))
}

func TestReadConfig_Target(t *testing.T) {
	t.Setenv("COUNTDOWN_LOCATION", "America/Sao_Paulo")
	t.Setenv("COUNTDOWN_TARGET", "2026-11-30 23:59:59")

	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, "2026-11-30T23:59:59-03:00", cfg.target.Format(time.RFC3339))
}

func TestReadConfig_InvalidTargetFailsAtStartup(t *testing.T) {
	t.Setenv("COUNTDOWN_TARGET", "fim do mês")
	_, err := readConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COUNTDOWN_TARGET")
}

func TestReadConfig_LowRPSDefaultsBurstToOne(t *testing.T) {
	t.Setenv("RATE_RPS", "0.5")
	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.rateBurst)
}

func TestReadConfig_EventsRequireRedisAddr(t *testing.T) {
	t.Setenv("EVENTS_ENABLED", "true")
	_, err := readConfig()
	require.Error(t, err)

	t.Setenv("EVENTS_REDIS_ADDR", "localhost:6379")
	cfg, err := readConfig()
	require.NoError(t, err)
	assert.True(t, cfg.eventsEnabled)
	assert.Equal(t, "countdown:events", cfg.eventsPrefix)
}

func TestReadConfig_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"COUNTDOWN_TICK":     "-1s",
		"RATE_BURST":         "0",
		"STREAM_MAX":         "-1",
		"COUNTDOWN_LOCATION": "Terra/Atlantida",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := readConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("COUNTDOWN_TICK=250ms\n"), 0o600))

	t.Setenv("COUNTDOWN_TICK", "")
	os.Unsetenv("COUNTDOWN_TICK")
	require.NoError(t, loadDotEnv(path))

	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.tickInterval)
}
