package fetcher_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := fetcher.DefaultConfig("/home/u")

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.ImageConcurrency)
	assert.True(t, cfg.Index)
	assert.False(t, cfg.StrictImages)
	assert.Equal(t, "/home/u/.fetcher", cfg.RootDir())
	assert.Equal(t, "/home/u/.fetcher/index.db", cfg.IndexPath())
}

func TestConfig_IndexPathOverride(t *testing.T) {
	t.Parallel()

	cfg := fetcher.DefaultConfig("/home/u")
	cfg.DBPath = "/tmp/other.db"

	assert.Equal(t, "/tmp/other.db", cfg.IndexPath())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*fetcher.Config)
	}{
		{name: "missing home", modify: func(c *fetcher.Config) { c.Home = "" }},
		{name: "zero timeout", modify: func(c *fetcher.Config) { c.Timeout = 0 }},
		{name: "zero concurrency", modify: func(c *fetcher.Config) { c.ImageConcurrency = 0 }},
		{name: "negative rps", modify: func(c *fetcher.Config) { c.ImageRPS = -1 }},
		{name: "unknown log level", modify: func(c *fetcher.Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := fetcher.DefaultConfig("/home/u")
			tt.modify(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, fetcher.EINVALID, fetcher.ErrorCode(err))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	level, err := fetcher.ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = fetcher.ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
