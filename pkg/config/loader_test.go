package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrules/pkg/config"
)

type testConfig struct {
	LogLevel   string        `env:"FR_TEST_LOG_LEVEL" envDefault:"info"`
	Continuous bool          `env:"FR_TEST_CONTINUOUS" envDefault:"false"`
	Timeout    time.Duration `env:"FR_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Templates string `env:"FR_TEST_TEMPLATES,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg, filepath.Join(t.TempDir(), "missing.env")))
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.Continuous)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("FR_TEST_LOG_LEVEL", "debug")
		t.Setenv("FR_TEST_CONTINUOUS", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, filepath.Join(t.TempDir(), "missing.env")))
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.Continuous)
	})

	t.Run("reads dotenv file", func(t *testing.T) {
		// Register for cleanup; godotenv sets variables directly.
		t.Setenv("FR_TEST_TIMEOUT", "")
		require.NoError(t, os.Unsetenv("FR_TEST_TIMEOUT"))

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("FR_TEST_TIMEOUT=250ms\n"), 0o600))

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, path))
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg, filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[testConfig](nil), config.ErrNilPointer)
	})

	t.Run("must load panics on error", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg, filepath.Join(t.TempDir(), "missing.env")) })
	})
}
