package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"database_url": "postgres://localhost/tenabot",
		"media_root": "/var/lib/tenabot",
		"min_text_length": 80,
		"keywords": ["experience", "skills"],
		"max_uploads_per_day": 3
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/tenabot", cfg.DatabaseURL)
	assert.Equal(t, "/var/lib/tenabot", cfg.MediaRoot)
	assert.Equal(t, 80, cfg.MinTextLength)
	assert.Equal(t, []string{"experience", "skills"}, cfg.Keywords)
	assert.Equal(t, 3, cfg.MaxUploadsPerDay)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("bad JSON", func(t *testing.T) {
		path := writeConfigFile(t, `{not json`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("MIN_TEXT_LENGTH", "120")
	t.Setenv("RESUME_KEYWORDS", "experience, education ,skills")
	t.Setenv("MAX_UPLOADS_PER_DAY", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "gm-key", cfg.GeminiAPIKey)
	assert.Equal(t, "tg-token", cfg.TelegramBotToken)
	assert.Equal(t, 120, cfg.MinTextLength)
	assert.Equal(t, []string{"experience", "education", "skills"}, cfg.Keywords)
	assert.Equal(t, 5, cfg.MaxUploadsPerDay)
}

func TestFromEnvInvalidNumber(t *testing.T) {
	t.Setenv("MIN_TEXT_LENGTH", "plenty")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{MinTextLength: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{MaxUploadsPerDay: -2}
	assert.Error(t, cfg.Validate())

	cfg = &Config{MinTextLength: 50, MaxUploadsPerDay: 1}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/tenabot"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "postgres://localhost/tenabot", merged.DatabaseURL)
	assert.Equal(t, "media", merged.MediaRoot)
	assert.Equal(t, ":8080", merged.ListenAddr)
	assert.Equal(t, 1, merged.MaxUploadsPerDay)

	// explicit values win over defaults
	cfg = Config{MediaRoot: "/data", MaxUploadsPerDay: 10}
	merged = cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, "/data", merged.MediaRoot)
	assert.Equal(t, 10, merged.MaxUploadsPerDay)
}
