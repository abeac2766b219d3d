package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func noEnv(string) string { return "" }

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, logger.LevelNormal, cfg.Level())
	assert.Equal(t, domain.ThemeLight, cfg.ThemeValue())
	assert.Equal(t, domain.ScreenConverter, cfg.StartScreen())
	assert.Equal(t, domain.MoodCheerful, cfg.Chat.MoodValue())
	assert.Equal(t, domain.AccentUS, cfg.Speech.Accent())
	assert.Equal(t, 5*time.Minute, cfg.Timers.ReminderInterval())
	assert.Equal(t, 5*time.Second, cfg.Speech.RecordDuration())
	assert.False(t, cfg.Chat.Ready())
	assert.False(t, cfg.Speech.Ready())
}

func TestReadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
log_level = "verbose"
theme = "dark"
start_screen = "timers"

[chat]
mood = "professional"
model = "gemini-pro"
temperature = 0.2

[speech]
voice = "uk"
enabled = false

[timers]
reminder = "0"
almost_done = "30s"
max_escalation = 5
`)
	cfg := Default()
	require.NoError(t, cfg.readFile(path))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, logger.LevelVerbose, cfg.Level())
	assert.Equal(t, domain.ThemeDark, cfg.ThemeValue())
	assert.Equal(t, domain.ScreenTimers, cfg.StartScreen())
	assert.Equal(t, domain.MoodProfessional, cfg.Chat.MoodValue())
	assert.Equal(t, "gemini-pro", cfg.Chat.Model)
	assert.InDelta(t, 0.2, cfg.Chat.Temperature, 1e-9)
	assert.Equal(t, 1024, cfg.Chat.MaxTokens, "unset keys keep defaults")
	assert.Equal(t, domain.AccentUK, cfg.Speech.Accent())
	assert.False(t, cfg.Speech.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Timers.ReminderInterval())
	assert.Equal(t, 30*time.Second, cfg.Timers.AlmostDoneThreshold())
	assert.Equal(t, 5, cfg.Timers.MaxEscalation)
}

func TestReadYAMLExpandsEnv(t *testing.T) {
	t.Setenv("KP_TEST_KEY", "from-env")
	path := writeFile(t, "config.yaml", `
theme: dark
chat:
  api_key: ${KP_TEST_KEY}
  mood: friendly
speech:
  voice: en-IN
  record_for: 3s
`)
	cfg := Default()
	require.NoError(t, cfg.readFile(path))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "from-env", cfg.Chat.APIKey)
	assert.True(t, cfg.Chat.Ready())
	assert.Equal(t, domain.MoodFriendly, cfg.Chat.MoodValue())
	assert.Equal(t, domain.AccentIndia, cfg.Speech.Accent())
	assert.Equal(t, 3*time.Second, cfg.Speech.RecordDuration())
}

func TestReadFileErrors(t *testing.T) {
	cfg := Default()
	err := cfg.readFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.toml", "theme = [")
	assert.ErrorContains(t, cfg.readFile(bad), "parse")
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "config.toml", `theme = "neon"`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown theme")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvGeminiKey:   "g-key",
		EnvGeminiModel: "gemini-x",
		EnvSpeechKey:   "a-key",
		EnvSpeechArea:  "westeurope",
		EnvTheme:       "dark",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "g-key", cfg.Chat.APIKey)
	assert.Equal(t, "gemini-x", cfg.Chat.Model)
	assert.True(t, cfg.Speech.Ready())
	assert.Equal(t, "dark", cfg.Theme)

	untouched := Default()
	untouched.ApplyEnv(noEnv)
	assert.Equal(t, Default(), untouched)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"screen", func(c *Config) { c.Screen = "garage" }, "unknown screen"},
		{"mood", func(c *Config) { c.Chat.Mood = "grumpy" }, "unknown mood"},
		{"voice", func(c *Config) { c.Speech.Voice = "pirate" }, "unknown voice"},
		{"temperature", func(c *Config) { c.Chat.Temperature = 3 }, "temperature"},
		{"escalation", func(c *Config) { c.Timers.MaxEscalation = -1 }, "max_escalation"},
		{"duration", func(c *Config) { c.Timers.Cooldown = "soon" }, "timers.cooldown"},
		{"negative duration", func(c *Config) { c.Timers.Reminder = "-1m" }, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
