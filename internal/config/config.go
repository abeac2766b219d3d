// Package config loads KitchenPal settings: built-in defaults, then an
// optional TOML or YAML file, then environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Environment variables read by ApplyEnv.
const (
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvGeminiModel = "GEMINI_MODEL"
	EnvSpeechKey   = "AZURE_SPEECH_KEY"
	EnvSpeechArea  = "AZURE_SPEECH_REGION"
	EnvTheme       = "KITCHENPAL_THEME"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	Theme    string `toml:"theme" yaml:"theme"`
	Screen   string `toml:"start_screen" yaml:"start_screen"`

	Chat   ChatConfig   `toml:"chat" yaml:"chat"`
	Speech SpeechConfig `toml:"speech" yaml:"speech"`
	Timers TimerConfig  `toml:"timers" yaml:"timers"`
}

// ChatConfig configures Chef Gemini.
type ChatConfig struct {
	Enabled     bool    `toml:"enabled" yaml:"enabled"`
	APIKey      string  `toml:"api_key" yaml:"api_key"`
	Model       string  `toml:"model" yaml:"model"`
	Mood        string  `toml:"mood" yaml:"mood"`
	Temperature float64 `toml:"temperature" yaml:"temperature"`
	MaxTokens   int     `toml:"max_tokens" yaml:"max_tokens"`
	PerMinute   int     `toml:"requests_per_minute" yaml:"requests_per_minute"`
}

// SpeechConfig configures read-aloud and voice input.
type SpeechConfig struct {
	Enabled      bool   `toml:"enabled" yaml:"enabled"`
	Key          string `toml:"azure_key" yaml:"azure_key"`
	Region       string `toml:"azure_region" yaml:"azure_region"`
	Voice        string `toml:"voice" yaml:"voice"`
	CacheSize    int    `toml:"cache_size" yaml:"cache_size"`
	WhisperBin   string `toml:"whisper_bin" yaml:"whisper_bin"`
	WhisperModel string `toml:"whisper_model" yaml:"whisper_model"`
	RecordFor    string `toml:"record_for" yaml:"record_for"`
}

// TimerConfig tunes the timer supervisor. Durations use time.ParseDuration
// syntax ("5m", "30s"); "0" disables reminders.
type TimerConfig struct {
	Reminder      string `toml:"reminder" yaml:"reminder"`
	AlmostDone    string `toml:"almost_done" yaml:"almost_done"`
	Cooldown      string `toml:"cooldown" yaml:"cooldown"`
	MaxEscalation int    `toml:"max_escalation" yaml:"max_escalation"`
	PauseNudge    string `toml:"pause_nudge" yaml:"pause_nudge"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "normal",
		LogFile:  filepath.Join(Dir(), "kitchenpal.log"),
		Theme:    string(domain.ThemeLight),
		Screen:   domain.ScreenConverter.String(),
		Chat: ChatConfig{
			Enabled:     true,
			Model:       "gemini-2.0-flash",
			Mood:        string(domain.MoodCheerful),
			Temperature: 0.7,
			MaxTokens:   1024,
			PerMinute:   15,
		},
		Speech: SpeechConfig{
			Enabled:      true,
			Voice:        string(domain.AccentUS),
			CacheSize:    64,
			WhisperBin:   "whisper-cli",
			WhisperModel: "bin/ggml-small.bin",
			RecordFor:    "5s",
		},
		Timers: TimerConfig{
			Reminder:      "5m",
			AlmostDone:    "1m",
			Cooldown:      "30s",
			MaxEscalation: 3,
			PauseNudge:    "5m",
		},
	}
}

// Dir returns the per-user KitchenPal directory (~/.kitchenpal).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kitchenpal"
	}
	return filepath.Join(home, ".kitchenpal")
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load builds the configuration. An empty path means DefaultPath, which
// may be missing; an explicit path must exist. Environment overrides are
// applied before validation.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile decodes path over cfg. The format follows the extension:
// .yaml/.yml is YAML, anything else TOML. ${VAR} references are expanded.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(expanded, c)
	default:
		err = toml.Unmarshal(expanded, c)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from the environment. Secrets are usually
// supplied this way (often from a .env file).
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvGeminiKey); v != "" {
		c.Chat.APIKey = v
	}
	if v := getenv(EnvGeminiModel); v != "" {
		c.Chat.Model = v
	}
	if v := getenv(EnvSpeechKey); v != "" {
		c.Speech.Key = v
	}
	if v := getenv(EnvSpeechArea); v != "" {
		c.Speech.Region = v
	}
	if v := getenv(EnvTheme); v != "" {
		c.Theme = v
	}
}

// Validate rejects unknown names and malformed durations.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := domain.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := domain.ParseScreen(c.Screen); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := domain.ParseMood(c.Chat.Mood); err != nil {
		return fmt.Errorf("config: chat: %w", err)
	}
	if _, err := domain.ParseAccent(c.Speech.Voice); err != nil {
		return fmt.Errorf("config: speech: %w", err)
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("config: chat: temperature %.2f out of range [0, 2]", c.Chat.Temperature)
	}
	if c.Timers.MaxEscalation < 0 {
		return fmt.Errorf("config: timers: max_escalation must not be negative")
	}

	durations := map[string]string{
		"speech.record_for":  c.Speech.RecordFor,
		"timers.reminder":    c.Timers.Reminder,
		"timers.almost_done": c.Timers.AlmostDone,
		"timers.cooldown":    c.Timers.Cooldown,
		"timers.pause_nudge": c.Timers.PauseNudge,
	}
	for name, v := range durations {
		if _, err := parseDuration(v); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

// ── Typed accessors (valid after Validate) ───────────────────────

func (c Config) Level() logger.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}

func (c Config) ThemeValue() domain.Theme {
	t, _ := domain.ParseTheme(c.Theme)
	return t
}

func (c Config) StartScreen() domain.Screen {
	s, _ := domain.ParseScreen(c.Screen)
	return s
}

func (c ChatConfig) MoodValue() domain.Mood {
	m, _ := domain.ParseMood(c.Mood)
	return m
}

// Ready reports whether chat is enabled and has a key.
func (c ChatConfig) Ready() bool { return c.Enabled && c.APIKey != "" }

func (c SpeechConfig) Accent() domain.Accent {
	a, _ := domain.ParseAccent(c.Voice)
	return a
}

// Ready reports whether read-aloud is enabled and has Azure credentials.
func (c SpeechConfig) Ready() bool { return c.Enabled && c.Key != "" && c.Region != "" }

func (c SpeechConfig) RecordDuration() time.Duration {
	d, _ := parseDuration(c.RecordFor)
	return d
}

func (c TimerConfig) ReminderInterval() time.Duration {
	d, _ := parseDuration(c.Reminder)
	return d
}

func (c TimerConfig) AlmostDoneThreshold() time.Duration {
	d, _ := parseDuration(c.AlmostDone)
	return d
}

func (c TimerConfig) NotifyCooldown() time.Duration {
	d, _ := parseDuration(c.Cooldown)
	return d
}

func (c TimerConfig) PauseNudgeAfter() time.Duration {
	d, _ := parseDuration(c.PauseNudge)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
