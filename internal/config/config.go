package config

import (
	"log/slog"
	"os"

	"github.com/gxo-labs/logzen/internal/logger"
	"github.com/gxo-labs/logzen/internal/redact"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
)

// Config is the top-level structure of a logzen YAML configuration file.
type Config struct {
	SchemaVersion string `yaml:"schemaVersion"`
	// Subsystem overrides the default subsystem. Empty keeps the default.
	Subsystem string        `yaml:"subsystem,omitempty"`
	Log       LogConfig     `yaml:"log,omitempty"`
	Privacy   PrivacyConfig `yaml:"privacy,omitempty"`
	// Categories maps category names to their minimum level names.
	Categories map[string]string `yaml:"categories,omitempty"`

	// FilePath is the source file, for error messages. Not parsed from YAML.
	FilePath string `yaml:"-"`
}

// LogConfig selects the output handler.
type LogConfig struct {
	Level     string `yaml:"level,omitempty"`
	Format    string `yaml:"format,omitempty"`
	AddSource bool   `yaml:"addSource,omitempty"`
}

// PrivacyConfig controls private argument rendering and redaction.
type PrivacyConfig struct {
	RevealPrivate    bool     `yaml:"revealPrivate,omitempty"`
	RedactedKeywords []string `yaml:"redactedKeywords,omitempty"`
	// TrackedSecretsEnv names environment variables whose values are tracked
	// as secrets.
	TrackedSecretsEnv []string `yaml:"trackedSecretsEnv,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SchemaVersion: "v1.0.0",
		Log: LogConfig{
			Level:  "info",
			Format: logger.FormatText,
		},
		Privacy: PrivacyConfig{
			RedactedKeywords: append([]string(nil), redact.DefaultKeywords...),
		},
	}
}

// LoggerOptions converts the log and privacy sections into logger options.
// Tracked secrets read from the environment are redacted from attributes.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.Options{
		Level:            c.Log.Level,
		Format:           c.Log.Format,
		AddSource:        c.Log.AddSource,
		RedactedKeywords: c.Privacy.RedactedKeywords,
	}
	if secrets := c.TrackedSecrets(); len(secrets) > 0 {
		opts.Tracker = redact.NewSecretTracker()
		for _, s := range secrets {
			opts.Tracker.Add(s)
		}
	}
	return opts
}

// CategoryLevels returns the per-category minimum levels. Entries that do not
// parse are skipped; LoadConfig rejects them before this is reached.
func (c *Config) CategoryLevels() map[logging.Category]slog.Level {
	levels := make(map[logging.Category]slog.Level, len(c.Categories))
	for name, levelName := range c.Categories {
		category, err := logging.ParseCategory(name)
		if err != nil {
			continue
		}
		level, ok := logger.ParseLevel(levelName)
		if !ok {
			continue
		}
		levels[category] = level
	}
	return levels
}

// TrackedSecrets returns the non-empty values of the TrackedSecretsEnv variables.
func (c *Config) TrackedSecrets() []string {
	var secrets []string
	for _, name := range c.Privacy.TrackedSecretsEnv {
		if v := os.Getenv(name); v != "" {
			secrets = append(secrets, v)
		}
	}
	return secrets
}
