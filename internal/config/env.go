package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
)

// Environment variables that override configuration values.
const (
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvDebug         = "DEBUG"
	EnvRevealPrivate = "LOGZEN_REVEAL_PRIVATE"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return lzerrors.NewConfigError("failed to load env file '"+name+"'", err)
		}
	}
	return nil
}

// ApplyEnv overrides c with values from the environment. DEBUG=true forces
// the debug level and wins over LOG_LEVEL.
func ApplyEnv(c *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return lzerrors.NewConfigError("invalid "+EnvDebug+" value", err)
		}
		if debug {
			c.Log.Level = "debug"
		}
	}
	if v := strings.TrimSpace(os.Getenv(logging.SubsystemEnvVar)); v != "" {
		c.Subsystem = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRevealPrivate)); v != "" {
		reveal, err := strconv.ParseBool(v)
		if err != nil {
			return lzerrors.NewConfigError("invalid "+EnvRevealPrivate+" value", err)
		}
		c.Privacy.RevealPrivate = reveal
	}
	return nil
}
