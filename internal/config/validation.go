package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gxo-labs/logzen/internal/logger"
	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
)

// Validate checks the rules the schema cannot express and returns every
// violation found. Unknown category names are reported as
// InvalidCategoryError.
func Validate(c *Config) []error {
	var errs []error

	if c.Log.Level != "" {
		if _, ok := logger.ParseLevel(c.Log.Level); !ok {
			errs = append(errs, lzerrors.NewValidationError(fmt.Sprintf("log.level: unknown level '%s'", c.Log.Level), nil))
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logger.FormatText, logger.FormatJSON, logger.FormatConsole:
	default:
		errs = append(errs, lzerrors.NewValidationError(fmt.Sprintf("log.format: unknown format '%s'", c.Log.Format), nil))
	}
	if c.Subsystem != strings.TrimSpace(c.Subsystem) {
		errs = append(errs, lzerrors.NewValidationError("subsystem must not have leading or trailing spaces", nil))
	}

	// Sorted so repeated loads report errors in the same order.
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := logging.ParseCategory(name); err != nil {
			errs = append(errs, lzerrors.NewValidationError("categories", err))
			continue
		}
		if _, ok := logger.ParseLevel(c.Categories[name]); !ok {
			errs = append(errs, lzerrors.NewValidationError(fmt.Sprintf("categories.%s: unknown level '%s'", name, c.Categories[name]), nil))
		}
	}
	return errs
}
