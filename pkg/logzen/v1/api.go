package v1

import (
	"context"
	"log/slog"

	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	lzlog "github.com/gxo-labs/logzen/pkg/logzen/v1/log"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/metrics"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/tracing"
)

// FacilityV1 defines the public interface for the logzen logging facility.
type FacilityV1 interface {
	// Handle returns the handle for category under the facility's subsystem.
	Handle(category logging.Category) logging.Handle
	// Logger returns the logger bound to handle.
	Logger(handle logging.Handle) lzlog.Logger
	// Emit renders a privacy-annotated format string with args and logs the
	// result through handle at level.
	Emit(ctx context.Context, handle logging.Handle, level slog.Level, format string, args ...interface{})
	// Report returns the logging description of err.
	Report(err error) string

	// MetricsRegistryProvider returns the underlying metrics provider.
	MetricsRegistryProvider() metrics.RegistryProvider
	// TracerProvider returns the underlying tracing provider.
	TracerProvider() tracing.TracerProvider

	// Setter methods for configuring the facility programmatically.
	SetSubsystem(subsystem logging.Subsystem) error
	SetRevealPrivate(reveal bool) error
	SetRedactedKeywords(keywords []string) error
	SetTrackedSecrets(secrets []string) error
	SetCategoryLevel(category logging.Category, level slog.Level) error
	SetMetricsRegistryProvider(provider metrics.RegistryProvider) error
	SetTracerProvider(provider tracing.TracerProvider) error
}

// FacilityOption is a function type used to configure the facility at creation.
type FacilityOption func(FacilityV1) error

// WithSubsystem overrides the default subsystem for handles created by the facility.
func WithSubsystem(subsystem logging.Subsystem) FacilityOption {
	return func(f FacilityV1) error {
		return f.SetSubsystem(subsystem)
	}
}

// WithRevealPrivate renders private format arguments instead of "<private>".
func WithRevealPrivate(reveal bool) FacilityOption {
	return func(f FacilityV1) error {
		return f.SetRevealPrivate(reveal)
	}
}

// WithRedactedKeywords configures keywords whose following value is redacted
// in rendered messages, e.g. "password=..." becomes "password=[REDACTED]".
func WithRedactedKeywords(keywords []string) FacilityOption {
	return func(f FacilityV1) error {
		return f.SetRedactedKeywords(keywords)
	}
}

// WithTrackedSecrets registers secret values that are redacted wherever they
// appear in a rendered public argument.
func WithTrackedSecrets(secrets []string) FacilityOption {
	return func(f FacilityV1) error {
		return f.SetTrackedSecrets(secrets)
	}
}

// WithCategoryLevel sets a minimum level for one category.
func WithCategoryLevel(category logging.Category, level slog.Level) FacilityOption {
	return func(f FacilityV1) error {
		if !category.Valid() {
			return lzerrors.NewInvalidCategoryError(category.String())
		}
		return f.SetCategoryLevel(category, level)
	}
}

// WithMetricsRegistryProvider is a facility option to provide a custom metrics provider.
func WithMetricsRegistryProvider(provider metrics.RegistryProvider) FacilityOption {
	return func(f FacilityV1) error {
		if provider == nil {
			return lzerrors.NewConfigError("metrics registry provider cannot be nil", nil)
		}
		return f.SetMetricsRegistryProvider(provider)
	}
}

// WithTracerProvider is a facility option to provide a custom tracing provider.
func WithTracerProvider(provider tracing.TracerProvider) FacilityOption {
	return func(f FacilityV1) error {
		if provider == nil {
			return lzerrors.NewConfigError("tracer provider cannot be nil", nil)
		}
		return f.SetTracerProvider(provider)
	}
}
