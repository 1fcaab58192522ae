// Package facility implements the logzen FacilityV1: handle-bound loggers,
// privacy-annotated message rendering with privacy and redaction, error reporting,
// and the record counters.
package facility

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gxo-labs/logzen/internal/format"
	"github.com/gxo-labs/logzen/internal/logger"
	intMetrics "github.com/gxo-labs/logzen/internal/metrics"
	"github.com/gxo-labs/logzen/internal/redact"
	"github.com/gxo-labs/logzen/internal/registry"
	intTracing "github.com/gxo-labs/logzen/internal/tracing"
	lz "github.com/gxo-labs/logzen/pkg/logzen/v1"
	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	lzlog "github.com/gxo-labs/logzen/pkg/logzen/v1/log"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/metrics"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/report"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/tracing"
	"go.opentelemetry.io/otel/trace"
)

// FormatErrorKey is the attribute carrying the compile error when a record's
// format string is malformed. The record's message is then the raw format.
const FormatErrorKey = "format_error"

// MaxCachedFormats bounds the compiled format cache. Formats seen after the
// cache is full are compiled on every call.
const MaxCachedFormats = 1024

// Facility is the default FacilityV1 implementation. It is safe for
// concurrent use; setters may be called while other goroutines emit.
type Facility struct {
	registry *registry.Registry

	mu              sync.RWMutex
	revealPrivate   bool
	keywords        redact.Keywords
	tracker         *redact.SecretTracker
	metricsProvider metrics.RegistryProvider
	tracerProvider  tracing.TracerProvider
	counters        *intMetrics.Counters

	// formats caches successfully compiled format strings by source.
	formats     sync.Map
	formatCount atomic.Int64
}

var _ lz.FacilityV1 = (*Facility)(nil)

// NewFacility creates a facility whose records go through log. Without
// options it uses the default subsystem, hides private arguments, counts
// into a fresh Prometheus registry and records no spans.
func NewFacility(log lzlog.Logger, opts ...lz.FacilityOption) (*Facility, error) {
	if log == nil {
		return nil, lzerrors.NewConfigError("logger cannot be nil", nil)
	}

	f := &Facility{
		registry:       registry.New(log, logging.DefaultSubsystem()),
		tracker:        redact.NewSecretTracker(),
		tracerProvider: intTracing.NewNoOpProvider(),
	}
	if err := f.SetMetricsRegistryProvider(intMetrics.NewPrometheusRegistryProvider()); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, lzerrors.NewConfigError(fmt.Sprintf("failed to apply facility option: %v", err), err)
		}
	}
	return f, nil
}

// Handle returns the handle for category under the facility's subsystem.
func (f *Facility) Handle(category logging.Category) logging.Handle {
	return f.registry.Handle(category)
}

// Logger returns the logger bound to handle.
func (f *Facility) Logger(handle logging.Handle) lzlog.Logger {
	return f.registry.Logger(handle)
}

// Handles lists the handles that have emitted through the facility.
func (f *Facility) Handles() []logging.Handle {
	return f.registry.List()
}

// Emit renders format with args and logs the result through handle at level.
// Records below the handle's minimum level are dropped before rendering. A
// malformed format is logged verbatim with a FormatErrorKey attribute. At
// ERROR and above, error arguments that render visibly are also recorded on
// the span in ctx, with the same keyword and secret redaction.
func (f *Facility) Emit(ctx context.Context, handle logging.Handle, level slog.Level, fmtStr string, args ...interface{}) {
	l := f.registry.Logger(handle)
	if !l.IsEnabled(level) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.RLock()
	reveal, keywords, tracker, counters := f.revealPrivate, f.keywords, f.tracker, f.counters
	f.mu.RUnlock()

	var attrs []interface{}
	var msg string
	compiledFormat, err := f.compile(fmtStr)
	if err != nil {
		msg = fmtStr
		attrs = append(attrs, slog.String(FormatErrorKey, err.Error()))
	} else {
		msg = compiledFormat.Render(args, format.RenderOptions{RevealPrivate: reveal, Tracker: tracker})
	}
	msg = keywords.RedactString(msg)

	if level >= lzlog.LevelError && compiledFormat != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			for _, arg := range compiledFormat.VisibleArgs(args, reveal) {
				if err, ok := arg.(error); ok {
					intTracing.RecordError(span, err, tracker, keywords)
				}
			}
		}
	}

	l.LogCtx(ctx, level, msg, attrs...)
	counters.Records.WithLabelValues(string(handle.Subsystem()), handle.Category().String(), logger.LevelName(level)).Inc()
}

// compile returns the compiled form of fmtStr. Only successful compiles are
// cached, and only while the cache holds fewer than MaxCachedFormats entries.
func (f *Facility) compile(fmtStr string) (*format.Format, error) {
	if v, ok := f.formats.Load(fmtStr); ok {
		return v.(*format.Format), nil
	}
	compiledFormat, err := format.Compile(fmtStr)
	if err != nil {
		return nil, err
	}
	if f.formatCount.Load() >= MaxCachedFormats {
		return compiledFormat, nil
	}
	if _, loaded := f.formats.LoadOrStore(fmtStr, compiledFormat); !loaded {
		f.formatCount.Add(1)
	}
	return compiledFormat, nil
}

// Report returns the logging description of err and counts it by kind.
// A nil error yields "" and is not counted.
func (f *Facility) Report(err error) string {
	if err == nil {
		return ""
	}
	f.mu.RLock()
	counters := f.counters
	f.mu.RUnlock()
	counters.ErrorReports.WithLabelValues(report.Kind(err)).Inc()
	return report.Describe(err)
}

// Tracer returns a tracer from the facility's tracer provider.
func (f *Facility) Tracer() trace.Tracer {
	return f.TracerProvider().GetTracer(intTracing.TracerName())
}

// Shutdown flushes the tracer provider.
func (f *Facility) Shutdown(ctx context.Context) error {
	return f.TracerProvider().Shutdown(ctx)
}

// MetricsRegistryProvider returns the provider the facility counters are registered with.
func (f *Facility) MetricsRegistryProvider() metrics.RegistryProvider {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.metricsProvider
}

// TracerProvider returns the provider used by Tracer and Shutdown.
func (f *Facility) TracerProvider() tracing.TracerProvider {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tracerProvider
}

// --- FacilityV1 Setter Implementations ---

// SetSubsystem changes the subsystem of handles returned by later Handle calls.
func (f *Facility) SetSubsystem(subsystem logging.Subsystem) error {
	f.registry.SetSubsystem(subsystem)
	return nil
}

// SetRevealPrivate controls whether private arguments render as text.
func (f *Facility) SetRevealPrivate(reveal bool) error {
	f.mu.Lock()
	f.revealPrivate = reveal
	f.mu.Unlock()
	return nil
}

// SetRedactedKeywords replaces the keywords whose following text is redacted
// in rendered messages and recorded span errors.
func (f *Facility) SetRedactedKeywords(keywords []string) error {
	set := redact.NewKeywords(keywords)
	f.mu.Lock()
	f.keywords = set
	f.mu.Unlock()
	return nil
}

// SetTrackedSecrets adds secrets to the tracker. Empty values are ignored.
func (f *Facility) SetTrackedSecrets(secrets []string) error {
	f.mu.RLock()
	tracker := f.tracker
	f.mu.RUnlock()
	for _, s := range secrets {
		tracker.Add(s)
	}
	return nil
}

// SetCategoryLevel sets the minimum level of every handle of category,
// including loggers already returned by Logger.
func (f *Facility) SetCategoryLevel(category logging.Category, level slog.Level) error {
	return f.registry.SetCategoryLevel(category, level)
}

// SetMetricsRegistryProvider registers the facility counters with provider.
// Counters already registered there are reused.
func (f *Facility) SetMetricsRegistryProvider(provider metrics.RegistryProvider) error {
	if provider == nil {
		return lzerrors.NewConfigError("metrics registry provider cannot be nil", nil)
	}
	counters, err := intMetrics.NewCounters(provider.Registry())
	if err != nil {
		return lzerrors.NewConfigError("failed to register facility metrics", err)
	}
	f.mu.Lock()
	f.metricsProvider = provider
	f.counters = counters
	f.mu.Unlock()
	return nil
}

// SetTracerProvider replaces the provider used for spans.
func (f *Facility) SetTracerProvider(provider tracing.TracerProvider) error {
	if provider == nil {
		return lzerrors.NewConfigError("tracer provider cannot be nil", nil)
	}
	f.mu.Lock()
	f.tracerProvider = provider
	f.mu.Unlock()
	return nil
}
