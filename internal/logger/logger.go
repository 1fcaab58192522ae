package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"github.com/gxo-labs/logzen/internal/redact"
	lzlog "github.com/gxo-labs/logzen/pkg/logzen/v1/log"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/report"
)

// Default log level if not specified or invalid.
const defaultLevel = slog.LevelInfo

// Output formats accepted by NewLogger.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// consoleTimeFormat keeps colored console output short.
const consoleTimeFormat = "2006-01-02 15:04:05"

// Mapping from levels to the uppercase names printed in records.
var levelStringMap = map[slog.Level]string{
	lzlog.LevelDebug:   "DEBUG",
	lzlog.LevelInfo:    "INFO",
	lzlog.LevelDefault: "DEFAULT",
	lzlog.LevelWarn:    "WARN",
	lzlog.LevelError:   "ERROR",
	lzlog.LevelFault:   "FAULT",
}

// ParseLevel converts a level name (case-insensitive) to its slog.Level.
// The second result is false for unknown names.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return lzlog.LevelDebug, true
	case "INFO":
		return lzlog.LevelInfo, true
	case "DEFAULT", "NOTICE":
		return lzlog.LevelDefault, true
	case "WARN", "WARNING":
		return lzlog.LevelWarn, true
	case "ERROR":
		return lzlog.LevelError, true
	case "FAULT":
		return lzlog.LevelFault, true
	default:
		return defaultLevel, false
	}
}

// LevelName returns the printed name of level.
func LevelName(level slog.Level) string {
	if name, ok := levelStringMap[level]; ok {
		return name
	}
	return level.String()
}

// Options configures NewLogger.
type Options struct {
	// Level is a level name; unknown names fall back to INFO.
	Level string
	// Format is "text", "json" or "console". Unknown formats use text.
	Format string
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// AddSource includes file:line in records.
	AddSource bool
	// RedactedKeywords are attribute keys whose values are replaced.
	RedactedKeywords []string
	// Tracker, when set, replaces attribute values containing a tracked secret.
	Tracker *redact.SecretTracker
}

// defaultLogger implements the public lzlog.Logger interface on top of slog.
type defaultLogger struct {
	*slog.Logger
}

var _ lzlog.Logger = (*defaultLogger)(nil)

// NewLogger creates a new Logger configured with the specified level and
// output format, writing text records to writer (defaults to os.Stderr).
func NewLogger(levelStr string, formatStr string, writer io.Writer) lzlog.Logger {
	return NewLoggerWithOptions(Options{Level: levelStr, Format: formatStr, Writer: writer})
}

// NewLoggerWithOptions creates a Logger from opts.
func NewLoggerWithOptions(opts Options) lzlog.Logger {
	level, _ := ParseLevel(opts.Level)
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	keywords := redact.NewKeywords(opts.RedactedKeywords)
	replace := func(groups []string, a slog.Attr) slog.Attr {
		a = opts.Tracker.ReplaceAttr(groups, a)
		return replaceLevelAttribute(groups, keywords.ReplaceAttr(groups, a))
	}

	var baseHandler slog.Handler
	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		baseHandler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource, ReplaceAttr: replace})
	case FormatConsole:
		baseHandler = tint.NewHandler(writer, &tint.Options{
			Level:       level,
			AddSource:   opts.AddSource,
			TimeFormat:  consoleTimeFormat,
			NoColor:     !isTerminal(writer),
			ReplaceAttr: replace,
		})
	default:
		baseHandler = slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource, ReplaceAttr: replace})
	}

	return &defaultLogger{
		Logger: slog.New(NewOtelHandler(baseHandler)),
	}
}

// NewDefaultLogger provides a basic text logger instance writing to Stderr.
func NewDefaultLogger(levelStr string) lzlog.Logger {
	return NewLogger(levelStr, FormatText, os.Stderr)
}

// isTerminal reports whether w is a terminal; console colors are only
// written to terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// replaceLevelAttribute prints the level attribute with logzen's level names,
// so custom levels show as DEFAULT and FAULT instead of INFO+2 and ERROR+4.
func replaceLevelAttribute(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	a.Value = slog.StringValue(LevelName(level))
	return a
}

func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.logf(lzlog.LevelDebug, format, args...)
}

func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.logf(lzlog.LevelInfo, format, args...)
}

func (l *defaultLogger) Defaultf(format string, args ...interface{}) {
	l.logf(lzlog.LevelDefault, format, args...)
}

func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.logf(lzlog.LevelWarn, format, args...)
}

// Errorf logs at ERROR; a trailing error argument is also attached as an
// "error" attribute carrying its logging description.
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.logfWithError(lzlog.LevelError, format, args...)
}

// Faultf logs at FAULT with the same trailing-error handling as Errorf.
func (l *defaultLogger) Faultf(format string, args ...interface{}) {
	l.logfWithError(lzlog.LevelFault, format, args...)
}

func (l *defaultLogger) logf(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.Logger.Enabled(ctx, level) {
		return
	}
	l.Logger.Log(ctx, level, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) logfWithError(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.Logger.Enabled(ctx, level) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	var attrs []any
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			attrs = append(attrs, report.Attr(err))
		}
	}
	l.Logger.Log(ctx, level, msg, attrs...)
}

func (l *defaultLogger) Log(level slog.Level, msg string, args ...interface{}) {
	l.Logger.Log(context.Background(), level, msg, args...)
}

// LogCtx logs with ctx so the OtelHandler can attach trace/span IDs.
func (l *defaultLogger) LogCtx(ctx context.Context, level slog.Level, msg string, args ...interface{}) {
	l.Logger.Log(ctx, level, msg, args...)
}

func (l *defaultLogger) With(args ...interface{}) lzlog.Logger {
	return &defaultLogger{Logger: l.Logger.With(args...)}
}

func (l *defaultLogger) WithLevel(level slog.Leveler) lzlog.Logger {
	if level == nil {
		return l
	}
	return &defaultLogger{Logger: slog.New(&levelHandler{level: level, next: l.Logger.Handler()})}
}

func (l *defaultLogger) IsEnabled(level slog.Level) bool {
	return l.Logger.Enabled(context.Background(), level)
}

// --- levelHandler for per-logger minimum levels ---

// levelHandler drops records below its level before the wrapped handler sees
// them. It can only raise the effective minimum, never lower it.
type levelHandler struct {
	level slog.Leveler
	next  slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.next.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.next.Handle(ctx, record)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithGroup(name)}
}

// --- OtelHandler for Trace/Span ID Injection ---

// OtelHandler is a slog.Handler middleware that injects OpenTelemetry trace_id
// and span_id attributes when the logging context carries a valid span.
type OtelHandler struct {
	next slog.Handler
}

// NewOtelHandler creates a new OtelHandler wrapping the provided handler.
func NewOtelHandler(next slog.Handler) *OtelHandler {
	return &OtelHandler{next: next}
}

func (h *OtelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *OtelHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		record.AddAttrs(
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
		)
	}
	return h.next.Handle(ctx, record)
}

func (h *OtelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewOtelHandler(h.next.WithAttrs(attrs))
}

func (h *OtelHandler) WithGroup(name string) slog.Handler {
	return NewOtelHandler(h.next.WithGroup(name))
}
