package tracing

import (
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/gxo-labs/logzen/internal/redact"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/report"
)

// tracerName is the instrumentation name of spans started by logzen.
const tracerName = "github.com/gxo-labs/logzen"

// TracerName is the instrumentation name to pass to TracerProvider.GetTracer.
func TracerName() string { return tracerName }

// RedactAttributes returns a copy of attrs with the value of every attribute
// whose key is a keyword replaced by redact.Placeholder.
func RedactAttributes(attrs []attribute.KeyValue, keywords redact.Keywords) []attribute.KeyValue {
	if len(keywords) == 0 || len(attrs) == 0 {
		return attrs
	}
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, kv := range attrs {
		if keywords.Matches(string(kv.Key)) {
			out = append(out, attribute.String(string(kv.Key), redact.Placeholder))
			continue
		}
		out = append(out, kv)
	}
	return out
}

// RecordError records err on span using its logging description, so spans
// carry the same text as the log record. Text following a keyword is
// redacted, and descriptions containing a tracked secret are replaced by
// redact.Placeholder. Nil errors and non-recording spans are ignored.
func RecordError(span oteltrace.Span, err error, tracker *redact.SecretTracker, keywords redact.Keywords) {
	if err == nil || span == nil || !span.IsRecording() {
		return
	}
	desc := keywords.RedactString(report.Describe(err))
	if tracker != nil && tracker.ContainsTrackedSecret(desc) {
		desc = redact.Placeholder
	}

	attrs := []attribute.KeyValue{attribute.String("error.kind", report.Kind(err))}
	if structured, ok := err.(report.StructuredError); ok {
		attrs = append(attrs,
			attribute.String("error.domain", structured.ErrorDomain()),
			attribute.Int("error.code", structured.ErrorCode()),
		)
	}
	span.RecordError(errors.New(desc), oteltrace.WithAttributes(RedactAttributes(attrs, keywords)...))
	span.SetStatus(codes.Error, strings.TrimSpace(desc))
}
