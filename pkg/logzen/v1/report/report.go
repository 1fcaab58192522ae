// Package report turns errors into bounded, single-line strings that are safe
// to place in a log message.
//
// Any error type may take full control of its log text by implementing
// Reporter. Errors that expose a domain, code and info map through
// StructuredError get the default "{ desc. domain: D. code: N }" rendering;
// everything else logs its plain Error() text.
package report

import (
	"fmt"
	"log/slog"
)

// Well-known keys of a structured error's info map.
const (
	DebugDescriptionKey     = "debug_description"
	LocalizedDescriptionKey = "localized_description"
	FailureReasonKey        = "failure_reason"
	UnderlyingErrorKey      = "underlying_error"
)

// Reporter is implemented by errors that supply their own log text.
type Reporter interface {
	// LoggingDescription returns a textual representation of the error that
	// can be safely posted to a log.
	LoggingDescription() string
}

// StructuredError is the optional capability of exposing machine-readable
// fields next to the human-readable message.
type StructuredError interface {
	error
	ErrorDomain() string
	ErrorCode() int
	ErrorInfo() map[string]any
}

// Describe returns the logging description of err: the type's own
// LoggingDescription when it implements Reporter, DefaultDescription otherwise.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if r, ok := err.(Reporter); ok {
		return r.LoggingDescription()
	}
	return DefaultDescription(err)
}

// DefaultDescription is the shared rendering most Reporter implementations
// delegate to. Only err itself is inspected; wrapped errors are not unwrapped.
func DefaultDescription(err error) string {
	if err == nil {
		return ""
	}
	structured, ok := err.(StructuredError)
	if !ok {
		return err.Error()
	}

	desc := err.Error()
	if debug, ok := structured.ErrorInfo()[DebugDescriptionKey].(string); ok {
		desc = debug
	}
	return fmt.Sprintf("{ %s. domain: %s. code: %d }", desc, structured.ErrorDomain(), structured.ErrorCode())
}

// Kind classifies err for metrics by the rendering Describe uses: "custom"
// when it supplies its own log text, "structured" when it gets the default
// structured rendering, "plain" otherwise. *Error is "structured", since its
// LoggingDescription is DefaultDescription.
func Kind(err error) string {
	switch err.(type) {
	case nil:
		return "none"
	case *Error:
		return "structured"
	case Reporter:
		return "custom"
	case StructuredError:
		return "structured"
	default:
		return "plain"
	}
}

// Attr returns err as an "error" attribute carrying its logging description.
func Attr(err error) slog.Attr {
	return slog.String("error", Describe(err))
}

// Error is a general purpose structured error carrying a domain, a code and
// an info map.
type Error struct {
	Domain string
	Code   int
	Info   map[string]any
}

// New creates a structured error. info may be nil.
func New(domain string, code int, info map[string]any) *Error {
	return &Error{Domain: domain, Code: code, Info: info}
}

// Error returns the localized description from the info map, or a generic
// message naming the domain and code.
func (e *Error) Error() string {
	if msg, ok := e.Info[LocalizedDescriptionKey].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("The operation couldn't be completed. (%s error %d.)", e.Domain, e.Code)
}

func (e *Error) ErrorDomain() string       { return e.Domain }
func (e *Error) ErrorCode() int            { return e.Code }
func (e *Error) ErrorInfo() map[string]any { return e.Info }

// LoggingDescription implements Reporter.
func (e *Error) LoggingDescription() string { return DefaultDescription(e) }

// Unwrap exposes the underlying error stored under UnderlyingErrorKey.
func (e *Error) Unwrap() error {
	if cause, ok := e.Info[UnderlyingErrorKey].(error); ok {
		return cause
	}
	return nil
}

var (
	_ StructuredError = (*Error)(nil)
	_ Reporter        = (*Error)(nil)
)
