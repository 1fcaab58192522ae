package report_test

import (
	"errors"
	"fmt"
	"testing"

	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failure mirrors an application error kind that renders its own payload.
type failure struct {
	code int
}

func (f failure) Error() string              { return fmt.Sprintf("failure %d", f.code) }
func (f failure) LoggingDescription() string { return fmt.Sprintf("{ code: %d }", f.code) }

// customStructured exposes structured fields and still overrides its log text.
type customStructured struct{}

func (customStructured) Error() string              { return "structured but custom" }
func (customStructured) ErrorDomain() string        { return "D" }
func (customStructured) ErrorCode() int             { return 1 }
func (customStructured) ErrorInfo() map[string]any  { return map[string]any{report.DebugDescriptionKey: "ignored"} }
func (customStructured) LoggingDescription() string { return "{ custom }" }

// bareStructured implements StructuredError without Reporter.
type bareStructured struct {
	info map[string]any
}

func (b bareStructured) Error() string             { return "bare message" }
func (b bareStructured) ErrorDomain() string       { return "bare.domain" }
func (b bareStructured) ErrorCode() int            { return -1001 }
func (b bareStructured) ErrorInfo() map[string]any { return b.info }

func TestDescribe_StructuredWithDebugDescription(t *testing.T) {
	err := report.New("D", 7, map[string]any{report.DebugDescriptionKey: "oops"})
	assert.Equal(t, "{ oops. domain: D. code: 7 }", report.Describe(err))
}

func TestDescribe_StructuredFallsBackToLocalizedMessage(t *testing.T) {
	err := report.New("D", 7, map[string]any{report.LocalizedDescriptionKey: "fallback msg"})
	assert.Equal(t, "{ fallback msg. domain: D. code: 7 }", report.Describe(err))
}

func TestDescribe_PlainError(t *testing.T) {
	assert.Equal(t, "simple failure", report.Describe(errors.New("simple failure")))
}

func TestDescribe_CustomOverride(t *testing.T) {
	assert.Equal(t, "{ code: 300 }", report.Describe(failure{code: 300}))
	assert.Equal(t, "{ custom }", report.Describe(customStructured{}))
}

func TestDescribe_BareStructuredUsesDefault(t *testing.T) {
	assert.Equal(t, "{ bare message. domain: bare.domain. code: -1001 }", report.Describe(bareStructured{}))

	withDebug := bareStructured{info: map[string]any{report.DebugDescriptionKey: "dbg"}}
	assert.Equal(t, "{ dbg. domain: bare.domain. code: -1001 }", report.Describe(withDebug))

	// A non-string debug description is ignored.
	wrongType := bareStructured{info: map[string]any{report.DebugDescriptionKey: 42}}
	assert.Equal(t, "{ bare message. domain: bare.domain. code: -1001 }", report.Describe(wrongType))
}

func TestDescribe_WrappedErrorsAreNotUnwrapped(t *testing.T) {
	inner := report.New("D", 7, map[string]any{report.DebugDescriptionKey: "oops"})
	wrapped := fmt.Errorf("request failed: %w", inner)
	assert.Equal(t, "request failed: oops", report.Describe(fmt.Errorf("request failed: %w", errors.New("oops"))))
	assert.Equal(t, wrapped.Error(), report.Describe(wrapped))
}

func TestDescribe_Nil(t *testing.T) {
	assert.Equal(t, "", report.Describe(nil))
	assert.Equal(t, "", report.DefaultDescription(nil))
}

func TestDefaultDescription_IgnoresOverride(t *testing.T) {
	assert.Equal(t, "failure 300", report.DefaultDescription(failure{code: 300}))
	assert.Equal(t, "{ ignored. domain: D. code: 1 }", report.DefaultDescription(customStructured{}))
}

func TestError_Message(t *testing.T) {
	generic := report.New("net.url", -1001, nil)
	assert.Equal(t, "The operation couldn't be completed. (net.url error -1001.)", generic.Error())
	assert.Equal(t, "{ The operation couldn't be completed. (net.url error -1001.). domain: net.url. code: -1001 }", report.Describe(generic))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := report.New("net", 54, map[string]any{report.UnderlyingErrorKey: cause})
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, report.New("net", 54, nil).Unwrap())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "none", report.Kind(nil))
	assert.Equal(t, "structured", report.Kind(report.New("D", 1, nil)))
	assert.Equal(t, "structured", report.Kind(bareStructured{}))
	assert.Equal(t, "custom", report.Kind(failure{code: 300}))
	assert.Equal(t, "custom", report.Kind(customStructured{}), "follows the override Describe uses")
	assert.Equal(t, "plain", report.Kind(errors.New("x")))
}

func TestAttr(t *testing.T) {
	attr := report.Attr(failure{code: 300})
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "{ code: 300 }", attr.Value.String())
}

func TestInvalidCategoryError_ReportsItself(t *testing.T) {
	err := lzerrors.NewInvalidCategoryError("Cats")
	require.Implements(t, (*report.Reporter)(nil), err)
	assert.Equal(t, `{ category: "Cats" }`, report.Describe(err))
}
