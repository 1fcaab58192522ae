package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/gxo-labs/logzen/internal/facility"
	lzlog "github.com/gxo-labs/logzen/pkg/logzen/v1/log"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/report"
)

// Fields of the sample request error.
const (
	failingURLKey    = "failing_url"
	urlErrorDomain   = "NSURLErrorDomain"
	urlErrorTimedOut = -1001
)

// account is the signed-in user in the privacy sample.
type account struct {
	email    string
	password string
}

// testError is a code-carrying error that renders its own log text.
type testError struct {
	code int
}

func (e testError) Error() string              { return fmt.Sprintf("test failure %d", e.code) }
func (e testError) LoggingDescription() string { return fmt.Sprintf("{ code: %d }", e.code) }

// demoInput holds the values the sample call sites log.
type demoInput struct {
	launchDate     time.Time
	accountID      int
	isASuperGenius bool
	account        account
}

// runDemo exercises every severity, a custom subsystem, the closed category
// set, privacy annotations, value formatters and error reporting.
func runDemo(ctx context.Context, fac *facility.Facility, in demoInput) {
	noSubsystem := logging.MakeLog("", logging.CategoryDefault)
	fac.Emit(ctx, noSubsystem, lzlog.LevelDefault, "This is a default message with no subsystem.")

	def := fac.Handle(logging.CategoryDefault)
	fac.Emit(ctx, def, lzlog.LevelDebug, "Debug Level")
	fac.Emit(ctx, def, lzlog.LevelInfo, "Info Level")
	fac.Emit(ctx, def, lzlog.LevelDefault, "Default Level")
	fac.Emit(ctx, def, lzlog.LevelFault, "Fault Level")
	fac.Emit(ctx, def, lzlog.LevelError, "Error Level")

	// Only the closed category set is accepted, so "Cats" is reported and the
	// message goes to the custom subsystem's default category instead.
	cats, err := logging.MakeLogNamed("JWWSubsystem", "Cats")
	if err != nil {
		fac.Emit(ctx, def, lzlog.LevelError, "Rejected ad-hoc category. %{public}@", fac.Report(err))
		cats = logging.MakeLog("JWWSubsystem", logging.CategoryDefault)
	}
	fac.Emit(ctx, cats, lzlog.LevelDefault, "Cats, cats, cat!")

	fac.Emit(ctx, def, lzlog.LevelDefault, "Account ID = %{private}i", in.accountID)
	fac.Emit(ctx, def, lzlog.LevelDefault, "User signed in. Email: %{public}@. Password: %@", in.account.email, in.account.password)

	fac.Emit(ctx, def, lzlog.LevelDefault, "Launched at %{time_t}d", in.launchDate.Unix())
	genius := "NO"
	if in.isASuperGenius {
		genius = "YES"
	}
	fac.Emit(ctx, def, lzlog.LevelDefault, "Are you a super genius? %@", genius)
	fac.Emit(ctx, def, lzlog.LevelDefault, "Are you a super genius? %{BOOL}d", in.isASuperGenius)
	fac.Emit(ctx, def, lzlog.LevelDefault, "Are you a super genius? %{bool}d", in.isASuperGenius)
	fac.Emit(ctx, def, lzlog.LevelDefault, "Downloading at %{bitrate}d", 1500)

	requestErr := report.New(urlErrorDomain, urlErrorTimedOut, map[string]any{
		report.LocalizedDescriptionKey: "Error Description",
		report.FailureReasonKey:        "Error Failure Reason",
		failingURLKey:                  "https://justinw.me",
		report.DebugDescriptionKey:     "Error Debug Description",
	})
	fac.Emit(ctx, def, lzlog.LevelDefault, "Request couldn't be completed. %{public}@", fac.Report(requestErr))

	var failure error = testError{code: 300}
	fac.Emit(ctx, def, lzlog.LevelDefault, "Test error failed. %{public}@", fac.Report(failure))

	fac.Emit(ctx, def, lzlog.LevelDefault, "Error %{errno}d", syscall.EADDRNOTAVAIL)

	// Wrapped errors are described by their outermost value only.
	wrapped := fmt.Errorf("fetch feed: %w", requestErr)
	fac.Emit(ctx, def, lzlog.LevelDebug, "Wrapped request error. %{public}@", fac.Report(wrapped))
}
