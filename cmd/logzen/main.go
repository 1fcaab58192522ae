package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	lz "github.com/gxo-labs/logzen/pkg/logzen/v1"
	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	lzlog "github.com/gxo-labs/logzen/pkg/logzen/v1/log"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"

	"github.com/gxo-labs/logzen/internal/config"
	"github.com/gxo-labs/logzen/internal/facility"
	"github.com/gxo-labs/logzen/internal/logger"
	"github.com/gxo-labs/logzen/internal/metrics"
	"github.com/gxo-labs/logzen/internal/redact"
	"github.com/gxo-labs/logzen/internal/tracing"
)

const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
	ExitSigIntBase = 128
	ExitSigInt     = ExitSigIntBase + int(syscall.SIGINT)
	DefaultEnvFile = ".env"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "validate":
			os.Exit(runValidateCommand(os.Args[2:], os.Stderr))
		case "categories":
			os.Exit(runCategoriesCommand(os.Args[2:], os.Stdout))
		case "--version", "-version":
			if len(os.Args) == 2 {
				printVersion(os.Stdout)
				os.Exit(ExitSuccess)
			}
		}
	}
	os.Exit(runDemoCommand(os.Args[1:]))
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "logzen version %s\n", version)
	fmt.Fprintf(w, "commit: %s\n", commit)
	fmt.Fprintf(w, "built: %s\n", buildDate)
	fmt.Fprintf(w, "go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func runValidateCommand(args []string, stderr io.Writer) int {
	validateFlags := flag.NewFlagSet("validate", flag.ContinueOnError)
	validateFlags.SetOutput(stderr)
	configPath := validateFlags.String("config", "", "Path to the logzen YAML config to validate (required)")
	logLevel := validateFlags.String("log-level", config.Default().Log.Level, "Log level for validation output")

	validateFlags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s validate -config <path> [flags...]\n\n", os.Args[0])
		fmt.Fprintln(stderr, "Validates a logzen configuration file against the v1 schema.")
		fmt.Fprintln(stderr, "\nFlags:")
		validateFlags.PrintDefaults()
	}

	if err := validateFlags.Parse(args); err != nil {
		return ExitUsageError
	}
	if *configPath == "" {
		fmt.Fprintln(stderr, "Error: -config flag is required for validation")
		validateFlags.Usage()
		return ExitUsageError
	}

	log := logger.NewLogger(*logLevel, logger.FormatText, stderr)
	log.Infof("Validating config: %s", *configPath)

	if _, err := config.LoadConfigFromFile(*configPath); err != nil {
		var validationErr *lzerrors.ValidationError
		var configErr *lzerrors.ConfigError
		switch {
		case errors.As(err, &validationErr):
			log.Errorf("Config validation failed:\n%s", validationErr.Error())
		case errors.As(err, &configErr):
			log.Errorf("Config error:\n%s", configErr.Error())
		default:
			log.Errorf("Failed to load config: %v", err)
		}
		return ExitFailure
	}

	log.Infof("Config validation successful: %s", *configPath)
	return ExitSuccess
}

// handleEntry is one line of `logzen categories -json`.
type handleEntry struct {
	Handle    string `json:"handle"`
	Subsystem string `json:"subsystem"`
	Category  string `json:"category"`
}

func runCategoriesCommand(args []string, stdout io.Writer) int {
	catFlags := flag.NewFlagSet("categories", flag.ContinueOnError)
	asJSON := catFlags.Bool("json", false, "Print handles as JSON")
	subsystem := catFlags.String("subsystem", "", "Subsystem to list handles for (default: resolved default subsystem)")
	if err := catFlags.Parse(args); err != nil {
		return ExitUsageError
	}

	sub := logging.Subsystem(*subsystem)
	if sub == "" {
		sub = logging.DefaultSubsystem()
	}

	entries := make([]handleEntry, 0, len(logging.Categories()))
	for _, c := range logging.Categories() {
		h := logging.MakeLog(sub, c)
		entries = append(entries, handleEntry{Handle: h.String(), Subsystem: string(sub), Category: c.String()})
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding categories: %v\n", err)
			return ExitFailure
		}
		return ExitSuccess
	}
	for _, e := range entries {
		fmt.Fprintln(stdout, e.Handle)
	}
	return ExitSuccess
}

func runDemoCommand(args []string) int {
	demoFlags := flag.NewFlagSet("logzen", flag.ContinueOnError)
	configPath := demoFlags.String("config", "", "Path to a logzen YAML config")
	envFile := demoFlags.String("env-file", DefaultEnvFile, "Environment file loaded before the config (missing files are ignored)")
	logLevel := demoFlags.String("log-level", "", "Log level (debug, info, default, warn, error, fault)")
	logFormat := demoFlags.String("log-format", "", "Log format (text, json, console)")
	revealPrivate := demoFlags.Bool("reveal-private", false, "Render private format arguments")
	versionFlag := demoFlags.Bool("version", false, "Print version information and exit")

	demoFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags...]\n       %s validate -config <path>\n       %s categories [-json] [-subsystem s]\n\n", os.Args[0], os.Args[0], os.Args[0])
		fmt.Fprintln(os.Stderr, "Runs the sample logging call sites through the logzen facility.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		demoFlags.PrintDefaults()
	}

	if err := demoFlags.Parse(args); err != nil {
		return ExitUsageError
	}
	if *versionFlag {
		printVersion(os.Stdout)
		return ExitSuccess
	}

	cfg, err := loadDemoConfig(*envFile, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFailure
	}
	demoFlags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = strings.ToLower(*logFormat)
		case "reveal-private":
			cfg.Privacy.RevealPrivate = *revealPrivate
		}
	})
	if errs := config.Validate(cfg); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", errors.Join(errs...))
		return ExitUsageError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	launchID := uuid.NewString()
	opts := cfg.LoggerOptions()
	opts.Writer = os.Stderr
	log := logger.NewLoggerWithOptions(opts).With("logzen_version", version, "launch_id", launchID)

	tracerProvider := tracing.NewProviderFromEnv(ctx, log)
	metricsProvider := metrics.NewPrometheusRegistryProvider()

	facilityOpts := []lz.FacilityOption{
		lz.WithTracerProvider(tracerProvider),
		lz.WithMetricsRegistryProvider(metricsProvider),
		lz.WithRevealPrivate(cfg.Privacy.RevealPrivate),
		lz.WithTrackedSecrets(cfg.TrackedSecrets()),
	}
	if cfg.Subsystem != "" {
		facilityOpts = append(facilityOpts, lz.WithSubsystem(logging.Subsystem(cfg.Subsystem)))
	}
	for category, level := range cfg.CategoryLevels() {
		facilityOpts = append(facilityOpts, lz.WithCategoryLevel(category, level))
	}

	fac, err := facility.NewFacility(log, facilityOpts...)
	if err != nil {
		log.Errorf("Failed to create logzen facility: %v", err)
		return ExitFailure
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fac.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Error shutting down tracer provider: %v", err)
		}
	}()

	log.Debugf("Log level: %s, format: %s, subsystem: %q", cfg.Log.Level, cfg.Log.Format, fac.Handle(logging.CategoryDefault).Subsystem())

	launchAttrs := tracing.RedactAttributes([]attribute.KeyValue{
		attribute.String("launch_id", launchID),
		attribute.String("logzen.version", version),
		attribute.String("logzen.subsystem", string(fac.Handle(logging.CategoryDefault).Subsystem())),
	}, redact.NewKeywords(cfg.Privacy.RedactedKeywords))
	spanCtx, span := fac.Tracer().Start(ctx, "launch", trace.WithAttributes(launchAttrs...))
	runDemo(spanCtx, fac, demoInput{
		launchDate:     time.Now(),
		accountID:      rand.Intn(4999) + 1,
		isASuperGenius: rand.Intn(2) == 1,
		account:        account{email: "justinw@me.com", password: "1ns3cure"},
	})
	span.End()

	records, err := countRecords(metricsProvider.Registry())
	if err != nil {
		log.Warnf("Failed to gather record metrics: %v", err)
	}
	log.Debugf("Emitted %d records across %d handles", records, len(fac.Handles()))

	fac.Emit(ctx, fac.Handle(logging.CategoryDefault), lzlog.LevelDefault, "Terminating...I'll be back.")

	if ctx.Err() != nil {
		log.Warnf("Interrupted.")
		return ExitSigInt
	}
	return ExitSuccess
}

// loadDemoConfig loads envFile, then the config file (or defaults), then
// applies environment overrides.
func loadDemoConfig(envFile, configPath string) (*config.Config, error) {
	if envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return nil, err
		}
	}
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// countRecords sums logzen_records_total over all series.
func countRecords(reg prometheus.Gatherer) (int, error) {
	families, err := reg.Gather()
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != metrics.RecordsTotalName {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return int(total), nil
}
