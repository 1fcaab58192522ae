package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names exported by the facility.
const (
	RecordsTotalName      = "logzen_records_total"
	ErrorReportsTotalName = "logzen_error_reports_total"
)

// Counters holds the facility's counters.
type Counters struct {
	// Records counts emitted records by subsystem, category and level name.
	Records *prometheus.CounterVec
	// ErrorReports counts Report calls by error kind.
	ErrorReports *prometheus.CounterVec
}

// NewCounters creates the facility counters and registers them on reg. If
// reg already holds counters with the same names, those are reused so several
// facilities may share one registry.
func NewCounters(reg prometheus.Registerer) (*Counters, error) {
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: RecordsTotalName,
		Help: "Total number of log records emitted, by subsystem, category and level.",
	}, []string{"subsystem", "category", "level"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: ErrorReportsTotalName,
		Help: "Total number of errors rendered for logging, by error kind.",
	}, []string{"kind"})

	var err error
	if records, err = registerOrReuse(reg, records); err != nil {
		return nil, err
	}
	if reports, err = registerOrReuse(reg, reports); err != nil {
		return nil, err
	}
	return &Counters{Records: records, ErrorReports: reports}, nil
}

func registerOrReuse(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}
