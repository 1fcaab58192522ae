package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegistryProvider defines the interface for accessing the facility's metrics registry.
// This allows consumers of logzen to expose record and error-report counters via
// their chosen method (e.g., a Prometheus HTTP endpoint).
type RegistryProvider interface {
	// Registry returns the Prometheus registry containing logzen metrics.
	Registry() *prometheus.Registry
}
