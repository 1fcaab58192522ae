package logging

import (
	"os"
	"runtime/debug"
	"strings"
	"sync"
)

// SubsystemEnvVar overrides the metadata-derived default subsystem.
const SubsystemEnvVar = "LOGZEN_SUBSYSTEM"

// Subsystem is the top-level namespace for log output, typically one per
// application or component.
type Subsystem string

// SubsystemSource supplies the identifier used as the default subsystem.
// It returns false when the metadata is unavailable.
type SubsystemSource func() (string, bool)

// BuildInfoSource resolves the main module path of the running binary.
func BuildInfoSource() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		return "", false
	}
	return info.Main.Path, true
}

// EnvSource returns a source reading the named environment variable.
// Unset or blank values count as unavailable.
func EnvSource(key string) SubsystemSource {
	return func() (string, bool) {
		value := strings.TrimSpace(os.Getenv(key))
		return value, value != ""
	}
}

// FirstSource returns a source that consults each source in order and yields
// the first available value.
func FirstSource(sources ...SubsystemSource) SubsystemSource {
	return func() (string, bool) {
		for _, source := range sources {
			if source == nil {
				continue
			}
			if value, ok := source(); ok {
				return value, true
			}
		}
		return "", false
	}
}

// SubsystemResolver computes a subsystem from its source at most once.
// The zero value is not usable; construct with NewSubsystemResolver.
type SubsystemResolver struct {
	once   sync.Once
	source SubsystemSource
	value  Subsystem
}

// NewSubsystemResolver creates a resolver over source. A nil source always
// resolves to the empty subsystem.
func NewSubsystemResolver(source SubsystemSource) *SubsystemResolver {
	return &SubsystemResolver{source: source}
}

// Subsystem returns the resolved value, consulting the source on first call
// only. Missing metadata yields "" instead of failing.
func (r *SubsystemResolver) Subsystem() Subsystem {
	r.once.Do(func() {
		if r.source == nil {
			return
		}
		if value, ok := r.source(); ok {
			r.value = Subsystem(value)
		}
	})
	return r.value
}

var defaultResolver = NewSubsystemResolver(FirstSource(EnvSource(SubsystemEnvVar), BuildInfoSource))

// DefaultSubsystem returns the process-wide default subsystem.
func DefaultSubsystem() Subsystem {
	return defaultResolver.Subsystem()
}
