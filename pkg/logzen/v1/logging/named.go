package logging

import "sync"

// named memoizes MakeDefaultLog per category so the default subsystem is not
// re-derived on every logging call.
var named [numCategories]func() Handle

func init() {
	for c := CategoryDefault; c < numCategories; c++ {
		category := c
		named[c] = sync.OnceValue(func() Handle { return MakeDefaultLog(category) })
	}
}

// LogFor returns the memoized default-subsystem handle for category. Invalid
// categories are built on every call and never cached.
func LogFor(category Category) Handle {
	if !category.Valid() {
		return MakeDefaultLog(category)
	}
	return named[category]()
}

// DefaultLog is the handle for general messages.
func DefaultLog() Handle { return LogFor(CategoryDefault) }

// DatabaseLog is the handle for storage and query messages.
func DatabaseLog() Handle { return LogFor(CategoryDatabase) }

// NetworkingLog is the handle for network requests and connectivity.
func NetworkingLog() Handle { return LogFor(CategoryNetworking) }

// OperationsLog is the handle for background work and app lifecycle.
func OperationsLog() Handle { return LogFor(CategoryOperations) }

// PlaybackLog is the handle for media playback.
func PlaybackLog() Handle { return LogFor(CategoryPlayback) }

// ReportingLog is the handle for analytics and error reporting.
func ReportingLog() Handle { return LogFor(CategoryReporting) }

// UILog is the handle for user interface events.
func UILog() Handle { return LogFor(CategoryUI) }
