package redact

import (
	"log/slog"
	"strings"
	"sync"
)

// SecretTracker holds secret values that must never reach log output, even
// when a format argument is annotated public. It is safe for concurrent use.
type SecretTracker struct {
	mu      sync.RWMutex
	secrets map[string]struct{}
}

// NewSecretTracker creates a new, empty tracker.
func NewSecretTracker() *SecretTracker {
	return &SecretTracker{
		secrets: make(map[string]struct{}),
	}
}

// Add marks a secret value as tracked. Empty strings are ignored.
func (t *SecretTracker) Add(secretValue string) {
	if secretValue == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.secrets[secretValue] = struct{}{}
}

// Len returns the number of tracked secrets.
func (t *SecretTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.secrets)
}

// ContainsTrackedSecret reports whether input contains any tracked secret as a
// substring, which catches secrets embedded in URLs or connection strings.
func (t *SecretTracker) ContainsTrackedSecret(input string) bool {
	if input == "" {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	for secret := range t.secrets {
		if strings.Contains(input, secret) {
			return true
		}
	}
	return false
}

// ReplaceAttr is a slog.HandlerOptions.ReplaceAttr hook that replaces string
// values, and strings nested in map or slice values, that contain a tracked
// secret.
func (t *SecretTracker) ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if t == nil {
		return a
	}
	switch a.Value.Kind() {
	case slog.KindString, slog.KindAny:
		if v, redacted := Value(a.Value.Any(), t); redacted {
			return slog.Any(a.Key, v)
		}
	}
	return a
}
