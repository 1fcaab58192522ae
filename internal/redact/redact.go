// Package redact keeps secrets and sensitive attributes out of log records.
package redact

import (
	"log/slog"
	"strings"
)

// Placeholder replaces any redacted value.
const Placeholder = "[REDACTED]"

// DefaultKeywords are the attribute keys redacted when no keywords are configured.
var DefaultKeywords = []string{"password", "token", "secret", "apikey", "privatekey", "authorization", "bearer"}

// Value recursively walks strings, maps and slices and replaces any string
// containing a tracked secret with Placeholder. The input is never modified;
// the boolean reports whether anything was redacted.
func Value(data interface{}, tracker *SecretTracker) (interface{}, bool) {
	if data == nil || tracker == nil {
		return data, false
	}
	return redactRecursive(data, tracker)
}

func redactRecursive(data interface{}, tracker *SecretTracker) (interface{}, bool) {
	switch v := data.(type) {
	case string:
		if tracker.ContainsTrackedSecret(v) {
			return Placeholder, true
		}
		return v, false

	case map[string]interface{}:
		if v == nil {
			return v, false
		}
		redacted := false
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			newVal, was := redactRecursive(val, tracker)
			out[key] = newVal
			redacted = redacted || was
		}
		return out, redacted

	case []interface{}:
		if v == nil {
			return v, false
		}
		redacted := false
		out := make([]interface{}, len(v))
		for i, val := range v {
			newVal, was := redactRecursive(val, tracker)
			out[i] = newVal
			redacted = redacted || was
		}
		return out, redacted

	default:
		return data, false
	}
}

// Keywords is a set of lowercase attribute keys whose values are redacted.
type Keywords map[string]struct{}

// NewKeywords builds a keyword set, lowercasing and trimming each entry.
func NewKeywords(words []string) Keywords {
	set := make(Keywords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Matches reports whether key (case-insensitive) is a keyword.
func (k Keywords) Matches(key string) bool {
	if len(k) == 0 {
		return false
	}
	_, ok := k[strings.ToLower(key)]
	return ok
}

// ReplaceAttr is a slog.HandlerOptions.ReplaceAttr hook that redacts the value
// of any attribute whose key is a keyword. Group attributes are left to slog,
// which calls the hook again for each member.
func (k Keywords) ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if k.Matches(a.Key) {
		return slog.String(a.Key, Placeholder)
	}
	return a
}

// RedactString replaces the text following a keyword and its separators
// (":= '\"") with Placeholder, up to the end of the line. A keyword only
// matches when a separator follows it directly, so "tokenizer" is not
// redacted for "token". Matching is case-insensitive; the earliest match on
// each line wins.
func (k Keywords) RedactString(input string) string {
	if len(k) == 0 || input == "" {
		return input
	}

	redacted := false
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		first, start := -1, -1
		for keyword := range k {
			idx, end := valueAfter(line, lower, keyword)
			if idx >= 0 && (first < 0 || idx < first) {
				first, start = idx, end
			}
		}
		if start >= 0 {
			lines[i] = line[:start] + Placeholder
			redacted = true
		}
	}
	if !redacted {
		return input
	}
	return strings.Join(lines, "\n")
}

// valueAfter finds the first occurrence of keyword in lower that is followed
// by at least one separator and then a value. It returns the keyword's offset
// and the offset of the value in line, or -1, -1.
func valueAfter(line, lower, keyword string) (int, int) {
	const separators = ":= '\""
	for from := 0; from < len(lower); {
		idx := strings.Index(lower[from:], keyword)
		if idx < 0 {
			break
		}
		idx += from
		end := idx + len(keyword)
		for end < len(line) && strings.IndexByte(separators, line[end]) >= 0 {
			end++
		}
		if end > idx+len(keyword) && end < len(line) {
			return idx, end
		}
		from = idx + 1
	}
	return -1, -1
}
