package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gxo-labs/logzen/internal/redact"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/report"
)

// TimeLayout is used by the time_t formatter.
const TimeLayout = "2006-01-02 15:04:05-0700"

// RenderOptions control how private and secret-bearing arguments are shown.
type RenderOptions struct {
	// RevealPrivate renders private arguments instead of PrivateValue.
	RevealPrivate bool
	// Tracker redacts rendered public arguments that contain a tracked secret.
	Tracker *redact.SecretTracker
}

// Render formats args according to f. Missing arguments render as
// "%!<verb>(MISSING)"; extra arguments are ignored.
func (f *Format) Render(args []interface{}, opts RenderOptions) string {
	var b strings.Builder
	b.Grow(len(f.source))

	argIndex := 0
	for _, seg := range f.segments {
		if seg.directive == nil {
			b.WriteString(seg.literal)
			continue
		}
		d := seg.directive
		if argIndex >= len(args) {
			b.WriteString("%!" + string(d.verb) + "(MISSING)")
			continue
		}
		value := args[argIndex]
		argIndex++

		if d.isPrivate() && !opts.RevealPrivate {
			b.WriteString(PrivateValue)
			continue
		}
		text := d.format(value)
		if opts.Tracker != nil && opts.Tracker.ContainsTrackedSecret(text) {
			text = redact.Placeholder
		}
		b.WriteString(text)
	}
	return b.String()
}

// VisibleArgs returns the arguments Render would show as text, in order.
// Arguments behind a private directive are omitted unless revealPrivate is
// set; missing and extra arguments are never returned.
func (f *Format) VisibleArgs(args []interface{}, revealPrivate bool) []interface{} {
	var visible []interface{}
	argIndex := 0
	for _, seg := range f.segments {
		d := seg.directive
		if d == nil {
			continue
		}
		if argIndex >= len(args) {
			break
		}
		if revealPrivate || !d.isPrivate() {
			visible = append(visible, args[argIndex])
		}
		argIndex++
	}
	return visible
}

func (d *directive) format(value interface{}) string {
	if d.formatter != "" {
		if text, ok := formatAnnotated(d.formatter, value); ok {
			return text
		}
		return fmt.Sprint(value)
	}

	switch d.verb {
	case '@':
		if err, ok := value.(error); ok {
			return report.Describe(err)
		}
		return fmt.Sprint(value)
	case 'c':
		if n, ok := toInt64(value); ok {
			return string(rune(n))
		}
		return fmt.Sprint(value)
	case 'd', 'i', 'u':
		if b, ok := value.(bool); ok {
			if b {
				return "1"
			}
			return "0"
		}
		return fmt.Sprintf("%"+d.modifiers+"d", value)
	default:
		return fmt.Sprintf("%"+d.modifiers+string(d.verb), value)
	}
}

func formatAnnotated(formatter string, value interface{}) (string, bool) {
	switch formatter {
	case FormatterTimeT:
		if t, ok := value.(time.Time); ok {
			return t.UTC().Format(TimeLayout), true
		}
		if n, ok := toInt64(value); ok {
			return time.Unix(n, 0).UTC().Format(TimeLayout), true
		}
	case FormatterBOOL:
		if v, ok := truthy(value); ok {
			if v {
				return "YES", true
			}
			return "NO", true
		}
	case FormatterBool:
		if v, ok := truthy(value); ok {
			return strconv.FormatBool(v), true
		}
	case FormatterBitrate:
		if n, ok := toInt64(value); ok {
			return formatBitrate(n), true
		}
	case FormatterErrno:
		if n, ok := toInt64(value); ok {
			return fmt.Sprintf("[%d: %s]", n, syscall.Errno(n).Error()), true
		}
	}
	return "", false
}

var bitrateUnits = []string{"bps", "kbps", "Mbps", "Gbps"}

func formatBitrate(n int64) string {
	v := float64(n)
	unit := 0
	for math.Abs(v) >= 1000 && unit < len(bitrateUnits)-1 {
		v /= 1000
		unit++
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + " " + bitrateUnits[unit]
}

func truthy(value interface{}) (bool, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	if n, ok := toInt64(value); ok {
		return n != 0, true
	}
	return false, false
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case syscall.Errno:
		return int64(v), true
	default:
		return 0, false
	}
}
