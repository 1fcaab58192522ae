// Package format compiles and renders privacy-annotated printf-style format strings.
//
// A directive is '%', an optional annotation list in braces, optional
// flags/width/precision, an optional length modifier and a verb:
//
//	%{public}@   %{private}d   %{time_t}d   %{public, bitrate}d   %.2f   %%
//
// Annotations are privacy markers (public, private) and value formatters
// (time_t, BOOL, bool, bitrate, errno). Object and string arguments (%@, %s)
// are private unless marked public; scalars are public unless marked private.
package format

import (
	"fmt"
	"strings"

	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
)

// PrivateValue replaces private arguments in rendered output.
const PrivateValue = "<private>"

// Privacy is the visibility of a rendered argument.
type Privacy int

const (
	PrivacyUnspecified Privacy = iota
	PrivacyPublic
	PrivacyPrivate
)

// Value formatter annotations.
const (
	FormatterTimeT   = "time_t"
	FormatterBOOL    = "BOOL"
	FormatterBool    = "bool"
	FormatterBitrate = "bitrate"
	FormatterErrno   = "errno"
)

var knownFormatters = map[string]struct{}{
	FormatterTimeT:   {},
	FormatterBOOL:    {},
	FormatterBool:    {},
	FormatterBitrate: {},
	FormatterErrno:   {},
}

const (
	verbChars     = "@diuxXfeEgGsc"
	flagChars     = "-+ #0"
	lengthPrefixs = "hlqjzt"
)

type directive struct {
	offset    int
	verb      byte
	modifiers string // flags, width and precision passed through to fmt
	privacy   Privacy
	formatter string
}

// isPrivate applies the default privacy rules.
func (d *directive) isPrivate() bool {
	switch d.privacy {
	case PrivacyPublic:
		return false
	case PrivacyPrivate:
		return true
	}
	if d.formatter != "" {
		return false
	}
	return d.verb == '@' || d.verb == 's'
}

type segment struct {
	literal   string
	directive *directive
}

// Format is a compiled format string. It is immutable and safe for concurrent use.
type Format struct {
	source   string
	segments []segment
	numArgs  int
}

// Source returns the format string Format was compiled from.
func (f *Format) Source() string { return f.source }

// NumArgs returns the number of arguments the format consumes.
func (f *Format) NumArgs() int { return f.numArgs }

// Compile parses format. Malformed directives return a *errors.FormatError.
func Compile(format string) (*Format, error) {
	f := &Format{source: format}
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			f.segments = append(f.segments, segment{literal: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			literal.WriteByte('%')
			i += 2
			continue
		}

		d, next, err := parseDirective(format, i)
		if err != nil {
			return nil, err
		}
		flush()
		f.segments = append(f.segments, segment{directive: d})
		f.numArgs++
		i = next
	}
	flush()
	return f, nil
}

// parseDirective parses the directive starting at format[start] == '%' and
// returns it along with the index just past it.
func parseDirective(format string, start int) (*directive, int, error) {
	d := &directive{offset: start}
	i := start + 1

	if i < len(format) && format[i] == '{' {
		end := strings.IndexByte(format[i:], '}')
		if end < 0 {
			return nil, 0, lzerrors.NewFormatError(format, start, "unterminated annotation")
		}
		if err := d.applyAnnotations(format, start, format[i+1:i+end]); err != nil {
			return nil, 0, err
		}
		i += end + 1
	}

	modStart := i
	for i < len(format) && strings.IndexByte(flagChars, format[i]) >= 0 {
		i++
	}
	for i < len(format) && (isDigit(format[i]) || format[i] == '.') {
		i++
	}
	d.modifiers = format[modStart:i]

	for i < len(format) && strings.IndexByte(lengthPrefixs, format[i]) >= 0 {
		i++
	}

	if i >= len(format) {
		return nil, 0, lzerrors.NewFormatError(format, start, "missing verb")
	}
	if strings.IndexByte(verbChars, format[i]) < 0 {
		return nil, 0, lzerrors.NewFormatError(format, start, fmt.Sprintf("unknown verb %q", format[i]))
	}
	d.verb = format[i]
	return d, i + 1, nil
}

func (d *directive) applyAnnotations(format string, offset int, body string) error {
	for _, raw := range strings.Split(body, ",") {
		token := strings.TrimSpace(raw)
		switch token {
		case "":
			continue
		case "public", "private":
			want := PrivacyPublic
			if token == "private" {
				want = PrivacyPrivate
			}
			if d.privacy != PrivacyUnspecified && d.privacy != want {
				return lzerrors.NewFormatError(format, offset, "conflicting privacy annotations")
			}
			d.privacy = want
		default:
			if _, ok := knownFormatters[token]; !ok {
				return lzerrors.NewFormatError(format, offset, fmt.Sprintf("unknown annotation %q", token))
			}
			if d.formatter != "" && d.formatter != token {
				return lzerrors.NewFormatError(format, offset, "more than one value formatter")
			}
			d.formatter = token
		}
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
