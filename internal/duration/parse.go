package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidDuration is returned for input that does not describe a positive
// number of seconds.
var ErrInvalidDuration = errors.New("invalid duration")

// MaxSeconds is the longest duration Parse accepts. It keeps start_time +
// duration far from int64 overflow.
const MaxSeconds int64 = math.MaxUint32

type unit int

const (
	unitHour unit = iota
	unitMinute
	unitSecond
)

var unitWords = map[string]unit{
	"h":       unitHour,
	"hr":      unitHour,
	"hrs":     unitHour,
	"hour":    unitHour,
	"hours":   unitHour,
	"m":       unitMinute,
	"min":     unitMinute,
	"mins":    unitMinute,
	"minute":  unitMinute,
	"minutes": unitMinute,
	"s":       unitSecond,
	"sec":     unitSecond,
	"secs":    unitSecond,
	"second":  unitSecond,
	"seconds": unitSecond,
}

var unitSeconds = [...]int64{unitHour: 3600, unitMinute: 60, unitSecond: 1}

// Parse converts user input into whole seconds.
//
// A plain integer is read as minutes ("25" is 1500). Colon separated input is
// positional from the right ("1:30:00", "25:00", "45"). Anything else is a
// sequence of value+unit segments in any order, e.g. "1h 30m 10s" or
// "30Min10SeC". Only a literal zero may produce a zero result.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 || n > MaxSeconds/60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		return n * 60, nil
	}

	var (
		total int64
		err   error
	)
	if strings.Contains(s, ":") {
		total, err = parseClock(s)
	} else {
		total, err = parseSegments(s)
	}
	if err != nil {
		return 0, err
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return total, nil
}

// ParseOptional returns fallback when s is nil.
func ParseOptional(s *string, fallback int64) (int64, error) {
	if s == nil {
		return fallback, nil
	}
	return Parse(*s)
}

func parseClock(s string) (int64, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return 0, fmt.Errorf("%w: %q has too many fields", ErrInvalidDuration, s)
	}

	var total, scale int64 = 0, 1
	for i := len(fields) - 1; i >= 0; i-- {
		f := strings.TrimSpace(fields[i])
		if f != "" {
			n, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
			}
			if total, err = accumulate(total, int64(n), scale); err != nil {
				return 0, fmt.Errorf("%w: %q", err, s)
			}
		}
		scale *= 60
	}
	return total, nil
}

func parseSegments(s string) (int64, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	in := b.String()

	var (
		total int64
		seen  [3]bool
		err   error
	)
	for i := 0; i < len(in); {
		start := i
		for i < len(in) && in[i] >= '0' && in[i] <= '9' {
			i++
		}
		digits := in[start:i]

		wordStart := i
		for i < len(in) && in[i] >= 'a' && in[i] <= 'z' {
			i++
		}
		word := in[wordStart:i]

		if word == "" {
			// trailing digits without a unit, or a symbol we don't know
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		u, ok := unitWords[word]
		if !ok {
			return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, word)
		}
		if seen[u] {
			return 0, fmt.Errorf("%w: unit %q repeated", ErrInvalidDuration, word)
		}
		seen[u] = true

		var v int64
		if digits != "" {
			n, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
			}
			v = n
		}
		if total, err = accumulate(total, v, unitSeconds[u]); err != nil {
			return 0, fmt.Errorf("%w: %q", err, s)
		}
	}
	return total, nil
}

// accumulate returns total + v*scale, failing once the result would pass
// MaxSeconds.
func accumulate(total, v, scale int64) (int64, error) {
	if v > (MaxSeconds-total)/scale {
		return 0, fmt.Errorf("%w: longer than %d seconds", ErrInvalidDuration, MaxSeconds)
	}
	return total + v*scale, nil
}
