package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects how a number of seconds is rendered for people.
type Style string

const (
	StyleSeconds   Style = "seconds"
	StyleSegmented Style = "segmented"
	StyleDigital   Style = "digital"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleSeconds, StyleSegmented, StyleDigital:
		return st, nil
	}
	return "", fmt.Errorf("unknown time format %q", s)
}

// Segments splits seconds into hours, minutes and seconds.
func Segments(secs int64) (h, m, s int64) {
	if secs < 0 {
		secs = 0
	}
	h = secs / 3600
	m = (secs % 3600) / 60
	s = secs % 60
	return h, m, s
}

// Segmented renders e.g. "1h 30m 10s". Zero parts are left out.
func Segmented(secs int64) string {
	h, m, s := Segments(secs)
	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

// Digital renders e.g. "01:30:10", or "30:10" when under an hour.
func Digital(secs int64) string {
	h, m, s := Segments(secs)
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Format renders secs in the given style. Unknown styles fall back to
// Segmented.
func Format(secs int64, st Style) string {
	switch st {
	case StyleSeconds:
		return strconv.FormatInt(secs, 10)
	case StyleDigital:
		return Digital(secs)
	default:
		return Segmented(secs)
	}
}
