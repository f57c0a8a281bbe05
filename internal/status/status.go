// Package status renders the timer for the status command. The json format
// is read by status-bar widgets, so its field names and class values must
// not change.
package status

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

type Format string

const (
	FormatSeconds Format = "seconds"
	FormatHuman   Format = "human"
	FormatDigital Format = "digital"
	FormatJSON    Format = "json"
)

// Formats lists the accepted names in help order.
var Formats = []Format{FormatSeconds, FormatHuman, FormatDigital, FormatJSON}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status format %q", s)
}

// Widget is the json status document.
type Widget struct {
	Text       string `json:"text"`
	Tooltip    string `json:"tooltip"`
	Class      string `json:"class"`
	Percentage int    `json:"percentage"`
}

// Class maps a state to its widget class.
func Class(s timer.State) string {
	switch s {
	case timer.Running:
		return "running"
	case timer.Paused:
		return "paused"
	}
	return "finished"
}

// Render formats rec at now. style picks the human rendering.
func Render(rec timer.Record, now time.Time, f Format, style duration.Style) (string, error) {
	left := rec.Left(now)
	switch f {
	case FormatSeconds:
		return strconv.FormatInt(left, 10), nil
	case FormatHuman:
		if style == duration.StyleSeconds {
			style = duration.StyleSegmented
		}
		return duration.Format(left, style), nil
	case FormatDigital:
		return duration.Digital(left), nil
	case FormatJSON:
		data, err := json.Marshal(NewWidget(rec, now, style))
		if err != nil {
			return "", fmt.Errorf("marshal status: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown status format %q", f)
}

// NewWidget builds the json status document.
func NewWidget(rec timer.Record, now time.Time, style duration.Style) Widget {
	if style == duration.StyleSeconds || style == "" {
		style = duration.StyleSegmented
	}
	left := rec.Left(now)
	return Widget{
		Text:       duration.Format(left, style),
		Tooltip:    tooltip(rec, now),
		Class:      Class(rec.State),
		Percentage: rec.Percentage(now),
	}
}

func tooltip(rec timer.Record, now time.Time) string {
	var b strings.Builder
	if rec.Message != "" {
		b.WriteString(rec.Message)
		b.WriteString("\n")
	}
	switch rec.State {
	case timer.Finished:
		b.WriteString("Finished")
	default:
		fmt.Fprintf(&b, "%s: %s left of %s", rec.State,
			duration.Segmented(rec.Left(now)), duration.Segmented(rec.Duration))
	}
	return b.String()
}
