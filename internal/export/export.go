// Package export writes session history to files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jkallio/pomodoro-cli/internal/store"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write exports sessions to path in format f.
func Write(f Format, sessions []store.Session, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(sessions, path)
	case FormatJSON:
		return ToJSON(sessions, path)
	case FormatYAML:
		return ToYAML(sessions, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// document is shared by the JSON and YAML exports.
type document struct {
	ExportedAt string  `json:"exported_at" yaml:"exported_at"`
	Count      int     `json:"count" yaml:"count"`
	Sessions   []entry `json:"sessions" yaml:"sessions"`
}

type entry struct {
	RunID      string `json:"run_id" yaml:"run_id"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	StartedAt  string `json:"started_at" yaml:"started_at"`
	EndedAt    string `json:"ended_at" yaml:"ended_at"`
	PlannedSec int64  `json:"planned_seconds" yaml:"planned_seconds"`
	ElapsedSec int64  `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Elapsed    string `json:"elapsed" yaml:"elapsed"`
	Completed  bool   `json:"completed" yaml:"completed"`
}

func newDocument(sessions []store.Session) document {
	doc := document{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}
	for _, s := range sessions {
		doc.Sessions = append(doc.Sessions, newEntry(s))
	}
	return doc
}

func newEntry(s store.Session) entry {
	return entry{
		RunID:      s.RunID,
		Message:    s.Message,
		StartedAt:  s.StartedAt.Local().Format(time.RFC3339),
		EndedAt:    s.EndedAt.Local().Format(time.RFC3339),
		PlannedSec: s.Planned,
		ElapsedSec: s.Elapsed,
		Elapsed:    formatDuration(s.Elapsed),
		Completed:  s.Completed,
	}
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
