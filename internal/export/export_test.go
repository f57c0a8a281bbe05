package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jkallio/pomodoro-cli/internal/store"
)

func sampleData() []store.Session {
	now := time.Now().UTC()
	return []store.Session{
		{
			ID:        1,
			RunID:     "run-a",
			Message:   "write report",
			StartedAt: now.Add(-1 * time.Hour),
			EndedAt:   now.Add(-35 * time.Minute),
			Planned:   1500,
			Elapsed:   1500,
			Completed: true,
		},
		{
			ID:        2,
			RunID:     "run-b",
			StartedAt: now.Add(-30 * time.Minute),
			EndedAt:   now.Add(-20 * time.Minute),
			Planned:   1500,
			Elapsed:   600,
			Completed: false,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}
	if records[0][0] != "Run" || records[0][7] != "Completed" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[0] != "run-a" || row[1] != "write report" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[5] != "1500" || row[6] != "00:25:00" || row[7] != "true" {
		t.Fatalf("unexpected durations: %v", row)
	}
	if records[2][7] != "false" {
		t.Fatalf("second run should be incomplete: %v", records[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	sessions := []store.Session{{
		RunID:     "x",
		Message:   `notes with "quotes" and, commas`,
		StartedAt: time.Now(),
		EndedAt:   time.Now(),
	}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(sessions, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `notes with "quotes" and, commas` {
		t.Fatalf("message mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result document
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Count != 2 || len(result.Sessions) != 2 {
		t.Fatalf("count = %d, sessions = %d, want 2", result.Count, len(result.Sessions))
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	e := result.Sessions[0]
	if e.RunID != "run-a" || e.Message != "write report" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.ElapsedSec != 1500 || e.Elapsed != "00:25:00" || !e.Completed {
		t.Fatalf("unexpected entry: %+v", e)
	}
	for _, e := range result.Sessions {
		if _, err := time.Parse(time.RFC3339, e.StartedAt); err != nil {
			t.Fatalf("started_at is not valid RFC3339: %q", e.StartedAt)
		}
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result document
	json.Unmarshal(data, &result)
	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Sessions != nil {
		t.Fatal("sessions should be null for empty export")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// YAML
// ============================================================

func TestToYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")

	if err := ToYAML(sampleData(), path); err != nil {
		t.Fatalf("ToYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "run_id: run-a") {
		t.Fatalf("missing run_id key:\n%s", data)
	}

	var result document
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if result.Count != 2 || result.Sessions[1].ElapsedSec != 600 {
		t.Fatalf("unexpected document: %+v", result)
	}
	if result.Sessions[1].Message != "" {
		t.Fatalf("empty message should be omitted, got %q", result.Sessions[1].Message)
	}
}

func TestToYAMLBadPath(t *testing.T) {
	if err := ToYAML(nil, "/nonexistent/dir/file.yaml"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// Write / ParseFormat
// ============================================================

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatCSV, FormatJSON, FormatYAML} {
		path := filepath.Join(dir, "out."+string(f))
		if err := Write(f, sampleData(), path); err != nil {
			t.Fatalf("Write(%s): %v", f, err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Fatalf("Write(%s) produced no file", f)
		}
	}
	if err := Write("xml", nil, filepath.Join(dir, "out.xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"csv", FormatCSV, true},
		{"JSON", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"pdf", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{90061, "25:01:01"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.secs); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
