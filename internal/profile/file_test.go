package profile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/store"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

func sample() store.Profile {
	return store.Profile{
		Name:      "deep work",
		Sequence:  []int64{3000, 600},
		Messages:  []string{"Write", "Walk"},
		AlarmFile: "/tmp/bell.wav",
		Notify:    true,
		Repeat:    1,
	}
}

func TestWriteReadAllFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"p.json", "p.yaml", "p.yml", "p.toml"} {
		path := filepath.Join(dir, name)
		if err := Write(path, sample()); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		got, err := Read(path)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if got.Name != "deep work" || len(got.Sequence) != 2 || got.Sequence[0] != 3000 {
			t.Fatalf("%s: profile = %+v", name, got)
		}
		if got.Messages[1] != "Walk" || got.AlarmFile != "/tmp/bell.wav" || !got.Notify || got.Repeat != 1 {
			t.Fatalf("%s: fields lost: %+v", name, got)
		}
	}
}

func TestWriteUsesReadableDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := Write(path, sample()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "50m") || !strings.Contains(string(data), "10m") {
		t.Fatalf("durations should be human readable:\n%s", data)
	}
}

func TestReadHandWrittenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classic.toml")
	src := `name = "classic"
sequence = ["25m", "5", "0:25:00", "15 minutes"]
messages = ["Focus", "Break"]
silent = true
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{1500, 300, 1500, 900}
	for i, w := range want {
		if p.Sequence[i] != w {
			t.Fatalf("step %d = %d, want %d", i+1, p.Sequence[i], w)
		}
	}
	if !p.Silent || p.Repeat != 0 {
		t.Fatalf("flags = %+v", p)
	}
}

func TestReadRejectsBadSteps(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"name":"x","sequence":["soon"]}`), 0o644)
	if _, err := Read(bad); !errors.Is(err, duration.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`{"name":"x","sequence":[]}`), 0o644)
	if _, err := Read(empty); !errors.Is(err, timer.ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("name: [unclosed"), 0o644)
	if _, err := Read(broken); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUnsupportedExtension(t *testing.T) {
	if _, err := Read("profile.xml"); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("read: %v", err)
	}
	if err := Write(filepath.Join(t.TempDir(), "p.ini"), sample()); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("write: %v", err)
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Deep Work!": "deep_work",
		"classic":    "classic",
		"a-b_c":      "a-b_c",
		"???":        "profile",
	}
	for in, want := range tests {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}
