package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/store"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

func TestTimerStates(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := timer.Record{State: timer.Running, StartTime: now.Unix() - 60, PauseTime: now.Unix() - 60, Duration: 1500, Message: "draft"}

	var buf bytes.Buffer
	f := NewFormatter(&buf, duration.StyleSegmented)
	f.Timer(rec, now)
	out := buf.String()
	if !strings.Contains(out, "Running: 24m left of 25m") || !strings.Contains(out, "draft") {
		t.Fatalf("running output = %q", out)
	}

	buf.Reset()
	if err := rec.Pause(now); err != nil {
		t.Fatal(err)
	}
	NewFormatter(&buf, duration.StyleDigital).Timer(rec, now)
	if !strings.Contains(buf.String(), "Paused: 24:00 left") {
		t.Fatalf("paused output = %q", buf.String())
	}

	buf.Reset()
	rec.Stop(now)
	f.Timer(rec, now)
	if !strings.Contains(buf.String(), "Stopped") || strings.Contains(buf.String(), "draft") {
		t.Fatalf("stopped output = %q", buf.String())
	}
}

func TestSessions(t *testing.T) {
	now := time.Now()
	var buf bytes.Buffer
	f := NewFormatter(&buf, "")

	f.Sessions(nil, 0, now)
	if !strings.Contains(buf.String(), "No sessions") {
		t.Fatalf("empty output = %q", buf.String())
	}

	buf.Reset()
	f.Sessions([]store.Session{
		{RunID: "a", StartedAt: now.Add(-2 * time.Hour), Planned: 1500, Elapsed: 1500, Completed: true, Message: "review"},
		{RunID: "b", StartedAt: now.Add(-30 * time.Minute), Planned: 1500, Elapsed: 300},
	}, 1800, now)
	out := buf.String()
	for _, want := range []string{"2 hours ago", "25m", "5m", "review", "yes", "no", "Today: 30m focused"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, duration.StyleSegmented)
	f.Error("boom")
	f.Warning("careful")
	f.Success("done")
	f.Info("note")
	out := buf.String()
	for _, want := range []string{"✗ boom", "! careful", "✓ done", "note"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTimerShowsPlanStep(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	var rec timer.Record
	plan := timer.Plan{Name: "classic", Sequence: []int64{1500, 300}, Repeat: 1}
	if err := rec.StartPlan(now, plan, timer.StartOptions{}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	NewFormatter(&buf, duration.StyleSegmented).Timer(rec, now)
	if !strings.Contains(buf.String(), "classic: step 1 of 2, round 1 of 2") {
		t.Fatalf("plan line missing:\n%s", buf.String())
	}
}

func TestSessionDetail(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)
	var buf bytes.Buffer
	NewFormatter(&buf, duration.StyleSegmented).Session(store.Session{
		RunID:     "run-1",
		Message:   "essay",
		StartedAt: start,
		EndedAt:   start.Add(25 * time.Minute),
		Planned:   1500,
		Elapsed:   1500,
		Completed: true,
	})
	out := buf.String()
	for _, want := range []string{"run-1", "essay", "2026-03-15 09:00:00", "25m", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("session output missing %q:\n%s", want, out)
		}
	}
}

func TestProfiles(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, duration.StyleSegmented)
	f.Profiles(nil)
	if !strings.Contains(buf.String(), "No profiles") {
		t.Fatalf("empty output = %q", buf.String())
	}

	buf.Reset()
	f.Profiles([]store.Profile{{
		Name:     "classic",
		Sequence: []int64{1500, 300},
		Messages: []string{"Focus"},
		Notify:   true,
		Repeat:   3,
	}})
	out := buf.String()
	for _, want := range []string{"classic (30m per round, 4 rounds)", "1. 25m", "Focus", "2. 5m", "notify"} {
		if !strings.Contains(out, want) {
			t.Fatalf("profile output missing %q:\n%s", want, out)
		}
	}
}
