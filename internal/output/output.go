// Package output prints command results to the console.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/store"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F39C12"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

type Formatter struct {
	w     io.Writer
	style duration.Style
}

// NewFormatter writes to w, rendering durations in style.
func NewFormatter(w io.Writer, style duration.Style) *Formatter {
	if style == "" || style == duration.StyleSeconds {
		style = duration.StyleSegmented
	}
	return &Formatter{w: w, style: style}
}

func (f *Formatter) dur(secs int64) string {
	return duration.Format(secs, f.style)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintln(f.w, errorStyle.Render("✗ "+msg))
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintln(f.w, msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintln(f.w, successStyle.Render("✓ "+msg))
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintln(f.w, warningStyle.Render("! "+msg))
}

// Timer reports the record after a command changed it.
func (f *Formatter) Timer(rec timer.Record, now time.Time) {
	left := f.dur(rec.Left(now))
	switch rec.State {
	case timer.Running:
		f.Success(fmt.Sprintf("Running: %s left of %s", left, f.dur(rec.Duration)))
	case timer.Paused:
		f.Warning(fmt.Sprintf("Paused: %s left", left))
	default:
		f.Info("Stopped")
	}
	if rec.Message != "" && rec.State != timer.Finished {
		fmt.Fprintln(f.w, mutedStyle.Render("  "+rec.Message))
	}
	if p := rec.Plan; p != nil && rec.State != timer.Finished {
		line := fmt.Sprintf("  %s: step %d of %d", p.Name, rec.Step+1, p.Steps())
		if p.Repeat > 0 {
			line += fmt.Sprintf(", round %d of %d", rec.Round+1, p.Repeat+1)
		}
		fmt.Fprintln(f.w, mutedStyle.Render(line))
	}
}

// Sessions prints a history table, newest first.
func (f *Formatter) Sessions(sessions []store.Session, todayTotal int64, now time.Time) {
	if len(sessions) == 0 {
		f.Info("No sessions yet.")
		return
	}

	fmt.Fprintln(f.w, headerStyle.Render(fmt.Sprintf("%-16s %-10s %-10s %-4s %s", "Started", "Planned", "Elapsed", "Done", "Message")))
	fmt.Fprintln(f.w, mutedStyle.Render(strings.Repeat("─", 56)))
	for _, s := range sessions {
		done := errorStyle.Render("no  ")
		if s.Completed {
			done = successStyle.Render("yes ")
		}
		fmt.Fprintf(f.w, "%-16s %-10s %-10s %s %s\n",
			humanize.RelTime(s.StartedAt, now, "ago", "from now"),
			f.dur(s.Planned), f.dur(s.Elapsed), done, s.Message)
	}
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, mutedStyle.Render(fmt.Sprintf("Today: %s focused, %s sessions total", f.dur(todayTotal), humanize.Comma(int64(len(sessions))))))
}

// Session prints one run in detail.
func (f *Formatter) Session(s store.Session) {
	done := "no"
	if s.Completed {
		done = "yes"
	}
	rows := [][2]string{
		{"Run", s.RunID},
		{"Message", s.Message},
		{"Started", s.StartedAt.Local().Format("2006-01-02 15:04:05")},
		{"Ended", s.EndedAt.Local().Format("2006-01-02 15:04:05")},
		{"Planned", f.dur(s.Planned)},
		{"Elapsed", f.dur(s.Elapsed)},
		{"Completed", done},
	}
	for _, r := range rows {
		fmt.Fprintf(f.w, "%s %s\n", headerStyle.Render(fmt.Sprintf("%-10s", r[0])), r[1])
	}
}

// Profiles lists stored profiles with their steps.
func (f *Formatter) Profiles(profiles []store.Profile) {
	if len(profiles) == 0 {
		f.Info("No profiles yet.")
		return
	}
	for _, p := range profiles {
		f.Profile(p)
	}
}

// Profile prints a profile's steps, one per line.
func (f *Formatter) Profile(p store.Profile) {
	var total int64
	for _, d := range p.Sequence {
		total += d
	}
	header := fmt.Sprintf("%s (%s per round", p.Name, f.dur(total))
	if p.Repeat > 0 {
		header += fmt.Sprintf(", %d rounds", p.Repeat+1)
	}
	fmt.Fprintln(f.w, headerStyle.Render(header+")"))

	plan := p.Plan()
	for i, d := range p.Sequence {
		fmt.Fprintf(f.w, "  %d. %-10s %s\n", i+1, f.dur(d), plan.Message(i))
	}

	var flags []string
	if p.Silent {
		flags = append(flags, "silent")
	}
	if p.Notify {
		flags = append(flags, "notify")
	}
	if p.AlarmFile != "" {
		flags = append(flags, "alarm "+p.AlarmFile)
	}
	if p.IconFile != "" {
		flags = append(flags, "icon "+p.IconFile)
	}
	if len(flags) > 0 {
		fmt.Fprintln(f.w, mutedStyle.Render("  "+strings.Join(flags, ", ")))
	}
}
