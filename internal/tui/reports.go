package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkallio/pomodoro-cli/internal/store"
)

// Report draws focus time per day over a date range.
type Report struct {
	From, To  time.Time
	Summaries []store.DailySummary
	Width     int
	Height    int
}

// ReportRange returns the last days days ending today, in UTC.
func ReportRange(now time.Time, days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1)
	return end.AddDate(0, 0, -days), end
}

func (r Report) chart() barchart.Model {
	width := r.Width - 8
	if width < 20 {
		width = 20
	}
	height := r.Height
	if height < 6 {
		height = 12
	}

	chart := barchart.New(width, height)

	// Build bars for each day in range
	var bars []barchart.BarData
	for d := r.From; d.Before(r.To); d = d.AddDate(0, 0, 1) {
		s := r.day(d.Format("2006-01-02"))
		focused := s.TotalSeconds
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: float64(focused) / 3600.0,
				Style: barStyle,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (r Report) day(date string) store.DailySummary {
	for _, s := range r.Summaries {
		if s.Date == date {
			return s
		}
	}
	return store.DailySummary{Date: date}
}

func (r Report) View() string {
	w := r.Width - 4
	if w < 30 {
		w = 30
	}

	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", r.From.Format("Jan 02"), r.To.Add(-24*time.Hour).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Focus time"), "  ", dateLabel)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart().View(), "", r.table(w),
		),
	)
}

func (r Report) table(w int) string {
	if len(r.Summaries) == 0 {
		return mutedStyle.Render("  No sessions for this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %9s %10s", "Date", "Focus", "Sessions", "Completed")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 42))))

	var total int64
	for _, s := range r.Summaries {
		total += s.TotalSeconds
		done := fmt.Sprintf("%10d", s.Completed)
		if s.Completed > 0 {
			done = completedBarStyle.Render(done)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %8s %9d %s", s.Date, formatMinutes(s.TotalSeconds), s.Sessions, done))
	}
	rows = append(rows, "", highlightStyle.Render(fmt.Sprintf("  Total %s", formatHours(total))))

	return strings.Join(rows, "\n")
}
