package tui

import (
	"fmt"
	"time"

	"github.com/jkallio/pomodoro-cli/internal/timer"
)

// --- Messages ---

type tickMsg time.Time

// recordMsg carries a fresh status read.
type recordMsg struct {
	rec timer.Record
	now time.Time
	err error
}

// --- Helpers ---

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

func formatMinutes(secs int64) string {
	return fmt.Sprintf("%dm", secs/60)
}
