package store

import "time"

// Session is one finished or stopped timer run.
type Session struct {
	ID        int64
	RunID     string
	Message   string
	StartedAt time.Time
	EndedAt   time.Time
	Planned   int64 // seconds
	Elapsed   int64 // seconds
	Completed bool
	CreatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// SessionFilter is used to filter sessions in queries.
type SessionFilter struct {
	From          *time.Time
	To            *time.Time
	CompletedOnly bool
	Limit         int
}

// DailySummary represents aggregated focus time per day.
type DailySummary struct {
	Date         string
	TotalSeconds int64
	Sessions     int
	Completed    int
}

// Profile is a named, reusable sequence of timer steps.
type Profile struct {
	Name      string
	Sequence  []int64 // seconds per step
	Messages  []string
	AlarmFile string
	IconFile  string
	Silent    bool
	Notify    bool
	Repeat    int
	CreatedAt time.Time
}
