// Package timer holds the countdown record that is persisted between
// invocations and the arithmetic that reconciles it with wall-clock time.
//
// Every transition and query takes the current instant as a parameter; the
// package never reads the clock itself.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is used when a timer is started without a duration.
const DefaultDuration int64 = 25 * 60

// ErrInvalidTransition is returned when an operation is not allowed in the
// record's current state.
var ErrInvalidTransition = errors.New("invalid transition")

// Record is the single persisted timer document. Times are Unix seconds.
type Record struct {
	ID        string `json:"id,omitempty"`
	State     State  `json:"state"`
	StartTime int64  `json:"start_time"`
	PauseTime int64  `json:"pause_time"`
	Duration  int64  `json:"duration"`
	Message   string `json:"message,omitempty"`
	Silent    bool   `json:"silent"`
	Notify    bool   `json:"notify"`
	Wait      bool   `json:"wait"`

	// Plan is set while a multi-step profile runs; Step and Round locate
	// the current step in it.
	Plan  *Plan `json:"plan,omitempty"`
	Step  int   `json:"step,omitempty"`
	Round int   `json:"round,omitempty"`
}

// StartOptions configures a fresh run.
type StartOptions struct {
	Duration int64
	Message  string
	Silent   bool
	Notify   bool
	Wait     bool
}

// New returns the record used when nothing has been persisted yet.
func New(now time.Time) Record {
	ts := now.Unix()
	return Record{
		State:     Finished,
		StartTime: ts,
		PauseTime: ts,
		Duration:  DefaultDuration,
	}
}

func transitionError(op string, s State) error {
	return fmt.Errorf("%w: cannot %s a %s timer", ErrInvalidTransition, op, s)
}

// Start re-initialises the record and sets it running. It is legal in every
// state.
func (r *Record) Start(now time.Time, opts StartOptions) {
	ts := now.Unix()
	*r = Record{
		ID:        uuid.NewString(),
		State:     Running,
		StartTime: ts,
		PauseTime: ts,
		Duration:  opts.Duration,
		Message:   opts.Message,
		Silent:    opts.Silent,
		Notify:    opts.Notify,
		Wait:      opts.Wait,
	}
}

// Add extends a running timer without touching its anchors.
func (r *Record) Add(extra int64) error {
	if r.State != Running {
		return transitionError("extend", r.State)
	}
	r.Duration += extra
	return nil
}

// Pause freezes elapsed time at now - start_time.
func (r *Record) Pause(now time.Time) error {
	if r.State != Running {
		return transitionError("pause", r.State)
	}
	r.PauseTime = now.Unix()
	r.State = Paused
	return nil
}

// Resume re-anchors start_time so that the frozen elapsed amount carries
// over. Duration is left as the original target.
func (r *Record) Resume(now time.Time) error {
	if r.State != Paused {
		return transitionError("resume", r.State)
	}
	elapsed := r.PauseTime - r.StartTime
	if elapsed < 0 {
		elapsed = 0
	}
	r.StartTime = now.Unix() - elapsed
	r.PauseTime = r.StartTime
	r.State = Running
	return nil
}

// Toggle pauses a running timer or resumes a paused one.
func (r *Record) Toggle(now time.Time) error {
	switch r.State {
	case Running:
		return r.Pause(now)
	case Paused:
		return r.Resume(now)
	}
	return transitionError("toggle", r.State)
}

// Stop marks the record finished. Stopping a finished record changes nothing.
func (r *Record) Stop(now time.Time) {
	if r.State == Finished {
		return
	}
	r.PauseTime = now.Unix()
	r.State = Finished
}

// Elapsed returns the seconds counted so far, never negative. A finished
// record reports its full duration.
func (r Record) Elapsed(now time.Time) int64 {
	var e int64
	switch r.State {
	case Finished:
		e = r.Duration
	case Paused:
		e = r.PauseTime - r.StartTime
	default:
		e = now.Unix() - r.StartTime
	}
	if e < 0 {
		return 0
	}
	return e
}

// Left returns duration - elapsed, floored at zero.
func (r Record) Left(now time.Time) int64 {
	left := r.Duration - r.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// RunOut reports whether no time is left.
func (r Record) RunOut(now time.Time) bool {
	return r.Left(now) <= 0
}

// Percentage is the share of the duration still left, 0-100. A record with
// no positive duration reports 0.
func (r Record) Percentage(now time.Time) int {
	if r.Duration <= 0 {
		return 0
	}
	return int(100 * r.Left(now) / r.Duration)
}

// StartedAt returns start_time as a time.Time.
func (r Record) StartedAt() time.Time {
	return time.Unix(r.StartTime, 0)
}
