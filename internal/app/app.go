// Package app runs one timer operation per call: load the record, settle a
// natural finish, apply a transition, save, then run the side effects.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jkallio/pomodoro-cli/internal/store"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

// Records is the persisted current timer.
type Records interface {
	timer.Repository
	Clear() error
}

// History stores finished runs. RecordSession reports false when the run was
// already stored.
type History interface {
	RecordSession(store.Session) (bool, error)
}

// Trigger announces a finished timer.
type Trigger interface {
	Trigger(timer.Record) error
}

type App struct {
	Records Records
	History History
	Alarm   Trigger
	Clock   timer.Clock
	Prefs   store.Preferences
	Log     *slog.Logger
}

// StartRequest carries the start command's options. Nil pointers mean the
// option was not given.
type StartRequest struct {
	Duration *int64
	Add      *int64
	Message  string
	Silent   *bool
	Notify   *bool
	Wait     bool
	Resume   bool

	// Plan starts a multi-step profile instead of a single duration.
	Plan *timer.Plan
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return timer.SystemClock.Now()
	}
	return a.Clock.Now()
}

func (a *App) log() *slog.Logger {
	if a.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Log
}

// load reads the record and settles a natural finish. A corrupt record is
// replaced by defaults.
func (a *App) load(now time.Time) (timer.Record, error) {
	rec, err := a.Records.Load()
	if errors.Is(err, store.ErrCorruptRecord) {
		a.log().Warn("timer record unreadable, using defaults", slog.Any("error", err))
	} else if err != nil {
		return rec, fmt.Errorf("load timer: %w", err)
	}
	if err := a.sync(&rec, now); err != nil {
		return rec, err
	}
	return rec, nil
}

// sync finishes a running record whose time has run out. A record with a
// plan moves on to its next step, repeatedly if several steps have run out
// since the last call. The alarm fires once, for the latest step this call
// stored.
func (a *App) sync(rec *timer.Record, now time.Time) error {
	if rec.State != timer.Running || !rec.RunOut(now) {
		return nil
	}

	var finished []timer.Record
	for rec.State == timer.Running && rec.RunOut(now) {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		done := *rec
		done.Stop(now)
		finished = append(finished, done)

		next, ok := rec.Next()
		if !ok {
			*rec = done
			break
		}
		*rec = next
	}
	if err := a.save(*rec); err != nil {
		return err
	}

	var announce *timer.Record
	for i := range finished {
		done := finished[i]
		a.log().Debug("timer finished", slog.String("run_id", done.ID), slog.Int64("duration", done.Duration))
		if a.record(done, time.Unix(done.StartTime+done.Duration, 0), done.Duration, true) {
			announce = &finished[i]
		}
	}
	if announce != nil && a.Alarm != nil {
		if err := a.Alarm.Trigger(*announce); err != nil {
			a.log().Warn("alarm failed", slog.Any("error", err))
		}
	}
	return nil
}

// record logs a run to history. It reports whether this call stored it, or
// true when there is no way to tell.
func (a *App) record(rec timer.Record, endedAt time.Time, elapsed int64, completed bool) bool {
	if a.History == nil {
		return true
	}
	inserted, err := a.History.RecordSession(store.Session{
		RunID:     rec.ID,
		Message:   rec.Message,
		StartedAt: rec.StartedAt(),
		EndedAt:   endedAt,
		Planned:   rec.Duration,
		Elapsed:   elapsed,
		Completed: completed,
	})
	if err != nil {
		a.log().Warn("could not record session", slog.String("run_id", rec.ID), slog.Any("error", err))
		return true
	}
	return inserted
}

func (a *App) save(rec timer.Record) error {
	if err := a.Records.Save(rec); err != nil {
		return fmt.Errorf("save timer: %w", err)
	}
	return nil
}

// abandon logs an unfinished run that is about to be replaced or stopped.
func (a *App) abandon(rec timer.Record, now time.Time) {
	if rec.State == timer.Finished || rec.ID == "" {
		return
	}
	a.record(rec, now, rec.Elapsed(now), false)
}

func (a *App) defaultDuration() int64 {
	if a.Prefs.DefaultDuration > 0 {
		return a.Prefs.DefaultDuration
	}
	return timer.DefaultDuration
}

func (a *App) Start(req StartRequest) (timer.Record, error) {
	now := a.now()
	rec, err := a.load(now)
	if err != nil {
		return rec, err
	}

	switch {
	case req.Resume && rec.State == timer.Paused:
		if err := rec.Resume(now); err != nil {
			return rec, err
		}
	case req.Resume && req.Add == nil && rec.State == timer.Running:
		// already counting down; keep the current run
	case req.Add != nil && rec.State == timer.Running:
		if err := rec.Add(*req.Add); err != nil {
			return rec, err
		}
	case req.Add != nil && rec.State == timer.Paused:
		return rec, fmt.Errorf("%w: cannot extend a paused timer", timer.ErrInvalidTransition)
	default:
		d := a.defaultDuration()
		if req.Add != nil {
			d = *req.Add
		} else if req.Duration != nil {
			d = *req.Duration
		}
		silent, notify := a.Prefs.Silent, a.Prefs.Notify
		if req.Silent != nil {
			silent = *req.Silent
		}
		if req.Notify != nil {
			notify = *req.Notify
		}
		opts := timer.StartOptions{
			Duration: d,
			Message:  req.Message,
			Silent:   silent,
			Notify:   notify,
			Wait:     req.Wait,
		}
		if req.Plan != nil {
			if err := req.Plan.Validate(); err != nil {
				return rec, err
			}
		}
		a.abandon(rec, now)
		if req.Plan != nil {
			if err := rec.StartPlan(now, *req.Plan, opts); err != nil {
				return rec, err
			}
		} else {
			rec.Start(now, opts)
		}
	}

	if err := a.save(rec); err != nil {
		return rec, err
	}
	a.log().Debug("timer started",
		slog.String("state", rec.State.String()),
		slog.String("run_id", rec.ID),
		slog.Int64("duration", rec.Duration),
		slog.Bool("plan", rec.Plan != nil),
	)
	return rec, nil
}

// apply runs one transition on the settled record and saves it.
func (a *App) apply(op string, fn func(*timer.Record, time.Time) error) (timer.Record, error) {
	now := a.now()
	rec, err := a.load(now)
	if err != nil {
		return rec, err
	}
	if err := fn(&rec, now); err != nil {
		return rec, err
	}
	if err := a.save(rec); err != nil {
		return rec, err
	}
	a.log().Debug("timer "+op, slog.String("state", rec.State.String()), slog.String("run_id", rec.ID))
	return rec, nil
}

func (a *App) Add(extra int64) (timer.Record, error) {
	return a.apply("extended", func(r *timer.Record, _ time.Time) error { return r.Add(extra) })
}

func (a *App) Pause() (timer.Record, error) {
	return a.apply("paused", (*timer.Record).Pause)
}

func (a *App) Resume() (timer.Record, error) {
	return a.apply("resumed", (*timer.Record).Resume)
}

func (a *App) Toggle() (timer.Record, error) {
	return a.apply("toggled", (*timer.Record).Toggle)
}

// Stop finishes the timer without an alarm. Stopping a finished timer
// changes nothing.
func (a *App) Stop() (timer.Record, error) {
	now := a.now()
	rec, err := a.load(now)
	if err != nil {
		return rec, err
	}
	if rec.State == timer.Finished {
		return rec, nil
	}
	elapsed := rec.Elapsed(now)
	rec.Stop(now)
	if err := a.save(rec); err != nil {
		return rec, err
	}
	if rec.ID != "" {
		a.record(rec, now, elapsed, false)
	}
	a.log().Debug("timer stopped", slog.String("run_id", rec.ID), slog.Int64("elapsed", elapsed))
	return rec, nil
}

// Reset removes the persisted record. The next load returns defaults.
func (a *App) Reset() error {
	if err := a.Records.Clear(); err != nil {
		return fmt.Errorf("reset timer: %w", err)
	}
	a.log().Debug("timer reset")
	return nil
}

// Status returns the settled record. It fires the alarm if the timer ran
// out since the last call.
func (a *App) Status() (timer.Record, error) {
	return a.load(a.now())
}

// Now exposes the app clock so callers render with the same instant.
func (a *App) Now() time.Time { return a.now() }
