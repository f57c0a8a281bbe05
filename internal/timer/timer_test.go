package timer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1_700_000_000, 0)

func at(secs int) time.Time {
	return epoch.Add(time.Duration(secs) * time.Second)
}

func started(d int64) Record {
	var r Record
	r.Start(epoch, StartOptions{Duration: d})
	return r
}

func TestNewRecord(t *testing.T) {
	r := New(epoch)
	assert.Equal(t, Finished, r.State)
	assert.Equal(t, DefaultDuration, r.Duration)
	assert.Equal(t, epoch.Unix(), r.StartTime)
	assert.Equal(t, r.StartTime, r.PauseTime)
	assert.Equal(t, int64(0), r.Left(at(10)))
	assert.Equal(t, DefaultDuration, r.Elapsed(at(10)))
}

func TestStart(t *testing.T) {
	r := New(epoch)
	r.Start(at(5), StartOptions{Duration: 60, Message: "write", Silent: true, Notify: true, Wait: true})

	assert.Equal(t, Running, r.State)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, at(5).Unix(), r.StartTime)
	assert.Equal(t, r.StartTime, r.PauseTime)
	assert.Equal(t, int64(60), r.Duration)
	assert.Equal(t, "write", r.Message)
	assert.True(t, r.Silent)
	assert.True(t, r.Notify)
	assert.True(t, r.Wait)
}

func TestStartReinitialisesFinished(t *testing.T) {
	r := started(60)
	first := r.ID
	r.Stop(at(10))
	r.Start(at(20), StartOptions{Duration: 30})

	assert.Equal(t, Running, r.State)
	assert.NotEqual(t, first, r.ID)
	assert.Equal(t, int64(30), r.Left(at(20)))
}

func TestPauseResumeScenario(t *testing.T) {
	r := started(20)

	require.Equal(t, int64(10), r.Left(at(10)))
	require.NoError(t, r.Pause(at(10)))
	assert.Equal(t, Paused, r.State)

	// Frozen while paused.
	assert.Equal(t, int64(10), r.Left(at(15)))
	assert.Equal(t, int64(10), r.Elapsed(at(15)))
	assert.Equal(t, int64(10), r.Elapsed(at(1000)))

	require.NoError(t, r.Resume(at(15)))
	assert.Equal(t, Running, r.State)
	assert.Equal(t, int64(10), r.Left(at(15)))
	assert.Equal(t, int64(20), r.Duration, "resume keeps the original target")
	assert.Equal(t, r.StartTime, r.PauseTime)

	assert.Equal(t, int64(5), r.Left(at(20)))
}

func TestPauseResumeRoundTripWithoutGap(t *testing.T) {
	r := started(300)
	before := r.Left(at(42))
	require.NoError(t, r.Pause(at(42)))
	require.NoError(t, r.Resume(at(42)))
	assert.Equal(t, before, r.Left(at(42)))
}

func TestAdd(t *testing.T) {
	r := started(60)
	elapsedBefore := r.Elapsed(at(20))

	require.NoError(t, r.Add(30))
	assert.Equal(t, int64(90), r.Duration)
	assert.Equal(t, elapsedBefore, r.Elapsed(at(20)))
	assert.Equal(t, epoch.Unix(), r.StartTime)
	assert.Equal(t, int64(70), r.Left(at(20)))
}

func TestInvalidTransitions(t *testing.T) {
	paused := started(60)
	require.NoError(t, paused.Pause(at(1)))
	finished := started(60)
	finished.Stop(at(1))

	tests := []struct {
		name string
		op   func(r *Record) error
		rec  Record
	}{
		{"pause paused", func(r *Record) error { return r.Pause(at(2)) }, paused},
		{"pause finished", func(r *Record) error { return r.Pause(at(2)) }, finished},
		{"resume running", func(r *Record) error { return r.Resume(at(2)) }, started(60)},
		{"resume finished", func(r *Record) error { return r.Resume(at(2)) }, finished},
		{"add paused", func(r *Record) error { return r.Add(10) }, paused},
		{"add finished", func(r *Record) error { return r.Add(10) }, finished},
		{"toggle finished", func(r *Record) error { return r.Toggle(at(2)) }, finished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			before := rec
			err := tt.op(&rec)
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, before, rec, "failed transition must not mutate the record")
		})
	}
}

func TestToggle(t *testing.T) {
	r := started(60)
	require.NoError(t, r.Toggle(at(10)))
	assert.Equal(t, Paused, r.State)
	require.NoError(t, r.Toggle(at(20)))
	assert.Equal(t, Running, r.State)
	assert.Equal(t, int64(50), r.Left(at(20)))
}

func TestStopIdempotent(t *testing.T) {
	r := started(60)
	r.Stop(at(10))
	first := r
	assert.Equal(t, Finished, r.State)
	assert.Equal(t, int64(0), r.Left(at(10)))

	r.Stop(at(50))
	assert.Equal(t, first, r)
	assert.Equal(t, int64(0), r.Left(at(5000)))
	assert.Equal(t, int64(60), r.Elapsed(at(5000)))
}

func TestStopWhilePaused(t *testing.T) {
	r := started(60)
	require.NoError(t, r.Pause(at(10)))
	r.Stop(at(30))
	assert.Equal(t, Finished, r.State)
	assert.Equal(t, int64(0), r.Left(at(30)))
}

func TestElapsedMonotonicWhileRunning(t *testing.T) {
	r := started(100)
	prev := int64(-1)
	for s := -5; s < 200; s += 7 {
		e := r.Elapsed(at(s))
		assert.GreaterOrEqual(t, e, prev)
		assert.GreaterOrEqual(t, e, int64(0))
		prev = e
	}
}

func TestLeftNeverNegative(t *testing.T) {
	r := started(10)
	assert.Equal(t, int64(0), r.Left(at(1_000_000)))
	assert.True(t, r.RunOut(at(10)))
	assert.False(t, r.RunOut(at(9)))
}

func TestPercentage(t *testing.T) {
	r := started(200)
	assert.Equal(t, 100, r.Percentage(at(0)))
	assert.Equal(t, 50, r.Percentage(at(100)))
	assert.Equal(t, 0, r.Percentage(at(300)))

	zero := started(0)
	assert.Equal(t, 0, zero.Percentage(at(0)))

	negative := Record{State: Running, StartTime: epoch.Unix(), Duration: -5}
	assert.Equal(t, 0, negative.Percentage(at(1)))
}

func TestRecordJSON(t *testing.T) {
	r := started(90)
	require.NoError(t, r.Pause(at(30)))

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"state", "start_time", "pause_time", "duration", "silent", "notify", "wait"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "Paused", raw["state"])

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestStateUnmarshal(t *testing.T) {
	var s State
	require.NoError(t, s.UnmarshalText([]byte("Stopped")))
	assert.Equal(t, Finished, s)
	assert.Error(t, s.UnmarshalText([]byte("Sleeping")))

	_, err := State(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "State(42)", State(42).String())
}

func TestFixedClock(t *testing.T) {
	c := &FixedClock{T: epoch}
	c.Advance(90 * time.Second)
	assert.Equal(t, at(90), c.Now())
}

// ============================================================
// Plans
// ============================================================

func focusPlan() Plan {
	return Plan{
		Name:     "classic",
		Sequence: []int64{60, 30},
		Messages: []string{"focus"},
		Repeat:   1,
	}
}

func TestPlanValidate(t *testing.T) {
	assert.NoError(t, focusPlan().Validate())

	bad := []Plan{
		{Name: "empty"},
		{Name: "zero", Sequence: []int64{60, 0}},
		{Name: "negative", Sequence: []int64{-1}},
		{Name: "repeat", Sequence: []int64{60}, Repeat: -1},
		{Name: "repeat", Sequence: []int64{60}, Repeat: MaxRepeat + 1},
	}
	for _, p := range bad {
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan, p.Name)
	}
}

func TestStartPlan(t *testing.T) {
	var r Record
	require.NoError(t, r.StartPlan(epoch, focusPlan(), StartOptions{Duration: 999, Silent: true}))

	assert.Equal(t, Running, r.State)
	assert.Equal(t, int64(60), r.Duration)
	assert.Equal(t, "focus", r.Message)
	assert.True(t, r.Silent)
	require.NotNil(t, r.Plan)
	assert.Equal(t, 0, r.Step)

	var custom Record
	require.NoError(t, custom.StartPlan(epoch, focusPlan(), StartOptions{Message: "essay"}))
	assert.Equal(t, "essay", custom.Message)

	assert.ErrorIs(t, custom.StartPlan(epoch, Plan{}, StartOptions{}), ErrInvalidPlan)
	assert.Equal(t, "essay", custom.Message, "failed start leaves the record alone")
}

func TestPlanNextWalksRounds(t *testing.T) {
	var r Record
	require.NoError(t, r.StartPlan(epoch, focusPlan(), StartOptions{}))

	type step struct {
		step, round int
		dur         int64
		msg         string
		start       int64
	}
	want := []step{
		{1, 0, 30, "classic", epoch.Unix() + 60},
		{0, 1, 60, "focus", epoch.Unix() + 90},
		{1, 1, 30, "classic", epoch.Unix() + 150},
	}
	ids := map[string]bool{r.ID: true}
	for _, w := range want {
		next, ok := r.Next()
		require.True(t, ok)
		assert.Equal(t, Running, next.State)
		assert.Equal(t, w.step, next.Step)
		assert.Equal(t, w.round, next.Round)
		assert.Equal(t, w.dur, next.Duration)
		assert.Equal(t, w.msg, next.Message)
		assert.Equal(t, w.start, next.StartTime)
		assert.False(t, ids[next.ID], "each step gets its own run id")
		ids[next.ID] = true
		r = next
	}

	_, ok := r.Next()
	assert.False(t, ok, "last step of last round has no successor")
}

func TestPlanNextIsDeterministic(t *testing.T) {
	var r Record
	require.NoError(t, r.StartPlan(epoch, focusPlan(), StartOptions{}))
	a, _ := r.Next()
	b, _ := r.Next()
	assert.Equal(t, a.ID, b.ID)
}

func TestNextWithoutPlan(t *testing.T) {
	_, ok := started(60).Next()
	assert.False(t, ok)
}

func TestStartClearsPlan(t *testing.T) {
	var r Record
	require.NoError(t, r.StartPlan(epoch, focusPlan(), StartOptions{}))
	r.Start(at(10), StartOptions{Duration: 60})
	assert.Nil(t, r.Plan)
	assert.Equal(t, 0, r.Step)
}

func TestPlanRecordJSON(t *testing.T) {
	var r Record
	require.NoError(t, r.StartPlan(epoch, focusPlan(), StartOptions{}))
	r, _ = r.Next()

	data, err := json.Marshal(r)
	require.NoError(t, err)
	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}
