package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxRepeat bounds how many extra rounds a plan may run.
const MaxRepeat = 1000

// ErrInvalidPlan is returned for a plan without steps or with a step that is
// not a positive duration.
var ErrInvalidPlan = errors.New("invalid plan")

// Plan runs a sequence of durations back to back. Step i uses Messages[i]
// as its message when present. The whole sequence runs Repeat extra times.
type Plan struct {
	Name      string   `json:"name"`
	Sequence  []int64  `json:"sequence"`
	Messages  []string `json:"messages,omitempty"`
	Repeat    int      `json:"repeat,omitempty"`
	AlarmFile string   `json:"alarm_file,omitempty"`
	IconFile  string   `json:"icon_file,omitempty"`
}

func (p Plan) Validate() error {
	if len(p.Sequence) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidPlan)
	}
	for i, d := range p.Sequence {
		if d <= 0 {
			return fmt.Errorf("%w: step %d has no duration", ErrInvalidPlan, i+1)
		}
	}
	if p.Repeat < 0 || p.Repeat > MaxRepeat {
		return fmt.Errorf("%w: repeat must be between 0 and %d", ErrInvalidPlan, MaxRepeat)
	}
	return nil
}

// Steps is the number of steps in one round.
func (p Plan) Steps() int { return len(p.Sequence) }

// Message returns the message of step i, or the plan name.
func (p Plan) Message(i int) string {
	if i < len(p.Messages) && p.Messages[i] != "" {
		return p.Messages[i]
	}
	return p.Name
}

// StartPlan starts the first step of p. A non-empty opts.Message replaces
// the first step's message; opts.Duration is ignored.
func (r *Record) StartPlan(now time.Time, p Plan, opts StartOptions) error {
	if err := p.Validate(); err != nil {
		return err
	}
	opts.Duration = p.Sequence[0]
	if opts.Message == "" {
		opts.Message = p.Message(0)
	}
	r.Start(now, opts)
	r.Plan = &p
	return nil
}

// Next returns the record for the step after r, starting where r's duration
// ends. The run id is derived from r's so that every process settling the
// same step computes the same successor. ok is false when r has no plan or
// was its last step.
func (r Record) Next() (next Record, ok bool) {
	if r.Plan == nil {
		return Record{}, false
	}
	step, round := r.Step+1, r.Round
	if step >= r.Plan.Steps() {
		step, round = 0, round+1
	}
	if round > r.Plan.Repeat {
		return Record{}, false
	}

	start := r.StartTime + r.Duration
	next = r
	next.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(r.ID+"/next")).String()
	next.State = Running
	next.StartTime = start
	next.PauseTime = start
	next.Duration = r.Plan.Sequence[step]
	next.Message = r.Plan.Message(step)
	next.Step = step
	next.Round = round
	return next, true
}
