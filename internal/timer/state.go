package timer

import "fmt"

// State is the phase of the timer.
type State int

const (
	Finished State = iota
	Running
	Paused
)

var stateNames = map[State]string{
	Finished: "Finished",
	Running:  "Running",
	Paused:   "Paused",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText writes the state name used in the record file.
func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("marshal state: unknown state %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText accepts the names written by MarshalText. "Stopped" is read
// as Finished so files from the two-state layout still load.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Finished", "Stopped":
		*s = Finished
	case "Running":
		*s = Running
	case "Paused":
		*s = Paused
	default:
		return fmt.Errorf("unmarshal state: unknown state %q", b)
	}
	return nil
}
