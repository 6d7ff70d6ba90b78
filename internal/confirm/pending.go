package confirm

import (
	"fmt"
	"time"
)

// State is the arming state of a Pending tracker.
type State int

const (
	// StateIdle means no press is awaiting confirmation.
	StateIdle State = iota
	// StateArmed means a first press was seen and the deadline is running.
	StateArmed
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Result is the outcome of a Trigger call.
type Result int

const (
	// ResultArmed means the press armed the tracker; nothing should run yet.
	ResultArmed Result = iota
	// ResultConfirmed means the press landed inside the window. The caller
	// performs the guarded action exactly once for each ResultConfirmed.
	ResultConfirmed
)

// String returns a human-readable name for the result
func (r Result) String() string {
	switch r {
	case ResultArmed:
		return "armed"
	case ResultConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("Result(%d)", r)
	}
}

// Pending tracks a single guarded action. The zero value is not usable;
// create trackers with New.
type Pending struct {
	name     string
	window   time.Duration
	state    State
	deadline time.Time
}

// New creates an idle tracker with the given confirmation window.
func New(name string, window time.Duration) *Pending {
	return &Pending{
		name:   name,
		window: window,
		state:  StateIdle,
	}
}

// Trigger records a press at now. Every call changes what the panel shows,
// so callers always force a redraw afterwards.
func (p *Pending) Trigger(now time.Time) Result {
	if p.state == StateArmed {
		if !now.After(p.deadline) {
			p.reset()
			return ResultConfirmed
		}
		// Stale arm: start over as if this were the first press.
		p.reset()
	}

	p.state = StateArmed
	p.deadline = now.Add(p.window)
	return ResultArmed
}

// Evaluate expires the tracker once now is strictly past the deadline.
// It returns true when the tracker went back to idle and the panel needs
// a redraw to drop the hint.
func (p *Pending) Evaluate(now time.Time) bool {
	if p.state != StateArmed || !now.After(p.deadline) {
		return false
	}
	p.reset()
	return true
}

func (p *Pending) reset() {
	p.state = StateIdle
	p.deadline = time.Time{}
}

// Name returns the action name the tracker guards.
func (p *Pending) Name() string {
	return p.name
}

// Window returns the confirmation window.
func (p *Pending) Window() time.Duration {
	return p.window
}

// State returns the current state.
func (p *Pending) State() State {
	return p.state
}

// Armed reports whether a first press is awaiting confirmation.
func (p *Pending) Armed() bool {
	return p.state == StateArmed
}

// Deadline returns the confirmation deadline and whether the tracker is armed.
func (p *Pending) Deadline() (time.Time, bool) {
	return p.deadline, p.state == StateArmed
}
