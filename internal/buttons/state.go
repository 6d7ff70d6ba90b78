package buttons

import (
	"fmt"
	"strings"
)

// Button identifies one of the five logical buttons.
type Button int

// Logical buttons, in panel order.
const (
	SW1 Button = iota
	SW2
	SW3
	SW4
	SW5
)

// Count is the number of logical buttons.
const Count = 5

// String returns the silkscreen label of the button
func (b Button) String() string {
	if b < 0 || int(b) >= Count {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return fmt.Sprintf("SW%d", int(b)+1)
}

// State holds one reading of all five buttons.
type State [Count]bool

// NewState returns a state with the given buttons pressed.
func NewState(pressed ...Button) State {
	var s State
	for _, b := range pressed {
		if b >= 0 && int(b) < Count {
			s[b] = true
		}
	}
	return s
}

// Pressed reports whether b is held down.
func (s State) Pressed(b Button) bool {
	if b < 0 || int(b) >= Count {
		return false
	}
	return s[b]
}

// ExitCombo reports whether SW1 and SW2 are held together.
func (s State) ExitCombo() bool {
	return s[SW1] && s[SW2]
}

// Any reports whether any button is held.
func (s State) Any() bool {
	for _, p := range s {
		if p {
			return true
		}
	}
	return false
}

// String lists the pressed buttons, e.g. "SW1+SW2", or "none".
func (s State) String() string {
	var names []string
	for i, p := range s {
		if p {
			names = append(names, Button(i).String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Source yields button states. Read is called once per tick.
type Source interface {
	Read() (State, error)
	Close() error
}

// ReadError wraps a failure to sample the buttons.
type ReadError struct {
	Button Button
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Button, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
