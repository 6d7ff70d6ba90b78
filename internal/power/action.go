package power

import (
	"context"
	"fmt"
	"strings"
)

// Action is a privileged power action.
type Action int

const (
	// PowerOff halts the system.
	PowerOff Action = iota
	// Restart reboots the system.
	Restart
)

func (a Action) String() string {
	switch a {
	case PowerOff:
		return "power_off"
	case Restart:
		return "restart"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Executor runs power actions.
type Executor interface {
	Execute(ctx context.Context, action Action) error
}

// ActionError is returned when a power command fails to run or exits
// non-zero.
type ActionError struct {
	Action  Action
	Command []string
	// Output is the combined stdout/stderr of the command, if any
	Output string
	Err    error
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("%s (%s) failed: %v", e.Action, strings.Join(e.Command, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
