package panel

import (
	"errors"
	"fmt"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/display"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
)

// ErrorType represents the category of a tick failure
type ErrorType int

const (
	// ErrTypeNoDefaultRoute indicates there was no default route to move
	ErrTypeNoDefaultRoute ErrorType = iota
	// ErrTypeUnknownInterface indicates the requested uplink does not exist
	ErrTypeUnknownInterface
	// ErrTypeRouteQuery indicates the routing table could not be read
	ErrTypeRouteQuery
	// ErrTypeRouteCommit indicates the kernel rejected the route change
	ErrTypeRouteCommit
	// ErrTypePrivilegedAction indicates halt or reboot failed
	ErrTypePrivilegedAction
	// ErrTypeRender indicates the display could not be updated
	ErrTypeRender
	// ErrTypeInput indicates the buttons could not be read
	ErrTypeInput
	// ErrTypeUnknown indicates an unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNoDefaultRoute:
		return "No Default Route"
	case ErrTypeUnknownInterface:
		return "Unknown Interface"
	case ErrTypeRouteQuery:
		return "Route Query Error"
	case ErrTypeRouteCommit:
		return "Route Commit Error"
	case ErrTypePrivilegedAction:
		return "Power Action Error"
	case ErrTypeRender:
		return "Render Error"
	case ErrTypeInput:
		return "Input Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// PanelError is a classified tick failure.
type PanelError struct {
	Type    ErrorType // Category of error
	Message string    // Short text suitable for the panel
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *PanelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *PanelError) Unwrap() error {
	return e.Err
}

// Display returns the text rendered in place of the dashboard.
func (e *PanelError) Display() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Informational reports whether the error describes a valid state rather
// than a failure.
func (e *PanelError) Informational() bool {
	return e.Type == ErrTypeNoDefaultRoute || e.Type == ErrTypeUnknownInterface
}

// Classify maps an error raised during a tick onto the taxonomy.
func Classify(err error) *PanelError {
	if err == nil {
		return nil
	}

	var panelErr *PanelError
	if errors.As(err, &panelErr) {
		return panelErr
	}

	var commitErr *route.CommitError
	if errors.As(err, &commitErr) {
		return &PanelError{
			Type:    ErrTypeRouteCommit,
			Message: fmt.Sprintf("Switch to %s failed", commitErr.Interface),
			Err:     commitErr.Err,
		}
	}

	var queryErr *route.QueryError
	if errors.As(err, &queryErr) {
		return &PanelError{
			Type:    ErrTypeRouteQuery,
			Message: fmt.Sprintf("Route %s failed", queryErr.Op),
			Err:     queryErr.Err,
		}
	}

	var actionErr *power.ActionError
	if errors.As(err, &actionErr) {
		return &PanelError{
			Type:    ErrTypePrivilegedAction,
			Message: fmt.Sprintf("%s failed", actionLabel(actionErr.Action)),
			Err:     actionErr.Err,
		}
	}

	var renderErr *display.RenderError
	if errors.As(err, &renderErr) {
		return &PanelError{
			Type:    ErrTypeRender,
			Message: "Display update failed",
			Err:     renderErr.Err,
		}
	}

	var readErr *buttons.ReadError
	if errors.As(err, &readErr) {
		return &PanelError{
			Type:    ErrTypeInput,
			Message: fmt.Sprintf("Cannot read %s", readErr.Button),
			Err:     readErr.Err,
		}
	}

	return &PanelError{
		Type:    ErrTypeUnknown,
		Message: "Exception",
		Err:     err,
	}
}

// OutcomeError describes a switch outcome that left the table untouched
// because of the table's state. It returns nil for Switched and
// AlreadySelected.
func OutcomeError(outcome route.Outcome, iface string) *PanelError {
	switch outcome {
	case route.NoDefaultRoute:
		return &PanelError{Type: ErrTypeNoDefaultRoute, Message: "No default route to move to " + iface}
	case route.UnknownInterface:
		return &PanelError{Type: ErrTypeUnknownInterface, Message: "No such interface: " + iface}
	default:
		return nil
	}
}

func actionLabel(a power.Action) string {
	switch a {
	case power.PowerOff:
		return "Shutdown"
	case power.Restart:
		return "Reboot"
	default:
		return a.String()
	}
}
