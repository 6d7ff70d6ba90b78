// Package status builds the text shown on the panel.
//
// Compose produces the dashboard: route line, time line, then the reboot and
// shutdown hints when those actions are armed. The remaining helpers build
// the one-off screens shown at startup, before a power action and on exit.
package status

import (
	"strings"
	"time"

	"github.com/muurk/tetherpanel/internal/route"
)

// TimeLayout formats the time line as MM/DD HH:MM:SS.
const TimeLayout = "01/02 15:04:05"

// Fixed panel texts.
const (
	NoDefaultRouteText = "No default route"
	RebootHint         = "Press again to reboot"
	ShutdownHint       = "Press again to shutdown"
	ReadyText          = "Ready... SW1 + SW2 to exit."
	ExitingText        = "Exiting ..."
)

// RouteStatus is the outcome of querying the default route for display.
type RouteStatus struct {
	// Route is the default route, nil when there is none
	Route *route.Route
	// Err is set when the query itself failed
	Err error
}

// Armable is satisfied by a confirmation tracker.
type Armable interface {
	Armed() bool
}

// Compose returns the dashboard text. Lines are always emitted in the same
// order and absent hints are omitted rather than left blank.
func Compose(now time.Time, rs RouteStatus, shutdown, reboot Armable) string {
	lines := []string{RouteLine(rs), TimeLine(now)}
	if reboot != nil && reboot.Armed() {
		lines = append(lines, RebootHint)
	}
	if shutdown != nil && shutdown.Armed() {
		lines = append(lines, ShutdownHint)
	}
	return strings.Join(lines, "\n")
}

// RouteLine renders the default route as "<ifname>/<gateway>".
func RouteLine(rs RouteStatus) string {
	switch {
	case rs.Err != nil:
		return "Exception: " + rs.Err.Error()
	case rs.Route == nil:
		return NoDefaultRouteText
	default:
		return rs.Route.String()
	}
}

// TimeLine renders now with TimeLayout.
func TimeLine(now time.Time) string {
	return now.Format(TimeLayout)
}

// ShuttingDown is shown just before the power-off command runs.
func ShuttingDown(now time.Time) string {
	return "Shutting down\n" + TimeLine(now)
}

// Rebooting is shown just before the restart command runs.
func Rebooting(now time.Time) string {
	return "Rebooting\n" + TimeLine(now)
}
