package panel

import (
	"time"

	"github.com/muurk/tetherpanel/internal/confirm"
	"github.com/muurk/tetherpanel/internal/schedule"
)

// Context is the dashboard's mutable state. It is owned by one Controller
// and only touched from its loop.
type Context struct {
	Shutdown  *confirm.Pending
	Reboot    *confirm.Pending
	Scheduler *schedule.Scheduler
	FontSize  int
}

// NewContext creates idle trackers and a scheduler whose first refresh is
// due at now.
func NewContext(now time.Time, window, interval time.Duration, fontSize int) *Context {
	return &Context{
		Shutdown:  confirm.New("shutdown", window),
		Reboot:    confirm.New("reboot", window),
		Scheduler: schedule.New(now, interval),
		FontSize:  fontSize,
	}
}
