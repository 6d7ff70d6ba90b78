package panel

import (
	"context"
	"time"
)

// Uplinks names the interfaces SW3 and SW4 move the default route to.
type Uplinks struct {
	Button3 string
	Button4 string
}

// Options configures a Controller.
type Options struct {
	// ConfirmWindow is how long a first press stays armed.
	// Default: 5 seconds
	ConfirmWindow time.Duration

	// RefreshInterval is the periodic redraw cadence.
	// Default: 60 seconds
	RefreshInterval time.Duration

	// PollInterval is the sleep between ticks.
	// Default: 100 milliseconds
	PollInterval time.Duration

	// ReadyDelay is how long the startup screen is shown.
	// Default: 5 seconds
	ReadyDelay time.Duration

	// ExitDelay is how long "Exiting ..." stays up before the panel is cleared.
	// Default: 200 milliseconds
	ExitDelay time.Duration

	// FontSize overrides the size derived from the panel height when > 0.
	FontSize int

	Uplinks Uplinks

	// Now returns the current time. Default: time.Now
	Now func() time.Time

	// Sleep waits for d or until ctx is done. Default: a timer select.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultOptions returns the stock timings.
func DefaultOptions() Options {
	return Options{
		ConfirmWindow:   5 * time.Second,
		RefreshInterval: 60 * time.Second,
		PollInterval:    100 * time.Millisecond,
		ReadyDelay:      5 * time.Second,
		ExitDelay:       200 * time.Millisecond,
		Uplinks:         Uplinks{Button3: "usb1", Button4: "usb0"},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ConfirmWindow <= 0 {
		o.ConfirmWindow = d.ConfirmWindow
	}
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = d.RefreshInterval
	}
	if o.PollInterval <= 0 {
		o.PollInterval = d.PollInterval
	}
	if o.ReadyDelay < 0 {
		o.ReadyDelay = 0
	}
	if o.ExitDelay < 0 {
		o.ExitDelay = 0
	}
	if o.Uplinks.Button3 == "" {
		o.Uplinks.Button3 = d.Uplinks.Button3
	}
	if o.Uplinks.Button4 == "" {
		o.Uplinks.Button4 = d.Uplinks.Button4
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = sleep
	}
	return o
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
