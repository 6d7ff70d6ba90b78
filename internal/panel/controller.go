package panel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/confirm"
	"github.com/muurk/tetherpanel/internal/display"
	"github.com/muurk/tetherpanel/internal/logging"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
	"github.com/muurk/tetherpanel/internal/status"
)

// Stop says whether, and why, the loop should end after a tick.
type Stop int

const (
	// Continue keeps the loop running.
	Continue Stop = iota
	// StopExitCombo means SW1 and SW2 were held together.
	StopExitCombo
	// StopPowerAction means a confirmed power action succeeded.
	StopPowerAction
	// StopInterrupted means the loop context was cancelled.
	StopInterrupted
)

func (s Stop) String() string {
	switch s {
	case Continue:
		return "continue"
	case StopExitCombo:
		return "exit_combo"
	case StopPowerAction:
		return "power_action"
	case StopInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("Stop(%d)", int(s))
	}
}

// Controller runs the button/dashboard loop.
type Controller struct {
	opts     Options
	buttons  buttons.Source
	renderer display.Renderer
	switcher *route.Switcher
	power    power.Executor
	state    *Context
}

// New creates a controller. The font size is taken from opts, or from the
// renderer's height when it implements display.Sizer.
func New(src buttons.Source, renderer display.Renderer, switcher *route.Switcher, exec power.Executor, opts Options) *Controller {
	opts = opts.withDefaults()

	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = display.DefaultFontSize
		if s, ok := renderer.(display.Sizer); ok {
			_, h := s.Size()
			fontSize = display.FontSizeFor(h)
		}
	}

	return &Controller{
		opts:     opts,
		buttons:  src,
		renderer: renderer,
		switcher: switcher,
		power:    exec,
		state:    NewContext(opts.Now(), opts.ConfirmWindow, opts.RefreshInterval, fontSize),
	}
}

// State returns the dashboard context.
func (c *Controller) State() *Context {
	return c.state
}

// Run shows the startup screen and polls until the exit combo, a cancelled
// ctx, or a successful power action.
func (c *Controller) Run(ctx context.Context) (Stop, error) {
	if err := c.renderer.Clear(); err != nil {
		logging.Warn("Failed to clear display", zap.Error(err))
	}
	if err := c.renderer.Render(status.ReadyText, c.state.FontSize); err != nil {
		return Continue, fmt.Errorf("failed to show startup screen: %w", err)
	}
	if err := c.opts.Sleep(ctx, c.opts.ReadyDelay); err != nil {
		c.exit(ctx)
		return StopInterrupted, nil
	}

	logging.Info("Starting dashboard loop",
		zap.Duration("poll_interval", c.opts.PollInterval),
		zap.Duration("refresh_interval", c.opts.RefreshInterval),
		zap.Int("font_size", c.state.FontSize),
	)

	for {
		if ctx.Err() != nil {
			c.exit(ctx)
			return StopInterrupted, nil
		}

		now := c.opts.Now()
		stop, err := c.Tick(ctx, now)
		if err != nil {
			c.showError(now, err)
		}
		switch stop {
		case StopExitCombo:
			c.exit(ctx)
			return stop, nil
		case StopPowerAction:
			return stop, nil
		}

		if err := c.opts.Sleep(ctx, c.opts.PollInterval); err != nil {
			c.exit(ctx)
			return StopInterrupted, nil
		}
	}
}

// Tick performs one iteration at now. A returned error has not been shown
// yet; Run renders it in place of the dashboard.
func (c *Controller) Tick(ctx context.Context, now time.Time) (Stop, error) {
	pressed, err := c.buttons.Read()
	if err != nil {
		return Continue, err
	}

	if pressed.ExitCombo() {
		logging.LogButton("SW1+SW2", "exit")
		return StopExitCombo, nil
	}

	forced := true
	var branchErr error
	switch {
	case pressed.Pressed(buttons.SW1):
		logging.LogButton(buttons.SW1.String(), "shutdown")
		var stop Stop
		stop, branchErr = c.confirmPower(ctx, now, c.state.Shutdown, power.PowerOff, status.ShuttingDown)
		if stop != Continue {
			return stop, nil
		}
	case pressed.Pressed(buttons.SW2):
		logging.LogButton(buttons.SW2.String(), "reboot")
		var stop Stop
		stop, branchErr = c.confirmPower(ctx, now, c.state.Reboot, power.Restart, status.Rebooting)
		if stop != Continue {
			return stop, nil
		}
	case pressed.Pressed(buttons.SW3):
		logging.LogButton(buttons.SW3.String(), "switch "+c.opts.Uplinks.Button3)
		branchErr = c.switchUplink(c.opts.Uplinks.Button3)
	case pressed.Pressed(buttons.SW4):
		logging.LogButton(buttons.SW4.String(), "switch "+c.opts.Uplinks.Button4)
		branchErr = c.switchUplink(c.opts.Uplinks.Button4)
	default:
		forced = false
	}

	// Evaluate both; an expired hint forces a redraw so it disappears.
	expired := c.evaluate(c.state.Shutdown, now)
	if c.evaluate(c.state.Reboot, now) {
		expired = true
	}

	if branchErr != nil {
		return Continue, branchErr
	}
	if forced || expired || c.state.Scheduler.ShouldRefresh(now) {
		return Continue, c.refresh(now, forced || expired)
	}
	return Continue, nil
}

func (c *Controller) confirmPower(ctx context.Context, now time.Time, p *confirm.Pending, action power.Action, screen func(time.Time) string) (Stop, error) {
	result := p.Trigger(now)
	deadline, _ := p.Deadline()
	logging.LogConfirmation(p.Name(), result.String(), deadline)
	if result != confirm.ResultConfirmed {
		return Continue, nil
	}

	if err := c.renderer.Render(screen(now), c.state.FontSize); err != nil {
		logging.Warn("Failed to show power screen", zap.Stringer("action", action), zap.Error(err))
	}
	if err := c.power.Execute(ctx, action); err != nil {
		return Continue, err
	}
	logging.Info("Power action started", zap.Stringer("action", action))
	return StopPowerAction, nil
}

func (c *Controller) switchUplink(iface string) error {
	outcome, err := c.switcher.SwitchTo(iface)
	logging.LogRouteSwitch(iface, outcome.String(), err)
	if err != nil {
		return err
	}
	if info := OutcomeError(outcome, iface); info != nil {
		logging.Info("Route unchanged", zap.String("reason", info.Display()))
	}
	return nil
}

func (c *Controller) evaluate(p *confirm.Pending, now time.Time) bool {
	if !p.Evaluate(now) {
		return false
	}
	logging.LogConfirmation(p.Name(), "expired", time.Time{})
	return true
}

func (c *Controller) refresh(now time.Time, forced bool) error {
	c.state.Scheduler.ScheduleNext(now)

	current, err := c.switcher.Current()
	text := status.Compose(now, status.RouteStatus{Route: current, Err: err}, c.state.Shutdown, c.state.Reboot)

	logging.LogRefresh(now, forced)
	return c.renderer.Render(text, c.state.FontSize)
}

func (c *Controller) showError(now time.Time, err error) {
	panelErr := Classify(err)
	logging.Error("Tick failed",
		zap.String("type", panelErr.Type.String()),
		zap.Error(err),
	)

	c.state.Scheduler.ScheduleNext(now)
	if rerr := c.renderer.Render(panelErr.Display(), c.state.FontSize); rerr != nil {
		logging.Error("Failed to show error", zap.Error(rerr))
	}
}

// exit shows the goodbye screen and blanks the panel. It runs even when
// ctx is already cancelled.
func (c *Controller) exit(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := c.renderer.Render(status.ExitingText, c.state.FontSize); err != nil {
		logging.Warn("Failed to show exit screen", zap.Error(err))
	}
	_ = c.opts.Sleep(ctx, c.opts.ExitDelay)
	if err := c.renderer.Clear(); err != nil {
		logging.Warn("Failed to clear display", zap.Error(err))
	}
}
