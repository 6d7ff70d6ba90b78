package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
	"github.com/muurk/tetherpanel/internal/status"
)

func TestNew_FontSizeFromPanelHeight(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 18, h.ctrl.State().FontSize)

	opts := DefaultOptions()
	opts.FontSize = 30
	ctrl := New(h.latch, h.screen, route.NewSwitcher(h.store), h.power, opts)
	assert.Equal(t, 30, ctrl.State().FontSize)
}

func TestTick_FirstTickDrawsDashboard(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, Continue, h.tick(t, 0))

	require.Len(t, h.screen.frames, 1)
	assert.Equal(t, "usb0/192.168.42.129\n03/07 14:05:09", h.screen.last())
}

func TestTick_PeriodicRefresh(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 0)

	h.tick(t, 59*time.Second)
	assert.Len(t, h.screen.frames, 1, "no redraw before the interval")

	h.tick(t, 60*time.Second)
	assert.Len(t, h.screen.frames, 2)
	assert.Equal(t, "usb0/192.168.42.129\n03/07 14:06:09", h.screen.last())
}

func TestTick_ForcedRedrawRestartsCountdown(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 0)

	h.tick(t, 30*time.Second, buttons.SW3)
	require.Len(t, h.screen.frames, 2)

	h.tick(t, 60*time.Second)
	assert.Len(t, h.screen.frames, 2, "countdown restarted at the forced redraw")

	h.tick(t, 90*time.Second)
	assert.Len(t, h.screen.frames, 3)
}

func TestTick_ShutdownDoublePress(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 0)

	assert.Equal(t, Continue, h.tick(t, 0, buttons.SW1))
	assert.Contains(t, h.screen.last(), status.ShutdownHint)
	assert.True(t, h.ctrl.State().Shutdown.Armed())

	assert.Equal(t, StopPowerAction, h.tick(t, 4*time.Second, buttons.SW1))
	assert.Equal(t, []power.Action{power.PowerOff}, h.power.Actions())
	assert.Equal(t, "Shutting down\n03/07 14:05:13", h.screen.last())
	assert.False(t, h.ctrl.State().Shutdown.Armed())
}

func TestTick_RebootConfirmAtDeadline(t *testing.T) {
	h := newHarness(t)

	h.tick(t, 0, buttons.SW2)
	assert.Contains(t, h.screen.last(), status.RebootHint)

	assert.Equal(t, StopPowerAction, h.tick(t, 5*time.Second, buttons.SW2))
	assert.Equal(t, []power.Action{power.Restart}, h.power.Actions())
	assert.Equal(t, "Rebooting\n03/07 14:05:14", h.screen.last())
}

func TestTick_HintExpiresAndForcesRedraw(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 0, buttons.SW1)
	frames := len(h.screen.frames)

	h.tick(t, 5*time.Second)
	assert.Len(t, h.screen.frames, frames, "still armed at the deadline")

	h.tick(t, 5*time.Second+100*time.Millisecond)
	require.Len(t, h.screen.frames, frames+1)
	assert.NotContains(t, h.screen.last(), status.ShutdownHint)
	assert.False(t, h.ctrl.State().Shutdown.Armed())

	assert.Equal(t, Continue, h.tick(t, 6*time.Second, buttons.SW1), "late press arms again")
	assert.Empty(t, h.power.Actions())
}

func TestTick_ConcurrentArming(t *testing.T) {
	h := newHarness(t)

	h.tick(t, 0, buttons.SW1)
	h.tick(t, time.Second, buttons.SW2)

	assert.Equal(t, "usb0/192.168.42.129\n03/07 14:05:10\n"+status.RebootHint+"\n"+status.ShutdownHint, h.screen.last())
}

func TestTick_Priority(t *testing.T) {
	tests := []struct {
		name    string
		pressed []buttons.Button
		want    Stop
		check   func(t *testing.T, h *harness)
	}{
		{
			name:    "exit combo beats everything",
			pressed: []buttons.Button{buttons.SW1, buttons.SW2, buttons.SW3},
			want:    StopExitCombo,
			check: func(t *testing.T, h *harness) {
				assert.False(t, h.ctrl.State().Shutdown.Armed())
				assert.False(t, h.ctrl.State().Reboot.Armed())
			},
		},
		{
			name:    "shutdown beats switches",
			pressed: []buttons.Button{buttons.SW1, buttons.SW3},
			want:    Continue,
			check: func(t *testing.T, h *harness) {
				assert.True(t, h.ctrl.State().Shutdown.Armed())
				r, _ := h.store.DefaultRoute()
				assert.Equal(t, "usb0", r.LinkName)
			},
		},
		{
			name:    "reboot beats switches",
			pressed: []buttons.Button{buttons.SW2, buttons.SW4},
			want:    Continue,
			check: func(t *testing.T, h *harness) {
				assert.True(t, h.ctrl.State().Reboot.Armed())
			},
		},
		{
			name:    "usb1 beats usb0",
			pressed: []buttons.Button{buttons.SW3, buttons.SW4},
			want:    Continue,
			check: func(t *testing.T, h *harness) {
				r, _ := h.store.DefaultRoute()
				assert.Equal(t, "usb1", r.LinkName)
			},
		},
		{
			name:    "SW5 does nothing",
			pressed: []buttons.Button{buttons.SW5},
			want:    Continue,
			check: func(t *testing.T, h *harness) {
				r, _ := h.store.DefaultRoute()
				assert.Equal(t, "usb0", r.LinkName)
				assert.False(t, h.ctrl.State().Shutdown.Armed())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Equal(t, tt.want, h.tick(t, 0, tt.pressed...))
			tt.check(t, h)
		})
	}
}

func TestTick_SwitchUplinks(t *testing.T) {
	h := newHarness(t)

	h.tick(t, 0, buttons.SW3)
	assert.Equal(t, "usb1/192.168.42.129\n03/07 14:05:09", h.screen.last())

	h.tick(t, time.Second, buttons.SW4)
	assert.Equal(t, "usb0/192.168.42.129\n03/07 14:05:10", h.screen.last())
}

func TestTick_NoDefaultRouteIsNotAnError(t *testing.T) {
	h := newHarness(t)
	h.store.ClearDefault()

	h.tick(t, 0, buttons.SW3)

	assert.Equal(t, status.NoDefaultRouteText+"\n03/07 14:05:09", h.screen.last())
}

func TestTick_UnknownUplinkIsNotAnError(t *testing.T) {
	h := newHarness(t)
	opts := DefaultOptions()
	opts.Uplinks = Uplinks{Button3: "usb7", Button4: "usb0"}
	h.ctrl = New(h.latch, h.screen, route.NewSwitcher(h.store), h.power, opts)

	h.tick(t, 0, buttons.SW3)

	r, _ := h.store.DefaultRoute()
	assert.Equal(t, "usb0", r.LinkName)
	assert.Equal(t, "usb0/192.168.42.129\n03/07 14:05:09", h.screen.last())
}

func TestTick_CommitFailureReturnsError(t *testing.T) {
	h := newHarness(t)
	h.store.CommitErr = errors.New("operation not permitted")

	h.latch.Press(buttons.SW3)
	stop, err := h.ctrl.Tick(context.Background(), t0)

	assert.Equal(t, Continue, stop)
	require.Error(t, err)
	assert.Equal(t, ErrTypeRouteCommit, Classify(err).Type)
	r, _ := h.store.DefaultRoute()
	assert.Equal(t, "usb0", r.LinkName)
}

func TestTick_BranchErrorStillExpiresHints(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 0, buttons.SW1)
	require.True(t, h.ctrl.State().Shutdown.Armed())

	h.store.CommitErr = errors.New("operation not permitted")
	h.latch.Press(buttons.SW3)
	_, err := h.ctrl.Tick(context.Background(), t0.Add(6*time.Second))

	require.Error(t, err)
	assert.False(t, h.ctrl.State().Shutdown.Armed(), "expired on the failing tick")
}

func TestTick_HeldButtonDoesNotConfirm(t *testing.T) {
	tests := []struct {
		name    string
		button  buttons.Button
		tracker func(*Context) bool
	}{
		{name: "shutdown", button: buttons.SW1, tracker: func(c *Context) bool { return c.Shutdown.Armed() }},
		{name: "reboot", button: buttons.SW2, tracker: func(c *Context) bool { return c.Reboot.Armed() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			src := &levelSource{level: buttons.NewState(tt.button)}
			ctrl := New(src, h.screen, route.NewSwitcher(h.store), h.power, DefaultOptions())

			for i := 0; i < 10; i++ {
				stop, err := ctrl.Tick(context.Background(), t0.Add(time.Duration(i)*100*time.Millisecond))
				require.NoError(t, err)
				assert.Equal(t, Continue, stop)
			}
			assert.True(t, tt.tracker(ctrl.State()))
			assert.Empty(t, h.power.Actions())

			// Release, then press again inside the window.
			src.level = buttons.State{}
			_, err := ctrl.Tick(context.Background(), t0.Add(time.Second))
			require.NoError(t, err)
			src.level = buttons.NewState(tt.button)
			stop, err := ctrl.Tick(context.Background(), t0.Add(1100*time.Millisecond))
			require.NoError(t, err)
			assert.Equal(t, StopPowerAction, stop)
			assert.Len(t, h.power.Actions(), 1)
		})
	}
}

func TestTick_PowerFailureKeepsRunning(t *testing.T) {
	h := newHarness(t)
	h.power.Err = errors.New("must be superuser")

	h.tick(t, 0, buttons.SW2)
	h.latch.Press(buttons.SW2)
	stop, err := h.ctrl.Tick(context.Background(), t0.Add(time.Second))

	assert.Equal(t, Continue, stop)
	require.Error(t, err)
	assert.Equal(t, "Reboot failed: must be superuser", Classify(err).Display())
	assert.False(t, h.ctrl.State().Reboot.Armed())
}

func TestTick_RouteQueryFailureShownInDashboard(t *testing.T) {
	h := newHarness(t)
	h.store.QueryErr = errors.New("netlink socket closed")

	h.tick(t, 0)

	assert.Contains(t, h.screen.last(), "Exception: ")
	assert.Contains(t, h.screen.last(), "netlink socket closed")
}

func TestTick_InputError(t *testing.T) {
	h := newHarness(t)
	ctrl := New(failingSource{}, h.screen, route.NewSwitcher(h.store), h.power, DefaultOptions())

	_, err := ctrl.Tick(context.Background(), t0)

	assert.Equal(t, ErrTypeInput, Classify(err).Type)
}

// scriptedRun drives Run with a fake clock: each Sleep advances time and
// feeds the next scripted press.
func scriptedRun(t *testing.T, h *harness, ctx context.Context, script map[int][]buttons.Button) (Stop, error) {
	t.Helper()
	now := t0
	sleeps := 0
	opts := DefaultOptions()
	opts.Now = func() time.Time { return now }
	opts.Sleep = func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		now = now.Add(d)
		sleeps++
		if pressed, ok := script[sleeps]; ok {
			h.latch.Press(pressed...)
		}
		return nil
	}
	h.ctrl = New(h.latch, h.screen, route.NewSwitcher(h.store), h.power, opts)
	return h.ctrl.Run(ctx)
}

func TestRun_ExitCombo(t *testing.T) {
	h := newHarness(t)

	stop, err := scriptedRun(t, h, context.Background(), map[int][]buttons.Button{
		3: {buttons.SW1, buttons.SW2},
	})

	require.NoError(t, err)
	assert.Equal(t, StopExitCombo, stop)
	require.NotEmpty(t, h.screen.frames)
	assert.Equal(t, status.ReadyText, h.screen.frames[0])
	assert.Equal(t, "usb0/192.168.42.129\n03/07 14:05:14", h.screen.frames[1])
	assert.Equal(t, status.ExitingText, h.screen.last())
	assert.Equal(t, 2, h.screen.clears, "cleared at startup and on exit")
	assert.Empty(t, h.power.Actions())
}

func TestRun_Interrupted(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stop, err := scriptedRun(t, h, ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, StopInterrupted, stop)
	assert.Equal(t, status.ExitingText, h.screen.last())
}

func TestRun_PowerActionStops(t *testing.T) {
	h := newHarness(t)

	stop, err := scriptedRun(t, h, context.Background(), map[int][]buttons.Button{
		2: {buttons.SW1},
		5: {buttons.SW1},
	})

	require.NoError(t, err)
	assert.Equal(t, StopPowerAction, stop)
	assert.Equal(t, []power.Action{power.PowerOff}, h.power.Actions())
	assert.Contains(t, h.screen.last(), "Shutting down")
}

func TestRun_ErrorRenderedInPlaceOfDashboard(t *testing.T) {
	h := newHarness(t)
	h.store.CommitErr = errors.New("operation not permitted")

	stop, err := scriptedRun(t, h, context.Background(), map[int][]buttons.Button{
		2: {buttons.SW3},
		3: {buttons.SW1, buttons.SW2},
	})

	require.NoError(t, err)
	assert.Equal(t, StopExitCombo, stop)
	assert.Contains(t, h.screen.frames, "Switch to usb1 failed: operation not permitted")
}

func TestRun_StartupRenderFailure(t *testing.T) {
	h := newHarness(t)
	h.screen.err = errors.New("epd-fuse not mounted")

	_, err := scriptedRun(t, h, context.Background(), nil)

	assert.Error(t, err)
}
