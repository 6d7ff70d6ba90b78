package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
)

var t0 = time.Date(2026, 3, 7, 14, 5, 9, 0, time.Local)

// recorder is a display.Renderer that keeps every frame.
type recorder struct {
	frames []string
	clears int
	err    error
}

func (r *recorder) Render(text string, fontSize int) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, text)
	return nil
}

func (r *recorder) Clear() error {
	r.clears++
	return nil
}

func (r *recorder) Size() (int, int) {
	return 200, 96
}

func (r *recorder) last() string {
	if len(r.frames) == 0 {
		return ""
	}
	return r.frames[len(r.frames)-1]
}

// failingSource always fails to read.
type failingSource struct{}

func (failingSource) Read() (buttons.State, error) {
	return buttons.State{}, &buttons.ReadError{Button: buttons.SW3, Err: errors.New("gpiomem busy")}
}

func (failingSource) Close() error { return nil }

// levelSource reports a fixed level through buttons.Edges, like the GPIO
// source does for a button that stays down.
type levelSource struct {
	edges buttons.Edges
	level buttons.State
}

func (s *levelSource) Read() (buttons.State, error) {
	return s.edges.Next(s.level), nil
}

func (s *levelSource) Close() error { return nil }

type harness struct {
	ctrl   *Controller
	latch  *buttons.Latch
	screen *recorder
	store  *route.MemoryStore
	power  *power.DryRun
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := route.NewMemoryStore(
		route.Link{Name: "usb0", Index: 3},
		route.Link{Name: "usb1", Index: 4},
	)
	require.NoError(t, store.SetDefault("usb0", "192.168.42.129"))

	h := &harness{
		latch:  buttons.NewLatch(),
		screen: &recorder{},
		store:  store,
		power:  &power.DryRun{},
	}
	opts := DefaultOptions()
	opts.Now = func() time.Time { return t0 }
	h.ctrl = New(h.latch, h.screen, route.NewSwitcher(store), h.power, opts)
	return h
}

func (h *harness) tick(t *testing.T, at time.Duration, pressed ...buttons.Button) Stop {
	t.Helper()
	h.latch.Press(pressed...)
	stop, err := h.ctrl.Tick(context.Background(), t0.Add(at))
	require.NoError(t, err)
	return stop
}
