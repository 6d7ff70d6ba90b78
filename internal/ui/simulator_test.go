package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/panel"
)

func newTestModel() (SimulatorModel, *buttons.Latch, *bool) {
	latch := buttons.NewLatch()
	cancelled := false
	m := NewSimulatorModel(latch, func() { cancelled = true }, panel.Uplinks{Button3: "usb1", Button4: "usb0"}, 17)
	return m, latch, &cancelled
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSimulatorModel_KeysPressButtons(t *testing.T) {
	tests := []struct {
		key  string
		want buttons.State
	}{
		{key: "1", want: buttons.NewState(buttons.SW1)},
		{key: "2", want: buttons.NewState(buttons.SW2)},
		{key: "3", want: buttons.NewState(buttons.SW3)},
		{key: "4", want: buttons.NewState(buttons.SW4)},
		{key: "5", want: buttons.NewState(buttons.SW5)},
		{key: "x", want: buttons.NewState(buttons.SW1, buttons.SW2)},
		{key: "z", want: buttons.State{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, latch, _ := newTestModel()

			updated, _ := m.Update(keyMsg(tt.key))

			got, err := latch.Read()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, updated.(SimulatorModel).Pressed())
		})
	}
}

func TestSimulatorModel_QuitCancelsController(t *testing.T) {
	m, _, cancelled := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, *cancelled)
	assert.Nil(t, cmd, "the UI waits for the controller to stop")
}

func TestSimulatorModel_FrameClearsPressed(t *testing.T) {
	m, _, _ := newTestModel()
	updated, _ := m.Update(keyMsg("3"))

	updated, _ = updated.Update(FrameMsg{Lines: []string{"usb1/192.168.42.129", "03/07 14:05:09"}})
	sm := updated.(SimulatorModel)

	assert.Equal(t, buttons.State{}, sm.Pressed())
	assert.Equal(t, []string{"usb1/192.168.42.129", "03/07 14:05:09"}, sm.Frame())
	assert.Contains(t, sm.View(), "usb1/192.168.42.129")
}

func TestSimulatorModel_StoppedQuits(t *testing.T) {
	m, _, _ := newTestModel()

	updated, cmd := m.Update(StoppedMsg{Stop: panel.StopExitCombo})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, updated.View(), "stopped: exit_combo")
}

func TestProgramRenderer(t *testing.T) {
	var got []tea.Msg
	r := NewProgramRenderer(func(msg tea.Msg) { got = append(got, msg) }, 200, 96)

	require.NoError(t, r.Render("Ready... SW1 + SW2 to exit.", 24))
	require.NoError(t, r.Clear())

	require.Len(t, got, 2)
	frame := got[0].(FrameMsg)
	assert.Equal(t, 24, frame.FontSize)
	assert.Greater(t, len(frame.Lines), 1, "wrapped to the panel width")
	assert.Empty(t, got[1].(FrameMsg).Lines)

	w, h := r.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 96, h)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "yes\n", want: true},
		{input: "YES\n", want: true},
		{input: "no\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Move default route", []string{"SSH sessions over the old uplink will drop"})
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Move default route")
		})
	}
}

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.PrintHeader("Default Route", "tetherpanel route show")
	p.PrintSuccess("Route switched", []Detail{{Key: "Interface", Value: "usb1"}})
	p.PrintError("Switch failed", errors.New("operation not permitted"), []string{"run as root"})

	s := out.String()
	assert.Contains(t, s, "DEFAULT ROUTE")
	assert.Contains(t, s, "usb1")
	assert.Contains(t, s, "operation not permitted")
	assert.Contains(t, s, "run as root")
}
