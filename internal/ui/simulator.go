package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/display"
	"github.com/muurk/tetherpanel/internal/panel"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
)

// FrameMsg carries a frame the controller rendered.
type FrameMsg struct {
	Lines    []string
	FontSize int
	At       time.Time
}

// StoppedMsg is sent when the controller loop ends.
type StoppedMsg struct {
	Stop panel.Stop
	Err  error
}

// ProgramRenderer is a display.Renderer that forwards wrapped frames to a
// running Bubble Tea program.
type ProgramRenderer struct {
	send   func(tea.Msg)
	width  int
	height int
}

// NewProgramRenderer creates a renderer emulating a width x height panel.
func NewProgramRenderer(send func(tea.Msg), width, height int) *ProgramRenderer {
	return &ProgramRenderer{send: send, width: width, height: height}
}

// Render implements display.Renderer.
func (r *ProgramRenderer) Render(text string, fontSize int) error {
	r.send(FrameMsg{Lines: display.Wrap(text, r.width, fontSize), FontSize: fontSize, At: time.Now()})
	return nil
}

// Clear implements display.Renderer.
func (r *ProgramRenderer) Clear() error {
	r.send(FrameMsg{At: time.Now()})
	return nil
}

// Size implements display.Sizer.
func (r *ProgramRenderer) Size() (int, int) {
	return r.width, r.height
}

// SimulatorModel shows the emulated panel and turns keys into button presses.
type SimulatorModel struct {
	latch   *buttons.Latch
	cancel  context.CancelFunc
	keys    simulatorKeyMap
	help    help.Model
	columns int

	frame    []string
	pressed  buttons.State
	stopped  bool
	stop     panel.Stop
	err      error
	width    int
	frameCnt int
}

// NewSimulatorModel creates the model. columns is the panel width in
// characters at the current font size; cancel interrupts the controller.
func NewSimulatorModel(latch *buttons.Latch, cancel context.CancelFunc, uplinks panel.Uplinks, columns int) SimulatorModel {
	return SimulatorModel{
		latch:   latch,
		cancel:  cancel,
		keys:    newSimulatorKeyMap(uplinks.Button3, uplinks.Button4),
		help:    help.New(),
		columns: columns,
	}
}

// Init implements tea.Model
func (m SimulatorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m SimulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case FrameMsg:
		m.frame = msg.Lines
		m.frameCnt++
		m.pressed = buttons.State{}

	case StoppedMsg:
		m.stopped = true
		m.stop = msg.Stop
		m.err = msg.Err
		return m, tea.Quit

	case tea.KeyMsg:
		if m.stopped {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
		case key.Matches(msg, m.keys.Exit):
			m.press(buttons.SW1, buttons.SW2)
		case key.Matches(msg, m.keys.SW1):
			m.press(buttons.SW1)
		case key.Matches(msg, m.keys.SW2):
			m.press(buttons.SW2)
		case key.Matches(msg, m.keys.SW3):
			m.press(buttons.SW3)
		case key.Matches(msg, m.keys.SW4):
			m.press(buttons.SW4)
		case key.Matches(msg, m.keys.SW5):
			m.press(buttons.SW5)
		}
	}
	return m, nil
}

func (m *SimulatorModel) press(bs ...buttons.Button) {
	m.latch.Press(bs...)
	for _, b := range bs {
		m.pressed[b] = true
	}
}

// Pressed returns the buttons pressed since the last frame.
func (m SimulatorModel) Pressed() buttons.State {
	return m.pressed
}

// Frame returns the lines currently on the emulated panel.
func (m SimulatorModel) Frame() []string {
	return m.frame
}

// View implements tea.Model
func (m SimulatorModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderTitleStyle.Render("TETHERPANEL SIMULATOR"))
	b.WriteString("\n\n")

	body := strings.Join(m.frame, "\n")
	b.WriteString(PanelStyle.Width(m.columns + 2).Render(body))
	b.WriteString("\n")

	var row []string
	for i := 0; i < buttons.Count; i++ {
		style := ButtonStyle
		if m.pressed[i] {
			style = ButtonPressedStyle
		}
		row = append(row, style.Render(buttons.Button(i).String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	b.WriteString("\n")

	if m.stopped {
		b.WriteString(StatusLineStyle.Render(fmt.Sprintf("stopped: %s", m.stop)))
		b.WriteString("\n")
	} else {
		b.WriteString(StatusLineStyle.Render(fmt.Sprintf("frames: %d", m.frameCnt)))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// SimulatorConfig configures RunSimulator.
type SimulatorConfig struct {
	Store    route.Store
	Executor power.Executor
	Options  panel.Options
	// Mirrors also receive every frame (e.g. a mirror.Hub).
	Mirrors []display.Renderer
	// Width and Height of the emulated panel. Default: 200x96
	Width  int
	Height int
}

// RunSimulator runs the controller against keyboard buttons and an
// on-screen panel until it stops.
func RunSimulator(ctx context.Context, cfg SimulatorConfig) (panel.Stop, error) {
	if cfg.Width <= 0 {
		cfg.Width = display.ConsolePanelWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = display.ConsolePanelHeight
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	latch := buttons.NewLatch()
	defer latch.Close()

	var program *tea.Program
	renderer := NewProgramRenderer(func(msg tea.Msg) { program.Send(msg) }, cfg.Width, cfg.Height)
	ctrl := panel.New(latch, display.NewTee(renderer, cfg.Mirrors...), route.NewSwitcher(cfg.Store), cfg.Executor, cfg.Options)

	columns := display.CharsPerLine(cfg.Width, ctrl.State().FontSize)
	model := NewSimulatorModel(latch, cancel, cfg.Options.Uplinks, columns)
	program = tea.NewProgram(model)

	done := make(chan StoppedMsg, 1)
	go func() {
		stop, err := ctrl.Run(ctx)
		result := StoppedMsg{Stop: stop, Err: err}
		done <- result
		program.Send(result)
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return panel.StopInterrupted, fmt.Errorf("simulator UI failed: %w", err)
	}

	cancel()
	result := <-done
	return result.Stop, result.Err
}
