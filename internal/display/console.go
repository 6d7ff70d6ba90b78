package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Emulated panel size used when rendering to a terminal.
const (
	ConsolePanelWidth  = 200
	ConsolePanelHeight = 96
)

// defaultTerminalWidth is used when the output is not a terminal.
const defaultTerminalWidth = 80

var consoleBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(0, 1)

// Console prints each frame as a bordered box, wrapped the way the panel
// would wrap it.
type Console struct {
	out    io.Writer
	width  int
	height int
}

// NewConsole creates a console renderer emulating a width x height panel.
// A nil writer means os.Stdout.
func NewConsole(out io.Writer, width, height int) *Console {
	if out == nil {
		out = os.Stdout
	}
	if width <= 0 {
		width = ConsolePanelWidth
	}
	if height <= 0 {
		height = ConsolePanelHeight
	}
	return &Console{out: out, width: width, height: height}
}

// Size implements Sizer.
func (c *Console) Size() (int, int) {
	return c.width, c.height
}

// Render implements Renderer.
func (c *Console) Render(text string, fontSize int) error {
	lines := Wrap(text, c.width, fontSize)
	box := consoleBoxStyle.
		Width(min(CharsPerLine(c.width, fontSize)+4, TerminalWidth()-2)).
		Render(strings.Join(lines, "\n"))
	if _, err := fmt.Fprintln(c.out, box); err != nil {
		return &RenderError{Op: "write console", Err: err}
	}
	return nil
}

// Clear implements Renderer.
func (c *Console) Clear() error {
	if _, err := fmt.Fprintln(c.out); err != nil {
		return &RenderError{Op: "write console", Err: err}
	}
	return nil
}

// TerminalWidth returns the width of stdout, or 80 when stdout is not a
// terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
