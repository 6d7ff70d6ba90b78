package display

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultEPDPath is where epd-fuse mounts the panel.
const DefaultEPDPath = "/dev/epd"

// epd-fuse commands written to <path>/command.
const (
	epdCommandPartial = "P"
	epdCommandClear   = "C"
)

var panelSizePattern = regexp.MustCompile(`(\d+)x(\d+)`)

// EPD renders onto a PaPiRus e-paper panel through epd-fuse.
type EPD struct {
	path     string
	width    int
	height   int
	rotation Rotation
}

// OpenEPD reads the panel geometry from <path>/panel and returns a renderer
// for it.
func OpenEPD(path string, rotation Rotation) (*EPD, error) {
	if path == "" {
		path = DefaultEPDPath
	}
	data, err := os.ReadFile(filepath.Join(path, "panel"))
	if err != nil {
		return nil, fmt.Errorf("failed to read panel description (is epd-fuse running?): %w", err)
	}
	width, height, err := ParsePanel(string(data))
	if err != nil {
		return nil, err
	}
	return &EPD{
		path:     path,
		width:    width,
		height:   height,
		rotation: rotation,
	}, nil
}

// ParsePanel extracts the native geometry from a description such as
// "EPD 2.0 200x96 COG 2".
func ParsePanel(desc string) (width, height int, err error) {
	m := panelSizePattern.FindStringSubmatch(desc)
	if m == nil {
		return 0, 0, fmt.Errorf("no panel size in %q", strings.TrimSpace(desc))
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("invalid panel size %dx%d", width, height)
	}
	return width, height, nil
}

// Size returns the drawable size as seen after rotation.
func (e *EPD) Size() (int, int) {
	if e.rotation.Swapped() {
		return e.height, e.width
	}
	return e.width, e.height
}

// Render implements Renderer with a partial update.
func (e *EPD) Render(text string, fontSize int) error {
	w, h := e.Size()
	canvas := Rasterize(Wrap(text, w, fontSize), w, h, fontSize)
	frame := Pack(canvas, e.width, e.height, e.rotation)

	if err := os.WriteFile(filepath.Join(e.path, "LE", "display_inverse"), frame, 0o644); err != nil {
		return &RenderError{Op: "write framebuffer", Err: err}
	}
	return e.command(epdCommandPartial)
}

// Clear implements Renderer.
func (e *EPD) Clear() error {
	return e.command(epdCommandClear)
}

func (e *EPD) command(c string) error {
	if err := os.WriteFile(filepath.Join(e.path, "command"), []byte(c), 0o644); err != nil {
		return &RenderError{Op: "command " + c, Err: err}
	}
	return nil
}
