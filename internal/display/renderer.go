package display

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/tetherpanel/internal/logging"
)

// Font sizes picked from the panel height when none is configured.
const (
	DefaultFontSize = 24
	SmallFontSize   = 18

	// smallPanelHeight is the tallest panel that gets SmallFontSize.
	smallPanelHeight = 96
)

// Renderer draws text on a display.
type Renderer interface {
	// Render wraps and draws text at fontSize, replacing what was shown.
	Render(text string, fontSize int) error
	// Clear blanks the display.
	Clear() error
}

// Sizer is implemented by renderers that know their drawable size.
type Sizer interface {
	Size() (width, height int)
}

// FontSizeFor returns the default font size for a panel of the given height.
func FontSizeFor(height int) int {
	if height > 0 && height <= smallPanelHeight {
		return SmallFontSize
	}
	return DefaultFontSize
}

// RenderError wraps a failure to update the display.
type RenderError struct {
	// Op is the step that failed (e.g. "write framebuffer")
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("display %s failed: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Tee renders to a primary renderer and mirrors every frame to others.
// Only the primary's errors are returned; mirror failures are logged.
type Tee struct {
	primary Renderer
	mirrors []Renderer
}

// NewTee creates a fan-out renderer.
func NewTee(primary Renderer, mirrors ...Renderer) *Tee {
	return &Tee{primary: primary, mirrors: mirrors}
}

// Render implements Renderer.
func (t *Tee) Render(text string, fontSize int) error {
	err := t.primary.Render(text, fontSize)
	for _, m := range t.mirrors {
		if merr := m.Render(text, fontSize); merr != nil {
			logging.Warn("Mirror render failed", zap.Error(merr))
		}
	}
	return err
}

// Clear implements Renderer.
func (t *Tee) Clear() error {
	err := t.primary.Clear()
	for _, m := range t.mirrors {
		if merr := m.Clear(); merr != nil {
			logging.Warn("Mirror clear failed", zap.Error(merr))
		}
	}
	return err
}

// Size reports the primary renderer's size, or zero when it has none.
func (t *Tee) Size() (int, int) {
	if s, ok := t.primary.(Sizer); ok {
		return s.Size()
	}
	return 0, 0
}
