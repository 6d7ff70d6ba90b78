package display

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	monoOnce sync.Once
	monoFont *opentype.Font
	monoErr  error

	facesMu sync.Mutex
	faces   = make(map[int]font.Face)
)

// Rotation is the panel orientation in degrees clockwise.
type Rotation int

// Supported rotations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation validates a rotation given in degrees.
func ParseRotation(deg int) (Rotation, error) {
	switch Rotation(deg) {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return Rotation(deg), nil
	default:
		return 0, fmt.Errorf("invalid rotation %d (expected 0, 90, 180 or 270)", deg)
	}
}

// Swapped reports whether the rotation exchanges width and height.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

// faceFor returns a monospace bold face at size pixels. It falls back to the
// fixed 7x13 face if the embedded TrueType font cannot be loaded.
func faceFor(size int) font.Face {
	facesMu.Lock()
	defer facesMu.Unlock()

	if f, ok := faces[size]; ok {
		return f
	}

	monoOnce.Do(func() {
		monoFont, monoErr = opentype.Parse(gomonobold.TTF)
	})

	var face font.Face = basicfont.Face7x13
	if monoErr == nil {
		f, err := opentype.NewFace(monoFont, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			face = f
		}
	}
	faces[size] = face
	return face
}

// Rasterize draws lines onto a width x height 1-bit canvas. Lit bits are ink.
// Line n has its top edge at n*fontSize; lines past the bottom are dropped.
func Rasterize(lines []string, width, height, fontSize int) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, width, height))
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	face := faceFor(fontSize)
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(image1bit.On),
		Face: face,
	}

	for i, line := range lines {
		top := i * fontSize
		if top >= height {
			break
		}
		d.Dot = fixed.Point26_6{X: 0, Y: fixed.I(top) + ascent}
		d.DrawString(line)
	}
	return img
}

// Pack converts a canvas drawn in orientation rot into the panel's native
// width x height bitmap: rows top to bottom, MSB first, each row padded to a
// whole byte. Background bits are 1 and ink bits are 0.
func Pack(canvas *image1bit.VerticalLSB, width, height int, rot Rotation) []byte {
	stride := (width + 7) / 8
	buf := make([]byte, stride*height)
	for i := range buf {
		buf[i] = 0xFF
	}

	b := canvas.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cx, cy := canvasPoint(x, y, width, height, rot)
			if cx < b.Min.X || cx >= b.Max.X || cy < b.Min.Y || cy >= b.Max.Y {
				continue
			}
			if canvas.BitAt(cx, cy) == image1bit.On {
				buf[y*stride+x/8] &^= 0x80 >> uint(x%8)
			}
		}
	}
	return buf
}

// canvasPoint maps a native panel pixel to the rotated canvas.
func canvasPoint(x, y, width, height int, rot Rotation) (int, int) {
	switch rot {
	case Rotate90:
		return y, width - 1 - x
	case Rotate180:
		return width - 1 - x, height - 1 - y
	case Rotate270:
		return height - 1 - y, x
	default:
		return x, y
	}
}
