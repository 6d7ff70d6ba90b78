package display

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEPD(t *testing.T, panel string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "LE"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "panel"), []byte(panel), 0o644))
	return dir
}

func TestParsePanel(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		width   int
		height  int
		wantErr bool
	}{
		{name: "2.0 inch", desc: "EPD 2.0 200x96 COG 2\n", width: 200, height: 96},
		{name: "2.7 inch", desc: "EPD 2.7 264x176 COG 2 FILM 231", width: 264, height: 176},
		{name: "garbage", desc: "no geometry here", wantErr: true},
		{name: "zero size", desc: "EPD 0x96", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := ParsePanel(tt.desc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
		})
	}
}

func TestOpenEPD_MissingPanel(t *testing.T) {
	_, err := OpenEPD(t.TempDir(), Rotate0)
	assert.Error(t, err)
}

func TestEPD_RenderWritesFrameAndPartialUpdate(t *testing.T) {
	dir := fakeEPD(t, "EPD 2.0 200x96 COG 2")
	epd, err := OpenEPD(dir, Rotate0)
	require.NoError(t, err)

	require.NoError(t, epd.Render("usb0/192.168.42.129\n10/19 12:00:00", 18))

	frame, err := os.ReadFile(filepath.Join(dir, "LE", "display_inverse"))
	require.NoError(t, err)
	assert.Len(t, frame, 25*96)
	assert.NotEqual(t, bytes.Repeat([]byte{0xFF}, len(frame)), frame, "frame should contain ink")

	cmd, err := os.ReadFile(filepath.Join(dir, "command"))
	require.NoError(t, err)
	assert.Equal(t, "P", string(cmd))
}

func TestEPD_Clear(t *testing.T) {
	dir := fakeEPD(t, "EPD 2.0 200x96 COG 2")
	epd, err := OpenEPD(dir, Rotate0)
	require.NoError(t, err)

	require.NoError(t, epd.Clear())
	cmd, _ := os.ReadFile(filepath.Join(dir, "command"))
	assert.Equal(t, "C", string(cmd))
}

func TestEPD_SizeFollowsRotation(t *testing.T) {
	dir := fakeEPD(t, "EPD 2.0 200x96 COG 2")

	epd, err := OpenEPD(dir, Rotate90)
	require.NoError(t, err)
	w, h := epd.Size()
	assert.Equal(t, 96, w)
	assert.Equal(t, 200, h)

	epd, err = OpenEPD(dir, Rotate180)
	require.NoError(t, err)
	w, h = epd.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 96, h)
}

func TestEPD_RenderErrorWhenFramebufferMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "panel"), []byte("EPD 2.0 200x96"), 0o644))
	epd, err := OpenEPD(dir, Rotate0)
	require.NoError(t, err)

	err = epd.Render("hello", 18)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "write framebuffer", renderErr.Op)
}
