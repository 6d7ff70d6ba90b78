package buttons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHat(t *testing.T, product, vendor string) string {
	t.Helper()
	dir := t.TempDir()
	if product != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "product"), []byte(product), 0o644))
	}
	if vendor != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor"), []byte(vendor), 0o644))
	}
	return dir
}

func TestDetectProfile(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		vendor   string
		expected Profile
	}{
		{
			name:     "papirus hat",
			product:  "PaPiRus ePaper HAT\x00",
			vendor:   "Pi Supply\x00",
			expected: HAT,
		},
		{
			name:     "other hat",
			product:  "Sense HAT\x00",
			vendor:   "Raspberry Pi\x00",
			expected: BareBoard,
		},
		{
			name:     "product only",
			product:  "PaPiRus ePaper HAT",
			expected: BareBoard,
		},
		{
			name:     "no hat",
			expected: BareBoard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeHat(t, tt.product, tt.vendor)
			assert.Equal(t, tt.expected, DetectProfile(dir))
		})
	}
}

func TestDetectProfile_MissingDir(t *testing.T) {
	assert.Equal(t, BareBoard, DetectProfile(filepath.Join(t.TempDir(), "absent")))
}

func TestResolveProfile(t *testing.T) {
	hatDir := writeHat(t, "PaPiRus ePaper HAT", "Pi Supply")

	p, err := ResolveProfile("auto", hatDir)
	require.NoError(t, err)
	assert.Equal(t, HAT, p)

	p, err = ResolveProfile("bare", hatDir)
	require.NoError(t, err)
	assert.Equal(t, BareBoard, p)

	p, err = ResolveProfile("hat", "/nonexistent")
	require.NoError(t, err)
	assert.Equal(t, HAT, p)

	_, err = ResolveProfile("zero-w", hatDir)
	assert.Error(t, err)
}

func TestProfile_Pins(t *testing.T) {
	assert.Equal(t, [Count]int{21, 16, 20, 19, 26}, BareBoard.Pins)
	assert.Equal(t, NoPin, HAT.Pins[SW5])
	assert.Equal(t, "hat (SW1=16 SW2=26 SW3=20 SW4=21 SW5=-)", HAT.String())
}

func TestCheckAccess_MissingDevice(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root always has access")
	}
	check := CheckAccess(filepath.Join(t.TempDir(), "gpiomem"))

	assert.False(t, check.Available)
	assert.Contains(t, check.Message, "run as root")
}

func TestCheckAccess_WritableDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpiomem")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	check := CheckAccess(path)

	assert.True(t, check.Available)
}
