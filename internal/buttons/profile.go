package buttons

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NoPin marks a logical button that is not wired on a board.
const NoPin = -1

// DefaultHatDir is where the device tree exposes HAT EEPROM data.
const DefaultHatDir = "/proc/device-tree/hat"

const (
	hatProduct = "PaPiRus ePaper HAT"
	hatVendor  = "Pi Supply"
)

// Profile maps the logical buttons to BCM pin numbers.
type Profile struct {
	Name string
	Pins [Count]int
}

// Known hardware profiles.
var (
	BareBoard = Profile{Name: "bare", Pins: [Count]int{21, 16, 20, 19, 26}}
	HAT       = Profile{Name: "hat", Pins: [Count]int{16, 26, 20, 21, NoPin}}
)

// String returns a short description such as "hat (SW1=16 SW2=26 ...)".
func (p Profile) String() string {
	parts := make([]string, 0, Count)
	for i, pin := range p.Pins {
		if pin == NoPin {
			parts = append(parts, fmt.Sprintf("%s=-", Button(i)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", Button(i), pin))
	}
	return fmt.Sprintf("%s (%s)", p.Name, strings.Join(parts, " "))
}

// DetectProfile probes hatDir once and returns the HAT profile when a PaPiRus
// HAT is present, the bare board profile otherwise.
func DetectProfile(hatDir string) Profile {
	product, err := os.ReadFile(filepath.Join(hatDir, "product"))
	if err != nil {
		return BareBoard
	}
	vendor, err := os.ReadFile(filepath.Join(hatDir, "vendor"))
	if err != nil {
		return BareBoard
	}
	if strings.HasPrefix(string(product), hatProduct) && strings.HasPrefix(string(vendor), hatVendor) {
		return HAT
	}
	return BareBoard
}

// ResolveProfile returns the profile named by name. "auto" or "" probes hatDir.
func ResolveProfile(name, hatDir string) (Profile, error) {
	switch name {
	case "", "auto":
		return DetectProfile(hatDir), nil
	case BareBoard.Name:
		return BareBoard, nil
	case HAT.Name:
		return HAT, nil
	default:
		return Profile{}, fmt.Errorf("unknown hardware profile %q (expected auto, bare or hat)", name)
	}
}
