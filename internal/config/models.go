package config

import "time"

// Config is the whole configuration file.
type Config struct {
	Version  int `yaml:"version"`
	Rotation int `yaml:"rotation"` // Panel rotation in degrees: 0, 90, 180 or 270

	ConfirmWindow   time.Duration `yaml:"confirm_window"`   // Time allowed for the second press
	RefreshInterval time.Duration `yaml:"refresh_interval"` // Periodic redraw cadence
	PollInterval    time.Duration `yaml:"poll_interval"`    // Button sampling period
	ReadyDelay      time.Duration `yaml:"ready_delay"`      // How long the startup screen is shown
	ExitDelay       time.Duration `yaml:"exit_delay"`       // How long "Exiting ..." is shown

	Uplinks  Uplinks  `yaml:"uplinks"`
	Commands Commands `yaml:"commands"`
	Display  Display  `yaml:"display"`
	Hardware Hardware `yaml:"hardware"`
	Mirror   Mirror   `yaml:"mirror"`
}

// Uplinks maps the route buttons to interface names.
type Uplinks struct {
	Button3 string `yaml:"button3"`
	Button4 string `yaml:"button4"`
}

// Commands holds the argv for each power action.
type Commands struct {
	PowerOff []string `yaml:"power_off"`
	Restart  []string `yaml:"restart"`
}

// Display selects and configures the renderer.
type Display struct {
	Backend  string `yaml:"backend"`             // "epd" or "console"
	Path     string `yaml:"path"`                // epd-fuse mount point
	FontSize int    `yaml:"font_size,omitempty"` // 0 picks from panel height
}

// Hardware selects the button pin profile.
type Hardware struct {
	Profile string `yaml:"profile"` // "auto", "bare" or "hat"
	HatDir  string `yaml:"hat_dir"` // Device-tree HAT descriptor directory
}

// Mirror configures the websocket status mirror.
type Mirror struct {
	Listen    string `yaml:"listen,omitempty"` // Empty disables the mirror
	Advertise bool   `yaml:"advertise"`        // Register the mirror over mDNS
	Instance  string `yaml:"instance"`         // mDNS instance name
}

// Display backends.
const (
	BackendEPD     = "epd"
	BackendConsole = "console"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:         1,
		Rotation:        0,
		ConfirmWindow:   5 * time.Second,
		RefreshInterval: 60 * time.Second,
		PollInterval:    100 * time.Millisecond,
		ReadyDelay:      5 * time.Second,
		ExitDelay:       200 * time.Millisecond,
		Uplinks: Uplinks{
			Button3: "usb1",
			Button4: "usb0",
		},
		Commands: Commands{
			PowerOff: []string{"halt"},
			Restart:  []string{"reboot"},
		},
		Display: Display{
			Backend: BackendEPD,
			Path:    "/dev/epd",
		},
		Hardware: Hardware{
			Profile: "auto",
			HatDir:  "/proc/device-tree/hat",
		},
		Mirror: Mirror{
			Instance: "tetherpanel",
		},
	}
}
