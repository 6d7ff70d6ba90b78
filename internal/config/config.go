package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is read when neither --config nor TETHERPANEL_CONFIG is set.
	DefaultPath = "/etc/tetherpanel/config.yaml"

	// PathEnvVar overrides DefaultPath.
	PathEnvVar = "TETHERPANEL_CONFIG"

	currentVersion = 1
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigPath returns the configuration file path: explicit if set, then
// $TETHERPANEL_CONFIG, then DefaultPath.
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(PathEnvVar); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the configuration at path. Fields missing from the file keep
// their defaults; a missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the panel cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != currentVersion {
		errs = append(errs, fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, currentVersion))
	}
	switch c.Rotation {
	case 0, 90, 180, 270:
	default:
		errs = append(errs, fmt.Errorf("rotation must be 0, 90, 180 or 270, got %d", c.Rotation))
	}

	for _, f := range []struct {
		name string
		d    time.Duration
	}{
		{"confirm_window", c.ConfirmWindow},
		{"refresh_interval", c.RefreshInterval},
		{"poll_interval", c.PollInterval},
	} {
		if f.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", f.name))
		}
	}
	if c.ReadyDelay < 0 || c.ExitDelay < 0 {
		errs = append(errs, errors.New("ready_delay and exit_delay must not be negative"))
	}
	if c.PollInterval > 0 && c.ConfirmWindow > 0 && c.PollInterval >= c.ConfirmWindow {
		errs = append(errs, fmt.Errorf("poll_interval (%s) must be shorter than confirm_window (%s)", c.PollInterval, c.ConfirmWindow))
	}

	if c.Uplinks.Button3 == "" || c.Uplinks.Button4 == "" {
		errs = append(errs, errors.New("uplinks.button3 and uplinks.button4 must name interfaces"))
	}
	if len(c.Commands.PowerOff) == 0 || len(c.Commands.Restart) == 0 {
		errs = append(errs, errors.New("commands.power_off and commands.restart must not be empty"))
	}

	switch c.Display.Backend {
	case BackendEPD, BackendConsole:
	default:
		errs = append(errs, fmt.Errorf("unknown display backend %q", c.Display.Backend))
	}
	if c.Display.FontSize < 0 {
		errs = append(errs, errors.New("display.font_size must not be negative"))
	}

	switch c.Hardware.Profile {
	case "", "auto", "bare", "hat":
	default:
		errs = append(errs, fmt.Errorf("unknown hardware profile %q", c.Hardware.Profile))
	}

	if c.Mirror.Advertise && c.Mirror.Listen == "" {
		errs = append(errs, errors.New("mirror.advertise requires mirror.listen"))
	}

	return errors.Join(errs...)
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# tetherpanel configuration
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
