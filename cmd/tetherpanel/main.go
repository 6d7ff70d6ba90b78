// Tetherpanel drives a PaPiRus e-paper panel and its buttons as a small
// control surface for a tethering appliance.
//
// The panel shows the current default route and the time. The buttons
// switch the default route between two USB uplinks and, with a confirming
// second press, power off or restart the machine.
//
// Usage:
//
//	tetherpanel run [rotation] [flags]
//
// See 'tetherpanel --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/tetherpanel/internal/config"
	"github.com/muurk/tetherpanel/internal/logging"
	"github.com/muurk/tetherpanel/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tetherpanel",
	Short: "E-paper control panel for a tethering appliance",
	Long: `Drives a PaPiRus e-paper display and its five buttons.

  SW1 (twice)   power off
  SW2 (twice)   restart
  SW3           route through the first uplink (usb1)
  SW4           route through the second uplink (usb0)
  SW1 + SW2     exit

The display shows the default route, the time, and any pending
"press again" hints.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevel); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("Config file (default $%s or %s)", config.PathEnvVar, config.DefaultPath))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", fmt.Sprintf("Log level (debug, info, warn, error); default $%s, silent when unset", logging.LogLevelEnvVar))

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tetherpanel %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// loadConfig reads the configuration selected by --config.
func loadConfig() (*config.Config, error) {
	path := config.GetConfigPath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("Configuration loaded")
	return cfg, nil
}
