package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
	"github.com/muurk/tetherpanel/internal/ui"
)

var simulateNoRoute bool

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the panel in the terminal with keyboard buttons",
	Long: `Run the same button/dashboard loop as 'run', without hardware.

Keys 1-5 press SW1-SW5 for one tick, x presses SW1+SW2 together and q
(or ctrl+c) interrupts. Routes live in an in-memory table with usb0, usb1
and wlan0; power actions are only recorded.`,
	Example: `  tetherpanel simulate

  # Start without a default route
  tetherpanel simulate --no-default-route`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateNoRoute, "no-default-route", false, "Start with an empty default route")
	rootCmd.AddCommand(simulateCmd)
}

// simulatedStore returns the in-memory table the simulator starts with.
func simulatedStore(withDefault bool) (*route.MemoryStore, error) {
	store := route.NewMemoryStore(
		route.Link{Name: "lo", Index: 1},
		route.Link{Name: "wlan0", Index: 2},
		route.Link{Name: "usb0", Index: 3},
		route.Link{Name: "usb1", Index: 4},
	)
	if withDefault {
		if err := store.SetDefault("usb0", "192.168.42.129"); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := simulatedStore(!simulateNoRoute)
	if err != nil {
		return err
	}

	mirrors, stopMirror, err := startMirror(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer stopMirror()

	exec := &power.DryRun{}
	reason, err := ui.RunSimulator(cmd.Context(), ui.SimulatorConfig{
		Store:    store,
		Executor: exec,
		Options:  panelOptions(cfg),
		Mirrors:  mirrors,
	})
	if err != nil {
		return err
	}

	details := []ui.Detail{{Key: "Stopped", Value: reason.String()}}
	for _, a := range exec.Actions() {
		details = append(details, ui.Detail{Key: "Would run", Value: fmt.Sprintf("%v (%s)", powerConfig(cfg).Command(a), a)})
	}
	if r, err := store.DefaultRoute(); err == nil && r != nil {
		details = append(details, ui.Detail{Key: "Default route", Value: r.String()})
	}
	ui.NewPrinter(nil).PrintSuccess("Simulation finished", details)
	return nil
}
