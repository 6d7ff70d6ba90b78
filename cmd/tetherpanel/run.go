package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/config"
	"github.com/muurk/tetherpanel/internal/display"
	"github.com/muurk/tetherpanel/internal/logging"
	"github.com/muurk/tetherpanel/internal/mirror"
	"github.com/muurk/tetherpanel/internal/panel"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
	"github.com/muurk/tetherpanel/internal/version"
)

// Run command flags
var (
	rotationFlag   int
	dryRun         bool
	displayBackend string
)

var runCmd = &cobra.Command{
	Use:   "run [rotation]",
	Short: "Run the panel on the hardware",
	Long: `Run the button/dashboard loop on a Raspberry Pi with a PaPiRus panel.

The optional rotation (0, 90, 180 or 270) overrides the configured one.
Button pins are taken from the detected hardware profile: the PaPiRus HAT
when /proc/device-tree/hat identifies it, the bare board otherwise.

Requires read/write access to /dev/gpiomem (or root) and a running
epd-fuse mounted at the configured display path.`,
	Example: `  # Run with the configured rotation
  tetherpanel run

  # Panel mounted upside down
  tetherpanel run 180

  # Try it out without halting the Pi, drawing to the terminal
  tetherpanel run --dry-run --display console --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPanel,
}

func init() {
	runCmd.Flags().IntVar(&rotationFlag, "rotation", 0, "Display rotation in degrees (0, 90, 180, 270)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log power actions instead of running them")
	runCmd.Flags().StringVar(&displayBackend, "display", "", "Display backend (epd, console); overrides the config")

	rootCmd.AddCommand(runCmd)
}

func runPanel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("rotation") {
		cfg.Rotation = rotationFlag
	}
	if len(args) == 1 {
		deg, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rotation %q: %w", args[0], err)
		}
		cfg.Rotation = deg
	}
	if displayBackend != "" {
		cfg.Display.Backend = displayBackend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	access := buttons.CheckAccess(buttons.DefaultGPIOMem)
	if !access.Available {
		return fmt.Errorf("cannot use GPIO: %s", access.Message)
	}

	profile, err := buttons.ResolveProfile(cfg.Hardware.Profile, cfg.Hardware.HatDir)
	if err != nil {
		return err
	}
	src, err := buttons.OpenGPIO(profile)
	if err != nil {
		return err
	}
	defer src.Close()

	renderer, err := openRenderer(cfg)
	if err != nil {
		return err
	}

	mirrors, stopMirror, err := startMirror(ctx, cfg)
	if err != nil {
		return err
	}
	defer stopMirror()

	var exec power.Executor
	if dryRun {
		exec = &power.DryRun{}
	} else {
		exec = power.NewCommandExecutor(powerConfig(cfg), logging.GetLogger())
	}

	logging.Info("Starting tetherpanel",
		zap.String("version", version.Full()),
		zap.Stringer("profile", profile),
		zap.String("display", cfg.Display.Backend),
		zap.Int("rotation", cfg.Rotation),
		zap.Bool("dry_run", dryRun),
	)

	ctrl := panel.New(src, display.NewTee(renderer, mirrors...), route.NewSwitcher(route.NewNetlinkStore()), exec, panelOptions(cfg))
	reason, err := ctrl.Run(ctx)
	if err != nil {
		return err
	}

	logging.Info("Stopped", zap.Stringer("reason", reason))
	if d, ok := exec.(*power.DryRun); ok {
		for _, a := range d.Actions() {
			fmt.Printf("dry run: would have run %v (%s)\n", powerConfig(cfg).Command(a), a)
		}
	}
	return nil
}

func openRenderer(cfg *config.Config) (display.Renderer, error) {
	switch cfg.Display.Backend {
	case config.BackendConsole:
		return display.NewConsole(os.Stdout, 0, 0), nil
	default:
		rot, err := display.ParseRotation(cfg.Rotation)
		if err != nil {
			return nil, err
		}
		return display.OpenEPD(cfg.Display.Path, rot)
	}
}

// startMirror starts the websocket mirror when configured. The returned
// func withdraws the mDNS advertisement.
func startMirror(ctx context.Context, cfg *config.Config) ([]display.Renderer, func(), error) {
	noop := func() {}
	if cfg.Mirror.Listen == "" {
		return nil, noop, nil
	}

	hub := mirror.NewHub()
	srv, err := mirror.Listen(cfg.Mirror.Listen, hub)
	if err != nil {
		return nil, noop, err
	}
	go func() {
		if err := srv.Serve(ctx); err != nil {
			logging.Error("Status mirror failed", zap.Error(err))
		}
	}()

	if !cfg.Mirror.Advertise {
		return []display.Renderer{hub}, noop, nil
	}

	ad, err := mirror.Advertise(cfg.Mirror.Instance, srv.Port(), []string{"path=/ws", "version=" + version.Version})
	if err != nil {
		logging.Warn("mDNS advertisement failed", zap.Error(err))
		return []display.Renderer{hub}, noop, nil
	}
	return []display.Renderer{hub}, ad.Shutdown, nil
}

func panelOptions(cfg *config.Config) panel.Options {
	opts := panel.DefaultOptions()
	opts.ConfirmWindow = cfg.ConfirmWindow
	opts.RefreshInterval = cfg.RefreshInterval
	opts.PollInterval = cfg.PollInterval
	opts.ReadyDelay = cfg.ReadyDelay
	opts.ExitDelay = cfg.ExitDelay
	opts.FontSize = cfg.Display.FontSize
	opts.Uplinks = panel.Uplinks{
		Button3: cfg.Uplinks.Button3,
		Button4: cfg.Uplinks.Button4,
	}
	return opts
}

func powerConfig(cfg *config.Config) power.Config {
	pc := power.DefaultConfig()
	pc.PowerOff = cfg.Commands.PowerOff
	pc.Restart = cfg.Commands.Restart
	return pc
}
