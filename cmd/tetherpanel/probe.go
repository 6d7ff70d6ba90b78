package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/tetherpanel/internal/buttons"
	"github.com/muurk/tetherpanel/internal/config"
	"github.com/muurk/tetherpanel/internal/display"
	"github.com/muurk/tetherpanel/internal/power"
	"github.com/muurk/tetherpanel/internal/route"
	"github.com/muurk/tetherpanel/internal/ui"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report detected hardware and prerequisites",
	Long: `Report what 'run' would use: the button profile and pins, GPIO access,
panel geometry and font size, power commands and the current default route.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p := ui.NewPrinter(nil)
		p.PrintHeader("Hardware probe", "tetherpanel probe")
		p.PrintSuccess("Detected", probe(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func probe(cfg *config.Config) []ui.Detail {
	var details []ui.Detail
	add := func(k, v string) { details = append(details, ui.Detail{Key: k, Value: v}) }

	if profile, err := buttons.ResolveProfile(cfg.Hardware.Profile, cfg.Hardware.HatDir); err != nil {
		add("Button profile", err.Error())
	} else {
		add("Button profile", profile.Name)
		add("Button pins", formatPins(profile))
	}

	access := buttons.CheckAccess(buttons.DefaultGPIOMem)
	add("GPIO access", access.Message)

	rot, err := display.ParseRotation(cfg.Rotation)
	if err != nil {
		add("Panel", err.Error())
	} else if epd, err := display.OpenEPD(cfg.Display.Path, rot); err != nil {
		add("Panel", err.Error())
	} else {
		w, h := epd.Size()
		fontSize := cfg.Display.FontSize
		if fontSize <= 0 {
			fontSize = display.FontSizeFor(h)
		}
		add("Panel", fmt.Sprintf("%dx%d (rotation %d)", w, h, cfg.Rotation))
		add("Font size", fmt.Sprintf("%d (%d chars/line)", fontSize, display.CharsPerLine(w, fontSize)))
	}

	for _, c := range power.CheckCommands(powerConfig(cfg)) {
		add("Command "+c.Action.String(), strings.Join(c.Command, " ")+": "+c.Message)
	}

	r, err := route.NewSwitcher(route.NewNetlinkStore()).Current()
	switch {
	case err != nil:
		add("Default route", err.Error())
	case r == nil:
		add("Default route", "none")
	default:
		add("Default route", r.String())
	}
	return details
}

func formatPins(p buttons.Profile) string {
	var parts []string
	for i, pin := range p.Pins {
		name := buttons.Button(i).String()
		if pin == buttons.NoPin {
			parts = append(parts, name+"=-")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", name, pin))
	}
	return strings.Join(parts, " ")
}
