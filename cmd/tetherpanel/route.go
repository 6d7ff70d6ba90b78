package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/tetherpanel/internal/logging"
	"github.com/muurk/tetherpanel/internal/panel"
	"github.com/muurk/tetherpanel/internal/route"
	"github.com/muurk/tetherpanel/internal/ui"
)

var assumeYes bool

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Inspect or move the default route",
}

var routeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current default route",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRoute(route.NewSwitcher(route.NewNetlinkStore()), ui.NewPrinter(nil))
	},
}

var routeSwitchCmd = &cobra.Command{
	Use:   "switch <interface>",
	Short: "Move the default route to another interface",
	Long: `Move the default route to another interface, keeping its gateway.

This is what SW3 and SW4 do on the panel. The change is applied in one
netlink request: either the route moves or the table is left as it was.
The gateway is not re-acquired for the new interface.`,
	Example: `  tetherpanel route switch usb1
  tetherpanel route switch usb0 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := ui.NewPrinter(nil)
		if !assumeYes && !ui.Confirm(os.Stdin, os.Stdout, "Move default route to "+args[0],
			[]string{"Connections using the current uplink may drop, including this SSH session."}) {
			return nil
		}
		return switchRoute(route.NewSwitcher(route.NewNetlinkStore()), args[0], p)
	},
}

func init() {
	routeSwitchCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	routeCmd.AddCommand(routeShowCmd)
	routeCmd.AddCommand(routeSwitchCmd)
	rootCmd.AddCommand(routeCmd)
}

func showRoute(sw *route.Switcher, p *ui.Printer) error {
	r, err := sw.Current()
	if err != nil {
		p.PrintError("Cannot read routing table", err, []string{"Check that netlink is available (Linux only)"})
		return err
	}
	if r == nil {
		p.PrintWarning("No default route", nil)
		return nil
	}
	p.PrintSuccess("Default route", routeDetails(r))
	return nil
}

func switchRoute(sw *route.Switcher, iface string, p *ui.Printer) error {
	outcome, err := sw.SwitchTo(iface)
	logging.LogRouteSwitch(iface, outcome.String(), err)
	if err != nil {
		pe := panel.Classify(err)
		p.PrintError(pe.Type.String(), err, []string{
			"Changing routes needs CAP_NET_ADMIN; run as root",
			fmt.Sprintf("Check that %s is up: ip link show %s", iface, iface),
		})
		return err
	}

	if info := panel.OutcomeError(outcome, iface); info != nil {
		p.PrintWarning(info.Display(), nil)
		return nil
	}

	r, err := sw.Current()
	if err != nil {
		return err
	}
	title := "Default route moved"
	if outcome == route.AlreadySelected {
		title = "Default route already uses " + iface
	}
	p.PrintSuccess(title, routeDetails(r))
	return nil
}

func routeDetails(r *route.Route) []ui.Detail {
	if r == nil {
		return nil
	}
	gw := "none"
	if r.HasGateway() {
		gw = r.Gateway.String()
	}
	return []ui.Detail{
		{Key: "Interface", Value: r.LinkName},
		{Key: "Link index", Value: strconv.Itoa(r.LinkIndex)},
		{Key: "Gateway", Value: gw},
	}
}
