package ui

import "github.com/charmbracelet/bubbles/key"

// simulatorKeyMap defines key bindings for the simulator
type simulatorKeyMap struct {
	SW1  key.Binding
	SW2  key.Binding
	SW3  key.Binding
	SW4  key.Binding
	SW5  key.Binding
	Exit key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k simulatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SW1, k.SW2, k.SW3, k.SW4, k.Exit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k simulatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SW1, k.SW2, k.SW3, k.SW4, k.SW5},
		{k.Exit, k.Quit},
	}
}

func newSimulatorKeyMap(uplink3, uplink4 string) simulatorKeyMap {
	return simulatorKeyMap{
		SW1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "shutdown"),
		),
		SW2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "reboot"),
		),
		SW3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", uplink3),
		),
		SW4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", uplink4),
		),
		SW5: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "unused"),
		),
		Exit: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "SW1+SW2"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "interrupt"),
		),
	}
}
