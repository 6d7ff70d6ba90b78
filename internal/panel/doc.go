// Package panel drives the dashboard: it polls the buttons, dispatches at
// most one action per tick, and redraws the status view when something
// changed or the periodic refresh is due.
//
// # Tick order
//
// Every tick reads the buttons once and evaluates, first match wins:
//
//  1. SW1 + SW2: show "Exiting ...", clear the panel and stop
//  2. SW1: arm or confirm power-off
//  3. SW2: arm or confirm restart
//  4. SW3: move the default route to the first uplink (usb1)
//  5. SW4: move the default route to the second uplink (usb0)
//
// Both confirmation trackers are then evaluated so expired hints disappear,
// and the dashboard is redrawn if a branch fired, a hint expired, or the
// refresh interval elapsed.
//
// # Errors
//
// Errors raised inside a tick never end the loop. Run classifies them with
// Classify and renders PanelError.Display in place of the dashboard; the
// next periodic refresh or button press restores the normal view. Only the
// exit combo, an interrupt, or a successful power action stop the loop.
//
// # State
//
// All mutable dashboard state lives in a Context owned by the Controller:
// the two confirmation trackers, the refresh scheduler and the font size.
package panel
