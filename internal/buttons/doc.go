// Package buttons reads the panel's five push buttons.
//
// A Source returns a State once per loop tick: five independent "pressed"
// booleans, SW1 through SW5. GPIOSource reads BCM pins through go-rpio with
// pull-ups enabled, so a pressed button reads low, and passes the levels
// through Edges so that holding a button counts as one press. Latch is a
// software source fed by keystrokes in the simulator.
//
// # Hardware profiles
//
// The pin numbers depend on the board. The bare board uses BCM 21, 16, 20, 19
// and 26 for SW1..SW5; the HAT moves them to 16, 26, 20 and 21 and has no SW5.
// DetectProfile picks the HAT profile when the device tree exposes a matching
// product and vendor under /proc/device-tree/hat.
package buttons
