// Package ui renders terminal output for the tetherpanel CLI.
//
// Two kinds of component live here:
//
//   - Printer and the Render* helpers: styled header, success, warning and
//     error boxes for one-shot commands such as "route show" and "probe".
//   - SimulatorModel: a Bubble Tea program that stands in for the hardware.
//     Number keys press SW1..SW5 for one tick, x presses SW1+SW2, and the
//     frames the controller renders appear in an e-paper styled box.
//
// RunSimulator wires a panel.Controller to a buttons.Latch and a
// ProgramRenderer, so the simulator exercises exactly the same loop as the
// hardware, only with a keyboard and a terminal.
//
// # Logging Integration
//
// Logging is controlled via the TETHERPANEL_LOG_LEVEL environment variable.
// When unset or empty, zap logging is silent so log lines do not tear the
// simulator's screen.
package ui
