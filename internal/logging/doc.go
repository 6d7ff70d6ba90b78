// Package logging provides structured logging for the tether panel.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the panel. It provides both general logging functions
// and specialized functions for the panel's own events.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (button reads, route lookups)
//   - Info: Normal operations (redraws, confirmations, route switches)
//   - Warn: Non-fatal issues (failed switches, render errors)
//   - Error: Fatal issues (startup failures)
//
// # Specialized Logging
//
//	logging.LogButton("SW3", "switch usb1")
//	logging.LogConfirmation("shutdown", "armed", deadline)
//	logging.LogRouteSwitch("usb1", "switched", nil)
//	logging.LogRefresh(now, true)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("info"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is given, TETHERPANEL_LOG_LEVEL is consulted; with neither
// set the logger is a no-op.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
