// Package config loads the tetherpanel configuration file.
//
// The configuration is a single YAML file, /etc/tetherpanel/config.yaml by
// default (TETHERPANEL_CONFIG or --config override it). A missing file is
// not an error: Load returns Default(). Durations are written as Go
// duration strings ("5s", "100ms").
//
// # Example
//
//	version: 1
//	rotation: 180
//	confirm_window: 5s
//	refresh_interval: 60s
//	uplinks:
//	  button3: usb1
//	  button4: usb0
//	commands:
//	  power_off: [systemctl, poweroff]
//	  restart: [systemctl, reboot]
//	display:
//	  backend: epd
//	  path: /dev/epd
//	mirror:
//	  listen: ":8088"
//	  advertise: true
//
// Save writes atomically through a temporary file and a rename.
package config
