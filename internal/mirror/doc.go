// Package mirror republishes what the e-paper panel shows so it can be
// watched from another machine.
//
// A Hub is a display.Renderer: wrapped in a display.Tee next to the real
// panel, it receives every frame and pushes it as JSON to websocket clients
// connected to /ws:
//
//	{"text":"usb0/192.168.42.129\n03/07 14:05:09","font_size":18,"at":"2026-03-07T14:05:09Z"}
//
// GET / returns the latest frame as plain text. Rendering never blocks on
// the network: each client has a small send buffer and is dropped when it
// falls behind.
//
// Advertise registers the mirror over mDNS as _tetherpanel._tcp, and
// Scanner finds mirrors on the local network.
package mirror
