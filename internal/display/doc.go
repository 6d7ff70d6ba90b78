// Package display puts panel text on a screen.
//
// A Renderer accepts arbitrary text and a font size. Implementations wrap the
// text greedily using an estimated characters-per-line figure derived from
// the display width and font size, draw the lines top to bottom one font size
// apart, and push a partial update.
//
// EPD drives a PaPiRus e-paper panel through the epd-fuse filesystem
// (normally mounted at /dev/epd). Console prints the same wrapped lines in a
// box on a terminal. Tee fans one render out to a primary renderer and any
// number of best-effort mirrors.
package display
