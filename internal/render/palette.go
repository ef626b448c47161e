package render

import (
	"fmt"
	"image/color"
)

// palette is the rotating set of mission colors. One RGBA source
// serves both targets: go-kml converts to KML's aabbggrr order, the
// HTML template gets #rrggbb via HexColor.
var palette = []color.RGBA{
	{R: 0xE6, G: 0x19, B: 0x48, A: 0xFF}, // crimson
	{R: 0x3C, G: 0xB4, B: 0x4B, A: 0xFF}, // green
	{R: 0x43, G: 0x63, B: 0xD8, A: 0xFF}, // blue
	{R: 0xF5, G: 0x82, B: 0x31, A: 0xFF}, // orange
	{R: 0x91, G: 0x1E, B: 0xB4, A: 0xFF}, // purple
	{R: 0x46, G: 0xF0, B: 0xF0, A: 0xFF}, // cyan
	{R: 0xF0, G: 0x32, B: 0xE6, A: 0xFF}, // magenta
	{R: 0xF5, G: 0xC3, B: 0x00, A: 0xFF}, // gold
}

// GroupColor returns the palette color for the group at index i,
// cycling when there are more groups than colors.
func GroupColor(i int) color.RGBA {
	if i < 0 {
		i = 0
	}
	return palette[i%len(palette)]
}

// HexColor formats c as a #rrggbb string for web consumers.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
