package window

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

var background = colornames.Black

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:      colornames.Lightgray,
	core.ColorRed:          colornames.Firebrick,
	core.ColorGreen:        colornames.Green,
	core.ColorYellow:       colornames.Gold,
	core.ColorBlue:         colornames.Royalblue,
	core.ColorMagenta:      colornames.Magenta,
	core.ColorCyan:         colornames.Darkcyan,
	core.ColorWhite:        colornames.White,
	core.ColorBrightRed:    colornames.Red,
	core.ColorBrightGreen:  colornames.Lime,
	core.ColorBrightYellow: colornames.Yellow,
	core.ColorBrightBlue:   colornames.Deepskyblue,
	core.ColorGray:         colornames.Gray,
}

// rgba returns the window color for a cell color.
func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}
