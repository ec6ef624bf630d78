package charts

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// tableau is the ten-color categorical palette panels cycle through
var tableau = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// paletteColor returns the i-th palette color, wrapping around
func paletteColor(i int) drawing.Color {
	return tableau[i%len(tableau)]
}
