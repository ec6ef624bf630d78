package charts

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salesreport/internal/dataprocessing"
)

const (
	titleFontSize  = 10.0
	labelFontSize  = 8.0
	legendFontSize = 8.0
	legendSwatch   = 8
	legendRowGap   = 4
	axisNameOffset = 14

	// go-chart only reserves the tick height below a bar chart's plot area,
	// so the category labels live in the bottom padding
	xLabelBand = 32
)

// renderPanel draws one descriptor into a width x height image
func renderPanel(d Descriptor, groups []dataprocessing.Group, measureName string, width, height int) (image.Image, error) {
	if !drawable(groups) {
		return imaging.New(width, height, drawing.ColorWhite), nil
	}

	var buf bytes.Buffer
	var err error
	switch d.Kind {
	case KindPie:
		err = pieChart(d.Title, groups, width, height).Render(chart.PNG, &buf)
	default:
		err = barChart(d.Title, groups, measureName, width, height).Render(chart.PNG, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart %q: %w", d.Kind, d.Title, err)
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s chart %q: %w", d.Kind, d.Title, err)
	}
	return img, nil
}

// drawable reports whether groups hold anything a chart can show
func drawable(groups []dataprocessing.Group) bool {
	for _, g := range groups {
		if g.Sum != 0 && !math.IsNaN(g.Sum) && !math.IsInf(g.Sum, 0) {
			return true
		}
	}
	return false
}

// barChart builds a bar chart with one palette color per category and the
// measure name along the y axis
func barChart(title string, groups []dataprocessing.Group, measureName string, width, height int) chart.BarChart {
	bars := make([]chart.Value, len(groups))
	lo, hi := 0.0, 0.0
	for i, g := range groups {
		color := paletteColor(i)
		bars[i] = chart.Value{
			Label: g.Key,
			Value: g.Sum,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
		lo, hi = math.Min(lo, g.Sum), math.Max(hi, g.Sum)
	}

	return chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      width,
		Height:     height,
		Background: chart.Style{
			Padding: chart.Box{Top: 36, Left: axisNameOffset + 10, Right: 10, Bottom: xLabelBand},
		},
		BarWidth:   max(8, width/(2*len(groups)+2)),
		BarSpacing: max(4, width/(4*len(groups)+4)),
		XAxis:      chart.Style{FontSize: labelFontSize},
		YAxis: chart.YAxis{
			AxisType: chart.YAxisSecondary,
			Style:    chart.Style{FontSize: labelFontSize},
			Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.05},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars:     bars,
		Elements: []chart.Renderable{axisName(measureName)},
	}
}

// pieChart builds a pie whose slices are labelled with their percentage of the
// whole; category names go in a legend to the upper right of the pie
func pieChart(title string, groups []dataprocessing.Group, width, height int) chart.PieChart {
	shares := dataprocessing.Share(groups)
	values := make([]chart.Value, len(groups))
	entries := make([]legendEntry, len(groups))
	for i, g := range groups {
		color := paletteColor(i)
		values[i] = chart.Value{
			Label: percentLabel(shares[i]),
			Value: g.Sum,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: drawing.ColorWhite,
				FontSize:    labelFontSize,
				FontColor:   drawing.ColorBlack,
			},
		}
		entries[i] = legendEntry{Label: g.Key, Color: color}
	}

	return chart.PieChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      width,
		Height:     height,
		Background: chart.Style{
			Padding: chart.Box{Top: 56, Left: 10, Right: width * 2 / 5, Bottom: 10},
		},
		Values:   values,
		Elements: []chart.Renderable{legend(entries)},
	}
}

// percentLabel formats a share as a percentage with one decimal
func percentLabel(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// axisName draws name rotated along the left edge of the panel, outside the
// tick labels
func axisName(name string) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if name == "" {
			return
		}
		r.SetFont(defaults.GetFont())
		r.SetFontColor(drawing.ColorBlack)
		r.SetFontSize(labelFontSize)

		textBox := r.MeasureText(name)
		x := axisNameOffset
		y := cb.Top + cb.Height()/2 + textBox.Width()/2

		r.SetTextRotation(math.Pi * 1.5)
		r.Text(name, x, y)
		r.ClearTextRotation()
	}
}

type legendEntry struct {
	Label string
	Color drawing.Color
}

// legend draws a color swatch and label per entry, top-aligned with the plot
// area and just right of it
func legend(entries []legendEntry) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		r.SetFont(defaults.GetFont())
		r.SetFontSize(legendFontSize)

		x := cb.Right + 10
		y := cb.Top
		for _, e := range entries {
			textBox := r.MeasureText(e.Label)
			rowHeight := max(legendSwatch, textBox.Height())

			r.SetFillColor(e.Color)
			r.SetStrokeColor(e.Color)
			r.SetStrokeWidth(1)
			r.MoveTo(x, y)
			r.LineTo(x+legendSwatch, y)
			r.LineTo(x+legendSwatch, y+legendSwatch)
			r.LineTo(x, y+legendSwatch)
			r.LineTo(x, y)
			r.Close()
			r.FillStroke()

			r.SetFontColor(drawing.ColorBlack)
			r.Text(e.Label, x+legendSwatch+4, y+legendSwatch)

			y += rowHeight + legendRowGap
		}
	}
}
