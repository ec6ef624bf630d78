package charts

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salesreport/internal/dataprocessing"
)

// Options configures a composite figure
type Options struct {
	Width       int
	Height      int
	Grid        Grid
	Measure     string
	Descriptors []Descriptor
}

// DefaultOptions returns the standard 1000x600 report figure: a 2x3 grid of
// Total per dimension
func DefaultOptions(cols dataprocessing.Columns) Options {
	return Options{
		Width:       1000,
		Height:      600,
		Grid:        Grid{Rows: 2, Cols: 3},
		Measure:     dataprocessing.ColumnTotal,
		Descriptors: DefaultDescriptors(cols),
	}
}

// Compose renders every descriptor into its grid cells and encodes the whole
// figure as PNG
func Compose(table *dataprocessing.Table, opts Options) (*Figure, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("figure size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if err := validateDescriptors(opts.Grid, opts.Descriptors); err != nil {
		return nil, err
	}

	canvas := imaging.New(opts.Width, opts.Height, drawing.ColorWhite)
	for _, d := range opts.Descriptors {
		groups, err := dataprocessing.GroupSum(table, d.Dimension, opts.Measure)
		if err != nil {
			return nil, err
		}

		rect, err := cellRect(opts, d.Cells)
		if err != nil {
			return nil, err
		}

		panel, err := renderPanel(d, groups, opts.Measure, rect.Dx(), rect.Dy())
		if err != nil {
			return nil, err
		}
		canvas = imaging.Paste(canvas, panel, rect.Min)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}
	return &Figure{data: buf.Bytes(), img: canvas}, nil
}

// cellRect returns the pixel rectangle covered by cells. Edges are placed
// proportionally so the panels tile the whole figure.
func cellRect(opts Options, cells []int) (image.Rectangle, error) {
	row0, col0, row1, col1, err := opts.Grid.span(cells)
	if err != nil {
		return image.Rectangle{}, err
	}
	x := func(col int) int { return col * opts.Width / opts.Grid.Cols }
	y := func(row int) int { return row * opts.Height / opts.Grid.Rows }
	return image.Rect(x(col0), y(row0), x(col1+1), y(row1+1)), nil
}
