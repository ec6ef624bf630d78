package charts

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salesreport/internal/dataprocessing"
)

func TestDefaultDescriptors(t *testing.T) {
	descriptors := DefaultDescriptors(dataprocessing.DefaultColumns())

	require.Len(t, descriptors, 5)
	titles := make([]string, len(descriptors))
	for i, d := range descriptors {
		titles[i] = d.Title
	}
	assert.Equal(t, []string{
		"Ventas por Género",
		"Ventas por Supermercado",
		"Ventas por Ciudad",
		"Ventas por Tipo de Clientes",
		"Ventas por Línea de Productos",
	}, titles)

	pie := descriptors[4]
	assert.Equal(t, KindPie, pie.Kind)
	assert.Equal(t, "Product line", pie.Dimension)
	assert.Equal(t, []int{4, 5}, pie.Cells)

	require.NoError(t, validateDescriptors(Grid{Rows: 2, Cols: 3}, descriptors))
}

func TestValidateDescriptors(t *testing.T) {
	grid := Grid{Rows: 2, Cols: 3}

	tests := []struct {
		name        string
		grid        Grid
		descriptors []Descriptor
		wantErr     string
	}{
		{
			name:        "cell outside grid",
			grid:        grid,
			descriptors: []Descriptor{{Dimension: "City", Cells: []int{6}}},
			wantErr:     "outside",
		},
		{
			name:        "non rectangular span",
			grid:        grid,
			descriptors: []Descriptor{{Dimension: "City", Cells: []int{2, 3}}},
			wantErr:     "rectangle",
		},
		{
			name:        "no cells",
			grid:        grid,
			descriptors: []Descriptor{{Dimension: "City"}},
			wantErr:     "no cells",
		},
		{
			name:        "no dimension",
			grid:        grid,
			descriptors: []Descriptor{{Title: "Empty", Cells: []int{0}}},
			wantErr:     "no dimension",
		},
		{
			name:    "empty grid",
			grid:    Grid{},
			wantErr: "at least one row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDescriptors(tt.grid, tt.descriptors)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCellRect(t *testing.T) {
	opts := Options{Width: 1000, Height: 600, Grid: Grid{Rows: 2, Cols: 3}}

	tests := []struct {
		cells []int
		want  image.Rectangle
	}{
		{[]int{0}, image.Rect(0, 0, 333, 300)},
		{[]int{2}, image.Rect(666, 0, 1000, 300)},
		{[]int{4, 5}, image.Rect(333, 300, 1000, 600)},
		{[]int{0, 1, 3, 4}, image.Rect(0, 0, 666, 600)},
	}
	for _, tt := range tests {
		rect, err := cellRect(opts, tt.cells)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rect, "cells %v", tt.cells)
	}
}

func TestPercentLabel(t *testing.T) {
	assert.Equal(t, "12.3%", percentLabel(0.1234))
	assert.Equal(t, "100.0%", percentLabel(1))
	assert.Equal(t, "0.0%", percentLabel(0))
}

func TestPieChart_Labels(t *testing.T) {
	groups := []dataprocessing.Group{
		{Key: "Food and beverages", Sum: 25},
		{Key: "Sports and travel", Sum: 75},
	}

	pie := pieChart("Ventas por Línea de Productos", groups, 666, 300)

	require.Len(t, pie.Values, 2)
	assert.Equal(t, "25.0%", pie.Values[0].Label)
	assert.Equal(t, "75.0%", pie.Values[1].Label)
	assert.Equal(t, paletteColor(1), pie.Values[1].Style.FillColor)
	assert.Len(t, pie.Elements, 1)
}

func TestBarChart_Bars(t *testing.T) {
	groups := []dataprocessing.Group{
		{Key: "Female", Sum: 21},
		{Key: "Male", Sum: 9.45},
	}

	bar := barChart("Ventas por Género", groups, "Total", 333, 300)

	require.Len(t, bar.Bars, 2)
	assert.Equal(t, "Female", bar.Bars[0].Label)
	assert.Equal(t, 9.45, bar.Bars[1].Value)
	assert.Equal(t, paletteColor(0), bar.Bars[0].Style.FillColor)
	assert.NotEqual(t, bar.Bars[0].Style.FillColor, bar.Bars[1].Style.FillColor)
}

func TestPaletteColor_Wraps(t *testing.T) {
	assert.Equal(t, paletteColor(0), paletteColor(len(tableau)))
	assert.Equal(t, drawing.Color{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, paletteColor(0))
}
