package charts

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/internal/dataprocessing"
	apperrors "salesreport/internal/errors"
)

const salesCSV = `Invoice ID,Branch,City,Customer type,Gender,Product line,Unit price,Quantity,Tax 5%
750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415
226-31-3081,C,Naypyitaw,Normal,Female,Electronic accessories,15.28,5,3.82
631-41-3108,A,Yangon,Normal,Male,Home and lifestyle,46.33,7,16.2155
123-19-1176,A,Yangon,Member,Male,Health and beauty,58.22,8,23.288
373-73-7910,A,Yangon,Normal,Male,Sports and travel,86.31,7,30.2085
699-14-3026,C,Naypyitaw,Normal,Male,Electronic accessories,85.39,7,29.8865
355-53-5943,A,Yangon,Member,Female,Electronic accessories,68.84,6,20.652
315-22-5665,C,Naypyitaw,Normal,Female,Home and lifestyle,73.56,10,36.78
665-32-9167,A,Yangon,Member,Female,Health and beauty,36.26,2,3.626
692-92-5582,B,Mandalay,Member,Female,Food and beverages,54.84,3,8.226
`

func salesTable(t *testing.T) *dataprocessing.Table {
	t.Helper()
	table, err := dataprocessing.ReadTable(strings.NewReader(salesCSV), dataprocessing.LoadOptions{})
	require.NoError(t, err)
	require.NoError(t, dataprocessing.Enrich(table, dataprocessing.DefaultColumns()))
	return table
}

func TestCompose(t *testing.T) {
	fig, err := Compose(salesTable(t), DefaultOptions(dataprocessing.DefaultColumns()))
	require.NoError(t, err)
	defer fig.Close()

	decoded, err := png.Decode(bytes.NewReader(fig.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1000, 600), decoded.Bounds())
	assert.Equal(t, image.Rect(0, 0, 1000, 600), fig.Bounds())

	for name, rect := range map[string]image.Rectangle{
		"gender":       image.Rect(0, 0, 333, 300),
		"branch":       image.Rect(333, 0, 666, 300),
		"city":         image.Rect(666, 0, 1000, 300),
		"customer":     image.Rect(0, 300, 333, 600),
		"product line": image.Rect(333, 300, 1000, 600),
	} {
		assert.True(t, hasInk(decoded, rect), "panel %s is blank", name)
	}
}

func TestCompose_BarPanelLayout(t *testing.T) {
	fig, err := Compose(salesTable(t), DefaultOptions(dataprocessing.DefaultColumns()))
	require.NoError(t, err)
	defer fig.Close()

	tests := []struct {
		name string
		rect image.Rectangle
		ink  bool
	}{
		{"category labels below the plot", image.Rect(30, 300-xLabelBand+10, 330, 300), true},
		{"measure name left of the ticks", image.Rect(0, 60, axisNameOffset, 260), true},
		{"no ticks right of the plot", image.Rect(326, 60, 333, 260), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ink, hasInk(fig.img, tt.rect))
		})
	}
}

func TestFigure_ReaderStartsAtZero(t *testing.T) {
	fig, err := Compose(salesTable(t), DefaultOptions(dataprocessing.DefaultColumns()))
	require.NoError(t, err)
	defer fig.Close()

	first, err := io.ReadAll(bytes.NewReader(fig.Bytes()))
	require.NoError(t, err)
	second, err := io.ReadAll(bytes.NewReader(fig.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, fig.Bytes(), first)
	assert.Equal(t, first, second)
	assert.Equal(t, "\x89PNG", string(first[:4]))
}

func TestFigure_Close(t *testing.T) {
	fig, err := Compose(salesTable(t), DefaultOptions(dataprocessing.DefaultColumns()))
	require.NoError(t, err)

	require.NoError(t, fig.Close())
	require.NoError(t, fig.Close())

	assert.True(t, fig.Closed())
	assert.Nil(t, fig.Bytes())
	assert.Nil(t, fig.img)
	assert.Equal(t, image.Rectangle{}, fig.Bounds())
}

func TestCompose_EmptyTable(t *testing.T) {
	table, err := dataprocessing.ReadTable(strings.NewReader(strings.SplitN(salesCSV, "\n", 2)[0]), dataprocessing.LoadOptions{})
	require.NoError(t, err)
	require.NoError(t, dataprocessing.Enrich(table, dataprocessing.DefaultColumns()))

	fig, err := Compose(table, DefaultOptions(dataprocessing.DefaultColumns()))
	require.NoError(t, err)
	defer fig.Close()

	assert.False(t, hasInk(fig.img, fig.Bounds()))
}

func TestCompose_Errors(t *testing.T) {
	cols := dataprocessing.DefaultColumns()

	t.Run("missing dimension column", func(t *testing.T) {
		opts := DefaultOptions(cols)
		opts.Descriptors = []Descriptor{{Dimension: "Region", Title: "Ventas por Región", Kind: KindBar, Cells: []int{0}}}

		_, err := Compose(salesTable(t), opts)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingColumn))
	})

	t.Run("invalid size", func(t *testing.T) {
		opts := DefaultOptions(cols)
		opts.Width = 0
		_, err := Compose(salesTable(t), opts)
		assert.Error(t, err)
	})

	t.Run("overlapping panels", func(t *testing.T) {
		opts := DefaultOptions(cols)
		opts.Descriptors = append(opts.Descriptors, Descriptor{Dimension: cols.City, Title: "Extra", Kind: KindBar, Cells: []int{5}})
		_, err := Compose(salesTable(t), opts)
		assert.ErrorContains(t, err, "both use cell 5")
	})
}

// hasInk reports whether any pixel inside rect is not white
func hasInk(img image.Image, rect image.Rectangle) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || b < 0xf000 {
				return true
			}
		}
	}
	return false
}
