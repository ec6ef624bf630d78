package exporter

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salesreport/internal/dataprocessing"
	apperrors "salesreport/internal/errors"
)

func testDataset(t *testing.T) (*dataprocessing.Table, *dataprocessing.Summary) {
	t.Helper()
	table, err := dataprocessing.NewTable(
		dataprocessing.NewTextColumn("Invoice ID", []string{"1", "2"}),
		dataprocessing.NewTextColumn("City", []string{"Yangon", "Mandalay"}),
		dataprocessing.NewNumericColumn("Unit price", []float64{10, math.NaN()}),
		dataprocessing.NewNumericColumn("Total", []float64{21, 5.25}),
	)
	require.NoError(t, err)

	summary := &dataprocessing.Summary{Metrics: []dataprocessing.Metric{
		{Name: dataprocessing.MetricTotalSales, Value: 26.25},
		{Name: dataprocessing.MetricProductsSold, Value: 3},
		{Name: dataprocessing.MetricCustomers, Value: 2},
		{Name: dataprocessing.MetricMeanSale, Value: 13.12},
		{Name: dataprocessing.MetricMedianSale, Value: 13.12},
		{Name: dataprocessing.MetricSalesStdDev, Value: 11.14},
		{Name: dataprocessing.MetricLargestSale, Value: 21},
		{Name: dataprocessing.MetricSmallestSale, Value: 5.25},
		{Name: dataprocessing.MetricTaxCollected, Value: 1.25},
	}}
	return table, summary
}

func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	table, summary := testDataset(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, table, summary, DefaultWriteOptions()))
	return path
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWriteWorkbook(t *testing.T) {
	path := writeTestWorkbook(t)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Dataset", "Report"}, f.GetSheetList())

	rows, err := f.GetRows("Dataset")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Invoice ID", "City", "Unit price", "Total"}, rows[0])
	assert.Equal(t, []string{"1", "Yangon", "10", "21"}, rows[1])
	assert.Equal(t, []string{"2", "Mandalay", "", "5.25"}, rows[2])

	report, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, report, 10)
	assert.Equal(t, []string{"Métrica", "Valor"}, report[0])
	assert.Equal(t, []string{"Total de Ventas", "26.25"}, report[1])
	assert.Equal(t, []string{"Total Impuestos (5%)", "1.25"}, report[9])
}

func TestWriteWorkbook_ReplacesExistingFile(t *testing.T) {
	table, summary := testDataset(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0644))

	require.NoError(t, WriteWorkbook(path, table, summary, WriteOptions{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Dataset", "Report"}, f.GetSheetList())
}

func TestWriteWorkbook_Error(t *testing.T) {
	table, summary := testDataset(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := WriteWorkbook(filepath.Join(blocker, "report.xlsx"), table, summary, DefaultWriteOptions())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeWrite))
}

func TestOpenWorkbook_Missing(t *testing.T) {
	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeWrite))
}

func TestWorkbook_EmbedImageAndSave(t *testing.T) {
	path := writeTestWorkbook(t)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.EmbedImage("Report", "D1", testPNG(t)))
	require.NoError(t, wb.Save())
	require.NoError(t, wb.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	pics, err := f.GetPictures("Report", "D1")
	require.NoError(t, err)
	require.Len(t, pics, 1)
	assert.Equal(t, ".png", pics[0].Extension)

	value, err := f.GetCellValue("Report", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total de Ventas", value)
}

func TestWorkbook_EmbedImageErrors(t *testing.T) {
	wb, err := OpenWorkbook(writeTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	tests := []struct {
		name  string
		sheet string
		data  []byte
	}{
		{name: "empty image", sheet: "Report", data: nil},
		{name: "unknown sheet", sheet: "Charts", data: testPNG(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wb.EmbedImage(tt.sheet, "D1", tt.data)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeWrite))
		})
	}
}

func TestWorkbook_CloseIsIdempotent(t *testing.T) {
	wb, err := OpenWorkbook(writeTestWorkbook(t))
	require.NoError(t, err)

	require.NoError(t, wb.Close())
	require.NoError(t, wb.Close())

	err = wb.Save()
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeWrite))
}
