package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salesreport/internal/dataprocessing"
	apperrors "salesreport/internal/errors"
)

// defaultSheet is the sheet every new excelize workbook starts with
const defaultSheet = "Sheet1"

// WriteOptions configures the sheet names of a new report workbook
type WriteOptions struct {
	DatasetSheet string
	ReportSheet  string
}

// DefaultWriteOptions returns the sheet names of the standard report
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		DatasetSheet: "Dataset",
		ReportSheet:  "Report",
	}
}

// WriteWorkbook creates a new workbook at path with the dataset on the first
// sheet and the summary table on the second, saves it and closes it. An
// existing file is replaced.
func WriteWorkbook(path string, dataset *dataprocessing.Table, summary *dataprocessing.Summary, opts WriteOptions) (err error) {
	if opts.DatasetSheet == "" || opts.ReportSheet == "" {
		defaults := DefaultWriteOptions()
		if opts.DatasetSheet == "" {
			opts.DatasetSheet = defaults.DatasetSheet
		}
		if opts.ReportSheet == "" {
			opts.ReportSheet = defaults.ReportSheet
		}
	}

	slog.Debug("Writing workbook",
		slog.String("path", path),
		slog.Int("rows", dataset.Len()),
		slog.Int("metrics", summary.Len()))

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.NewWriteError("failed to close workbook", cerr).WithContext("path", path)
		}
	}()

	if err := f.SetSheetName(defaultSheet, opts.DatasetSheet); err != nil {
		return writeError(path, "failed to name dataset sheet", err)
	}
	if err := writeDataset(f, opts.DatasetSheet, dataset); err != nil {
		return writeError(path, "failed to write dataset sheet", err)
	}

	if _, err := f.NewSheet(opts.ReportSheet); err != nil {
		return writeError(path, "failed to add report sheet", err)
	}
	if err := writeSummary(f, opts.ReportSheet, summary); err != nil {
		return writeError(path, "failed to write report sheet", err)
	}

	if err := f.SaveAs(path); err != nil {
		return writeError(path, "failed to save workbook", err)
	}
	return nil
}

// writeDataset writes the header row and every table row. Empty cells are skipped.
func writeDataset(f *excelize.File, sheet string, table *dataprocessing.Table) error {
	if err := writeRow(f, sheet, 1, stringsToRow(table.Headers())); err != nil {
		return err
	}
	for i := 0; i < table.Len(); i++ {
		if err := writeRow(f, sheet, i+2, table.Row(i)); err != nil {
			return err
		}
	}
	return nil
}

// writeSummary writes the metric/value header and one row per metric
func writeSummary(f *excelize.File, sheet string, summary *dataprocessing.Summary) error {
	header := []interface{}{dataprocessing.MetricHeader, dataprocessing.ValueHeader}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, m := range summary.Metrics {
		if err := writeRow(f, sheet, i+2, []interface{}{m.Name, m.Value}); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for j, v := range values {
		if v == nil {
			continue
		}
		cell, err := cellName(j+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
	}
	return nil
}

func stringsToRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func writeError(path, message string, cause error) *apperrors.AppError {
	return apperrors.NewWriteError(message, cause).WithContext("path", path)
}

// Workbook is an open report workbook. It must be released with Close.
type Workbook struct {
	file   *excelize.File
	path   string
	closed bool
}

// OpenWorkbook reopens a workbook previously written by WriteWorkbook
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, writeError(path, "failed to open workbook", err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Path returns the file the workbook is saved to
func (w *Workbook) Path() string {
	return w.path
}

// Sheets returns the sheet names in workbook order
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// EmbedImage anchors a PNG image with its top-left corner at cell on sheet
func (w *Workbook) EmbedImage(sheet, cell string, png []byte) error {
	if w.closed {
		return writeError(w.path, "workbook is closed", nil)
	}
	if len(png) == 0 {
		return writeError(w.path, "image is empty", nil)
	}
	if idx, err := w.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		return writeError(w.path, fmt.Sprintf("sheet %q does not exist", sheet), err).WithContext("sheet", sheet)
	}

	pic := &excelize.Picture{
		Extension: ".png",
		File:      png,
		Format: &excelize.GraphicOptions{
			ScaleX:      1,
			ScaleY:      1,
			Positioning: "oneCell",
		},
	}
	if err := w.file.AddPictureFromBytes(sheet, cell, pic); err != nil {
		return writeError(w.path, fmt.Sprintf("failed to anchor image at %s!%s", sheet, cell), err)
	}
	return nil
}

// Save writes the workbook back to its path, replacing the previous content
func (w *Workbook) Save() error {
	if w.closed {
		return writeError(w.path, "workbook is closed", nil)
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return writeError(w.path, "failed to save workbook", err)
	}
	return nil
}

// Close releases the workbook. Calling Close more than once is a no-op.
func (w *Workbook) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.file.Close(); err != nil {
		return writeError(w.path, "failed to close workbook", err)
	}
	return nil
}
