package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// StyleOptions configures the presentation applied to both report sheets
type StyleOptions struct {
	DatasetSheet    string
	ReportSheet     string
	ColumnWidth     float64
	HeaderFill      string
	HeaderFontColor string
	HeaderFontSize  float64
}

// DefaultStyleOptions returns the standard report look
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		DatasetSheet:    "Dataset",
		ReportSheet:     "Report",
		ColumnWidth:     20,
		HeaderFill:      "006A71",
		HeaderFontColor: "EFEFEF",
		HeaderFontSize:  12,
	}
}

// sheetStyles holds the style ids registered in the workbook
type sheetStyles struct {
	header    int
	centered  int
	leftAlign int
}

// ApplyStyle sets column widths, the header look and body alignment on both
// sheets. Dataset cells are centered, report cells are left-aligned. Cell
// values are never modified.
func (w *Workbook) ApplyStyle(opts StyleOptions) error {
	if w.closed {
		return writeError(w.path, "workbook is closed", nil)
	}

	styles, err := w.registerStyles(opts)
	if err != nil {
		return writeError(w.path, "failed to register styles", err)
	}

	if err := w.styleSheet(opts.DatasetSheet, opts.ColumnWidth, styles.header, styles.centered); err != nil {
		return writeError(w.path, fmt.Sprintf("failed to style sheet %q", opts.DatasetSheet), err).
			WithContext("sheet", opts.DatasetSheet)
	}
	if err := w.styleSheet(opts.ReportSheet, opts.ColumnWidth, styles.header, styles.leftAlign); err != nil {
		return writeError(w.path, fmt.Sprintf("failed to style sheet %q", opts.ReportSheet), err).
			WithContext("sheet", opts.ReportSheet)
	}
	return nil
}

func (w *Workbook) registerStyles(opts StyleOptions) (sheetStyles, error) {
	var styles sheetStyles
	var err error

	styles.header, err = w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: opts.HeaderFontColor,
			Size:  opts.HeaderFontSize,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{opts.HeaderFill},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.centered, err = w.file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.leftAlign, err = w.file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	return styles, err
}

// styleSheet styles the used range of sheet: row 1 gets the header style,
// the remaining rows the body style
func (w *Workbook) styleSheet(sheet string, width float64, headerStyle, bodyStyle int) error {
	cols, rows, err := w.usedRange(sheet)
	if err != nil {
		return err
	}
	if cols == 0 {
		return nil
	}

	lastCol, err := columnName(cols)
	if err != nil {
		return err
	}
	if err := w.file.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return err
	}

	headerEnd, err := cellName(cols, 1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, "A1", headerEnd, headerStyle); err != nil {
		return err
	}

	if rows < 2 {
		return nil
	}
	bodyEnd, err := cellName(cols, rows)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, "A2", bodyEnd, bodyStyle)
}

// usedRange returns the number of columns and rows holding values on sheet
func (w *Workbook) usedRange(sheet string) (cols, rows int, err error) {
	if idx, err := w.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		if err == nil {
			err = fmt.Errorf("sheet %q does not exist", sheet)
		}
		return 0, 0, err
	}

	values, err := w.file.GetRows(sheet)
	if err != nil {
		return 0, 0, err
	}
	for _, row := range values {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols, len(values), nil
}
