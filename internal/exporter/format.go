package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// cellName converts 1-based column and row numbers to an A1 reference
func cellName(col, row int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("invalid cell coordinates (%d, %d): %w", col, row, err)
	}
	return name, nil
}

// columnName converts a 1-based column number to its letters
func columnName(col int) (string, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "", fmt.Errorf("invalid column number %d: %w", col, err)
	}
	return name, nil
}
