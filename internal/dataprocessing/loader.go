package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "salesreport/internal/errors"
)

const utf8BOM = "\ufeff"

// LoadOptions configures how a delimited file is read
type LoadOptions struct {
	Delimiter rune // defaults to ','
}

// LoadCSV reads the delimited file at path into a Table
func LoadCSV(path string, opts LoadOptions) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NewFileNotFoundError(path, err)
	}
	if info.IsDir() {
		return nil, apperrors.NewFileNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileNotFoundError(path, err)
	}
	defer file.Close()

	table, err := ReadTable(file, opts)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}
	return table, nil
}

// ReadTable reads delimited records from r into a Table.
// The first record is the header; every other record must have the same width.
func ReadTable(r io.Reader, opts LoadOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read delimited input", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("input has no header row", nil)
	}

	headers, err := parseHeaders(records[0])
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	columns := make([]*Column, len(headers))
	for j, name := range headers {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[j]
		}
		columns[j] = inferColumn(name, cells)
	}

	table, err := NewTable(columns...)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to build table", err)
	}
	return table, nil
}

// parseHeaders trims header names and rejects duplicates.
// Blank headers are named "Unnamed: <index>".
func parseHeaders(record []string) ([]string, error) {
	headers := make([]string, len(record))
	seen := make(map[string]bool, len(record))
	for i, raw := range record {
		if i == 0 {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			return nil, apperrors.NewParsingError(fmt.Sprintf("duplicate column %q", name), nil).
				WithContext("column", name)
		}
		seen[name] = true
		headers[i] = name
	}
	return headers, nil
}

// inferColumn builds a numeric column when every non-empty cell parses as a
// number, otherwise a text column
func inferColumn(name string, cells []string) *Column {
	numbers := make([]float64, len(cells))
	for i, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			numbers[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return NewTextColumn(name, cells)
		}
		numbers[i] = v
	}
	return NewNumericColumn(name, numbers)
}
