package dataprocessing

import (
	"fmt"
	"math"
	"strconv"

	apperrors "salesreport/internal/errors"
)

// ColumnKind is the inferred primitive type of a column
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

// String returns the kind name
func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	default:
		return "text"
	}
}

// Column is one named, typed column of a Table.
// Numeric columns keep empty cells as NaN.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []float64
	Texts   []string
}

// NewNumericColumn creates a numeric column
func NewNumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: KindNumeric, Numbers: values}
}

// NewTextColumn creates a text column
func NewTextColumn(name string, values []string) *Column {
	return &Column{Name: name, Kind: KindText, Texts: values}
}

// Len returns the number of cells in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Texts)
}

// Value returns cell i as float64 or string; empty numeric cells return nil
func (c *Column) Value(i int) interface{} {
	if c.Kind == KindNumeric {
		v := c.Numbers[i]
		if math.IsNaN(v) {
			return nil
		}
		return v
	}
	return c.Texts[i]
}

// Table is an ordered, columnar, in-memory table
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns that all have the same length
func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int)}
	for i, col := range columns {
		if i == 0 {
			t.rows = col.Len()
		}
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Columns returns the columns in table order
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Headers returns the column names in table order
func (t *Table) Headers() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Numeric returns the values of a numeric column
func (t *Table) Numeric(name string) ([]float64, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, apperrors.NewMissingColumnError(name)
	}
	if col.Kind != KindNumeric {
		return nil, apperrors.NewParsingError(fmt.Sprintf("column %q is not numeric", name), nil).
			WithContext("column", name)
	}
	return col.Numbers, nil
}

// Text returns the values of a column as strings. Numeric cells are formatted
// with the shortest representation; empty numeric cells become "".
func (t *Table) Text(name string) ([]string, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, apperrors.NewMissingColumnError(name)
	}
	if col.Kind == KindText {
		return col.Texts, nil
	}
	out := make([]string, len(col.Numbers))
	for i, v := range col.Numbers {
		if !math.IsNaN(v) {
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return out, nil
}

// AddColumn appends col, or replaces an existing column of the same name in place
func (t *Table) AddColumn(col *Column) error {
	if col == nil || col.Name == "" {
		return fmt.Errorf("column must have a name")
	}
	if len(t.columns) > 0 && col.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", col.Name, col.Len(), t.rows)
	}
	if len(t.columns) == 0 {
		t.rows = col.Len()
	}
	if i, ok := t.index[col.Name]; ok {
		t.columns[i] = col
		return nil
	}
	t.index[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Row returns row i as cell values in column order
func (t *Table) Row(i int) []interface{} {
	row := make([]interface{}, len(t.columns))
	for j, col := range t.columns {
		row[j] = col.Value(i)
	}
	return row
}
