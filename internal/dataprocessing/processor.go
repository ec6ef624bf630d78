package dataprocessing

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Derived column names
const (
	ColumnSubtotal = "Subtotal"
	ColumnTotal    = "Total"
)

// Columns maps the logical transaction fields to the table's header names
type Columns struct {
	InvoiceID    string
	UnitPrice    string
	Quantity     string
	Tax          string
	Branch       string
	City         string
	CustomerType string
	Gender       string
	ProductLine  string
}

// DefaultColumns returns the headers of the supermarket sales dataset
func DefaultColumns() Columns {
	return Columns{
		InvoiceID:    "Invoice ID",
		UnitPrice:    "Unit price",
		Quantity:     "Quantity",
		Tax:          "Tax 5%",
		Branch:       "Branch",
		City:         "City",
		CustomerType: "Customer type",
		Gender:       "Gender",
		ProductLine:  "Product line",
	}
}

// Enrich derives Subtotal = round(unit price * quantity, 2) and
// Total = round(Subtotal + tax, 2) for every row. Existing Subtotal or Total
// columns are recomputed in place.
func Enrich(t *Table, cols Columns) error {
	prices, err := t.Numeric(cols.UnitPrice)
	if err != nil {
		return err
	}
	quantities, err := t.Numeric(cols.Quantity)
	if err != nil {
		return err
	}
	taxes, err := t.Numeric(cols.Tax)
	if err != nil {
		return err
	}

	n := t.Len()
	subtotals := make([]float64, n)
	totals := make([]float64, n)
	for i := 0; i < n; i++ {
		subtotals[i] = Round2(prices[i] * quantities[i])
		totals[i] = Round2(subtotals[i] + taxes[i])
	}

	if err := t.AddColumn(NewNumericColumn(ColumnSubtotal, subtotals)); err != nil {
		return err
	}
	return t.AddColumn(NewNumericColumn(ColumnTotal, totals))
}

// Round2 rounds the exact binary value of v to two decimal places, ties to
// even. 2.675 is stored as 2.67499... and becomes 2.67; 0.125 is an exact tie
// and becomes 0.12. NaN and infinities are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact, err := decimal.NewFromString(new(big.Float).SetFloat64(v).Text('f', exactDigits))
	if err != nil {
		return v
	}
	return exact.RoundBank(2).InexactFloat64()
}

// exactDigits is enough fraction digits to keep a float64 of sales magnitude
// from collapsing onto a rounding tie
const exactDigits = 40
