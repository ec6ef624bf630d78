package dataprocessing

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary table header labels
const (
	MetricHeader = "Métrica"
	ValueHeader  = "Valor"
)

// Metric names in report order
const (
	MetricTotalSales   = "Total de Ventas"
	MetricProductsSold = "Productos Vendidos"
	MetricCustomers    = "Número de Clientes"
	MetricMeanSale     = "Promedio de Ventas"
	MetricMedianSale   = "Mediana de Ventas"
	MetricSalesStdDev  = "Dispersión de Ventas"
	MetricLargestSale  = "Mayor Venta"
	MetricSmallestSale = "Menor Venta"
	MetricTaxCollected = "Total Impuestos (5%)"
)

// Metric is one labelled row of the summary table
type Metric struct {
	Name  string
	Value float64
}

// Summary holds the report statistics in fixed order
type Summary struct {
	Metrics []Metric
}

// Len returns the number of metrics
func (s *Summary) Len() int {
	return len(s.Metrics)
}

// Value returns the value of the named metric
func (s *Summary) Value(name string) (float64, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Summarize computes the nine report metrics from an enriched table.
// Empty cells are ignored; a statistic with no usable values is 0.
func Summarize(t *Table, cols Columns) (*Summary, error) {
	totals, err := t.Numeric(ColumnTotal)
	if err != nil {
		return nil, err
	}
	quantities, err := t.Numeric(cols.Quantity)
	if err != nil {
		return nil, err
	}
	invoices, err := t.Text(cols.InvoiceID)
	if err != nil {
		return nil, err
	}
	taxes, err := t.Numeric(cols.Tax)
	if err != nil {
		return nil, err
	}

	sales := present(totals)

	return &Summary{Metrics: []Metric{
		{MetricTotalSales, compute(stats.Sum, sales)},
		{MetricProductsSold, compute(stats.Sum, present(quantities))},
		{MetricCustomers, float64(countDistinct(invoices))},
		{MetricMeanSale, compute(stats.Mean, sales)},
		{MetricMedianSale, compute(stats.Median, sales)},
		{MetricSalesStdDev, sampleStdDev(sales)},
		{MetricLargestSale, compute(stats.Max, sales)},
		{MetricSmallestSale, compute(stats.Min, sales)},
		{MetricTaxCollected, compute(stats.Sum, present(taxes))},
	}}, nil
}

// compute applies fn and rounds the result; empty input yields 0
func compute(fn func(stats.Float64Data) (float64, error), data stats.Float64Data) float64 {
	if len(data) == 0 {
		return 0
	}
	v, err := fn(data)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return Round2(v)
}

func sampleStdDev(data stats.Float64Data) float64 {
	if len(data) < 2 {
		return 0
	}
	return compute(stats.StandardDeviationSample, data)
}

// present drops NaN cells
func present(values []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// countDistinct counts distinct non-empty values
func countDistinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}
