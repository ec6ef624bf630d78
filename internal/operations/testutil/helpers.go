package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SalesHeader is the header row of the sample sales dataset
var SalesHeader = []string{
	"Invoice ID", "Branch", "City", "Customer type", "Gender",
	"Product line", "Unit price", "Quantity", "Tax 5%",
}

// SampleSales is a three-row dataset with known totals:
// Subtotal 10, 3, 10 and Total 10.5, 3.15, 10.5
var SampleSales = [][]string{
	{"A1", "A", "Yangon", "Member", "Female", "Health", "10.00", "1", "0.50"},
	{"A2", "B", "Mandalay", "Normal", "Male", "Food", "1.50", "2", "0.15"},
	{"A3", "A", "Yangon", "Normal", "Female", "Health", "2.50", "4", "0.50"},
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// CreateSalesCSV writes header and rows as a comma separated file
func CreateSalesCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return CreateTestFile(t, dir, name, b.String())
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
