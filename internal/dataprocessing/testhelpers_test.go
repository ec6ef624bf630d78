package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const salesHeader = "Invoice ID,Branch,City,Customer type,Gender,Product line,Unit price,Quantity,Tax 5%"

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func loadSales(t *testing.T, rows ...string) *Table {
	t.Helper()
	table, err := ReadTable(strings.NewReader(strings.Join(append([]string{salesHeader}, rows...), "\n")), LoadOptions{})
	require.NoError(t, err)
	return table
}
