package dataprocessing

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salesreport/internal/errors"
)

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t,
		salesHeader,
		"750-67-8428,A,Yangon,Member,Female,Health and beauty,74.69,7,26.1415",
		"226-31-3081,C,Naypyitaw,Normal,Female,Electronic accessories,15.28,5,3.82",
	)

	table, err := LoadCSV(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 9, table.Width())
	assert.Equal(t, strings.Split(salesHeader, ","), table.Headers())

	prices, err := table.Numeric("Unit price")
	require.NoError(t, err)
	assert.Equal(t, []float64{74.69, 15.28}, prices)

	cities, err := table.Text("City")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yangon", "Naypyitaw"}, cities)

	col, ok := table.Column("Invoice ID")
	require.True(t, ok)
	assert.Equal(t, KindText, col.Kind)
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr apperrors.ErrorType
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.csv") },
			wantErr: apperrors.ErrTypeNotFound,
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: apperrors.ErrTypeNotFound,
		},
		{
			name:    "ragged row",
			path:    func(t *testing.T) string { return writeCSV(t, "a,b", "1,2", "3") },
			wantErr: apperrors.ErrTypeParsing,
		},
		{
			name:    "duplicate header",
			path:    func(t *testing.T) string { return writeCSV(t, "a,b,a", "1,2,3") },
			wantErr: apperrors.ErrTypeParsing,
		},
		{
			name:    "bad quoting",
			path:    func(t *testing.T) string { return writeCSV(t, "a,b", `"1,2`) },
			wantErr: apperrors.ErrTypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(tt.path(t), LoadOptions{})
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestReadTable_EmptyInput(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), LoadOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestReadTable_Inference(t *testing.T) {
	input := "\ufeff id ;amount;note;blank\n1;2.5;x;\n2;;y;\n"

	table, err := ReadTable(strings.NewReader(input), LoadOptions{Delimiter: ';'})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "amount", "note", "blank"}, table.Headers())

	amounts, err := table.Numeric("amount")
	require.NoError(t, err)
	assert.Equal(t, 2.5, amounts[0])
	assert.True(t, math.IsNaN(amounts[1]))

	_, err = table.Numeric("note")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	col, ok := table.Column("blank")
	require.True(t, ok)
	assert.Equal(t, KindNumeric, col.Kind)
	assert.Nil(t, col.Value(0))

	ids, err := table.Text("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestReadTable_HeaderOnly(t *testing.T) {
	table, err := ReadTable(strings.NewReader(salesHeader+"\n"), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 9, table.Width())
}
