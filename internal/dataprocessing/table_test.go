package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salesreport/internal/errors"
)

func TestTable_AddColumn(t *testing.T) {
	table, err := NewTable(
		NewTextColumn("name", []string{"a", "b"}),
		NewNumericColumn("value", []float64{1, 2}),
	)
	require.NoError(t, err)

	t.Run("appends new column", func(t *testing.T) {
		require.NoError(t, table.AddColumn(NewNumericColumn("extra", []float64{3, 4})))
		assert.Equal(t, []string{"name", "value", "extra"}, table.Headers())
	})

	t.Run("replaces existing column in place", func(t *testing.T) {
		require.NoError(t, table.AddColumn(NewNumericColumn("value", []float64{9, 8})))
		assert.Equal(t, []string{"name", "value", "extra"}, table.Headers())

		values, err := table.Numeric("value")
		require.NoError(t, err)
		assert.Equal(t, []float64{9, 8}, values)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.Error(t, table.AddColumn(NewNumericColumn("short", []float64{1})))
	})

	t.Run("rejects unnamed column", func(t *testing.T) {
		assert.Error(t, table.AddColumn(NewNumericColumn("", []float64{1, 2})))
	})
}

func TestTable_Row(t *testing.T) {
	table, err := NewTable(
		NewTextColumn("name", []string{"a"}),
		NewNumericColumn("value", []float64{math.NaN()}),
		NewNumericColumn("qty", []float64{3}),
	)
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"a", nil, 3.0}, table.Row(0))
}

func TestTable_MissingColumn(t *testing.T) {
	table, err := NewTable(NewTextColumn("name", []string{"a"}))
	require.NoError(t, err)

	_, err = table.Numeric("absent")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingColumn))

	_, err = table.Text("absent")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingColumn))
}

func TestColumnKind_String(t *testing.T) {
	assert.Equal(t, "numeric", KindNumeric.String())
	assert.Equal(t, "text", KindText.String())
}
