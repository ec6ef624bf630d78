package operations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salesreport/internal/errors"
	"salesreport/internal/operations"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *operations.OperationError
		want string
	}{
		{
			name: "execution with cause",
			err:  operations.NewExecutionError("load", errors.New("bad file")),
			want: "[execution] load: step execution failed: bad file",
		},
		{
			name: "timeout",
			err:  operations.NewTimeoutError("chart", "1s", nil),
			want: "[timeout] chart: step exceeded timeout of 1s",
		},
		{
			name: "release has no step",
			err:  operations.NewReleaseError("workbook", errors.New("already closed")),
			want: "[release] failed to release workbook: already closed",
		},
		{
			name: "fatal",
			err:  operations.NewFatalError("dataset is not available", nil),
			want: "[fatal] dataset is not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := apperrors.NewMissingColumnError("Unit price")
	err := operations.NewExecutionError("enrich", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingColumn))

	cancelled := operations.NewCancellationError("load", context.Canceled)
	assert.ErrorIs(t, cancelled, context.Canceled)
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, operations.ErrorType(""), operations.GetErrorType(nil))
	assert.Equal(t, operations.ErrorTypeExecution, operations.GetErrorType(errors.New("plain")))
	assert.Equal(t, operations.ErrorTypeTimeout, operations.GetErrorType(operations.NewTimeoutError("s", "1s", nil)))
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, operations.WrapError(nil, "load"))

	wrapped := operations.WrapError(errors.New("boom"), "load")
	require.NotNil(t, wrapped)
	assert.Equal(t, operations.ErrorTypeExecution, wrapped.Type)
	assert.Equal(t, "load", wrapped.Step)

	fatal := operations.NewFatalError("no dataset", nil)
	kept := operations.WrapError(fatal, "enrich")
	assert.Same(t, fatal, kept)
	assert.Equal(t, operations.ErrorTypeFatal, kept.Type)
	assert.Equal(t, "enrich", kept.Step)

	timeout := operations.NewTimeoutError("chart", "1s", nil)
	assert.Equal(t, "chart", operations.WrapError(timeout, "other").Step)
}

func TestErrorList(t *testing.T) {
	list := &operations.ErrorList{}
	assert.False(t, list.HasErrors())
	assert.NoError(t, list.ErrorOrNil())

	first := operations.NewReleaseError("figure", errors.New("a"))
	second := operations.NewReleaseError("workbook", errors.New("b"))
	list.Add(first)
	list.Add(nil)
	list.Add(second)

	require.Error(t, list.ErrorOrNil())
	assert.Len(t, list.Errors, 2)
	assert.Contains(t, list.Error(), "multiple errors")
	assert.ErrorIs(t, list, first)
	assert.ErrorIs(t, list, second)

	var opErr *operations.OperationError
	require.ErrorAs(t, list, &opErr)
	assert.Equal(t, operations.ErrorTypeRelease, opErr.Type)
}
