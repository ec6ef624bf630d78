// Package shared groups helpers used across the salesreport packages that do
// not belong to any one pipeline step.
//
// # Test Utilities
//
// The testutil subpackage provides a buffered slog handler so tests can
// assert on the structured log records a component emits:
//
//	logger, handler := testutil.NewTestLogger(t)
//	validator := validation.NewFileValidator(logger)
//	...
//	testutil.AssertLogContains(t, handler, slog.LevelError, "does not exist")
package shared
