// Package dataprocessing turns a delimited sales file into the tables the
// report is built from.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Loader: reads a delimited file into a columnar Table, inferring numeric and text columns
// 2. Enricher: derives the Subtotal and Total columns
// 3. Summarizer: computes the nine summary metrics of the report sheet
// 4. Analytics: sums a measure per category for the charts
//
// # Usage
//
//	table, err := dataprocessing.LoadCSV("supermarket_sales new.csv", dataprocessing.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	cols := dataprocessing.DefaultColumns()
//	if err := dataprocessing.Enrich(table, cols); err != nil {
//	    return err
//	}
//	summary, err := dataprocessing.Summarize(table, cols)
//
// # Data Flow
//
//	CSV File → Loader → Table → Enricher → Table(+Subtotal, Total) → Summarizer → Summary
//	                                                              └→ GroupSum → chart groups
//
// # Error Handling
//
// Errors are *errors.AppError values: NOT_FOUND and PARSING from the loader,
// MISSING_COLUMN when a configured column is absent.
package dataprocessing
