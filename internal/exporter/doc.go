// Package exporter writes the sales report workbook.
//
// This package contains two main components:
//
// WriteWorkbook: creates a fresh workbook holding the dataset sheet and the
// summary sheet, saves it and closes it.
//
// Workbook: a reopened workbook handle used to style both sheets, anchor the
// chart image and save the result. A Workbook must be closed by its owner.
//
// Example usage:
//
//	err := exporter.WriteWorkbook("ejemplo.xlsx", table, summary, exporter.DefaultWriteOptions())
//
//	wb, err := exporter.OpenWorkbook("ejemplo.xlsx")
//	defer wb.Close()
//
//	err = wb.ApplyStyle(exporter.DefaultStyleOptions())
//	err = wb.EmbedImage("Report", "D1", png)
//	err = wb.Save()
package exporter
