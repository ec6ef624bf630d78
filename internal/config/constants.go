package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "salesreport"
	AppVersion = "1.0.0"

	// Environment variable prefix used by envconfig (SALESREPORT_REPORT_INPUT_PATH, ...)
	EnvPrefix = "SALESREPORT"

	// Default input/output, relative to the working directory
	DefaultInputPath  = "supermarket_sales new.csv"
	DefaultOutputPath = "ejemplo.xlsx"

	// Workbook layout
	DefaultDatasetSheet = "Dataset"
	DefaultReportSheet  = "Report"
	DefaultImageAnchor  = "D1"
	DefaultDelimiter    = ","

	// Styling
	DefaultColumnWidth     = 20
	DefaultHeaderFill      = "006A71"
	DefaultHeaderFontColor = "EFEFEF"
	DefaultHeaderFontSize  = 12

	// Chart figure, in pixels (10x6 inches at 100 dpi)
	DefaultChartWidth  = 1000
	DefaultChartHeight = 600

	// Upper bound for a single pipeline step
	DefaultStepTimeout = 5 * time.Minute

	// Log Settings
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "salesreport.log"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"

	// Completion message printed once the workbook is saved
	CompletionMessage = "Se ha generado el reporte"
)

// Config file locations searched when no explicit path is given.
var configFileLocations = []string{
	"salesreport.yaml",
	"configs/salesreport.yaml",
}
