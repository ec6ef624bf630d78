package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "salesreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Columns  ColumnsConfig  `yaml:"columns" envconfig:"COLUMNS"`
	Style    StyleConfig    `yaml:"style" envconfig:"STYLE"`
	Chart    ChartConfig    `yaml:"chart" envconfig:"CHART"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
}

// ReportConfig contains input/output locations and workbook layout
type ReportConfig struct {
	InputPath    string `yaml:"input_path" envconfig:"INPUT_PATH" validate:"required"`
	OutputPath   string `yaml:"output_path" envconfig:"OUTPUT_PATH" validate:"required"`
	DatasetSheet string `yaml:"dataset_sheet" envconfig:"DATASET_SHEET" validate:"required,max=31,nefield=ReportSheet"`
	ReportSheet  string `yaml:"report_sheet" envconfig:"REPORT_SHEET" validate:"required,max=31"`
	ImageAnchor  string `yaml:"image_anchor" envconfig:"IMAGE_ANCHOR" validate:"required,alphanum"`
	Delimiter    string `yaml:"delimiter" envconfig:"DELIMITER" validate:"required,len=1"`
}

// ColumnsConfig maps the logical fields of a transaction to input header names
type ColumnsConfig struct {
	InvoiceID    string `yaml:"invoice_id" envconfig:"INVOICE_ID" validate:"required"`
	UnitPrice    string `yaml:"unit_price" envconfig:"UNIT_PRICE" validate:"required"`
	Quantity     string `yaml:"quantity" envconfig:"QUANTITY" validate:"required"`
	Tax          string `yaml:"tax" envconfig:"TAX" validate:"required"`
	Branch       string `yaml:"branch" envconfig:"BRANCH" validate:"required"`
	City         string `yaml:"city" envconfig:"CITY" validate:"required"`
	CustomerType string `yaml:"customer_type" envconfig:"CUSTOMER_TYPE" validate:"required"`
	Gender       string `yaml:"gender" envconfig:"GENDER" validate:"required"`
	ProductLine  string `yaml:"product_line" envconfig:"PRODUCT_LINE" validate:"required"`
}

// StyleConfig contains worksheet presentation settings
type StyleConfig struct {
	ColumnWidth     float64 `yaml:"column_width" envconfig:"COLUMN_WIDTH" validate:"gt=0,lte=255"`
	HeaderFill      string  `yaml:"header_fill" envconfig:"HEADER_FILL" validate:"len=6,hexadecimal"`
	HeaderFontColor string  `yaml:"header_font_color" envconfig:"HEADER_FONT_COLOR" validate:"len=6,hexadecimal"`
	HeaderFontSize  float64 `yaml:"header_font_size" envconfig:"HEADER_FONT_SIZE" validate:"gt=0,lte=409"`
}

// ChartConfig contains the composite chart figure size in pixels
type ChartConfig struct {
	Width  int `yaml:"width" envconfig:"WIDTH" validate:"gte=300,lte=4000"`
	Height int `yaml:"height" envconfig:"HEIGHT" validate:"gte=200,lte=4000"`
}

// PipelineConfig bounds how long each report step may run. StepTimeouts is
// keyed by step ID (SALESREPORT_PIPELINE_STEP_TIMEOUTS=chart:30s,save:1m).
type PipelineConfig struct {
	StepTimeout  time.Duration            `yaml:"step_timeout" envconfig:"STEP_TIMEOUT" validate:"gt=0"`
	StepTimeouts map[string]time.Duration `yaml:"step_timeouts" envconfig:"STEP_TIMEOUTS" validate:"dive,keys,oneof=load enrich aggregate write style chart embed save,endkeys,gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	Exporter    string `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=stdout none"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment. An empty path searches the default config file locations.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, apperrors.NewConfigError("failed to load .env file", err)
	}

	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from %s", path), err)
		}
	}

	// Only variables that are actually set override the values above
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv seeds the process environment from a .env file if one exists.
// Variables already present in the environment are not overwritten.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// mergeFile overlays the YAML file onto c; keys absent from the file keep their value
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.NewValidationError(
				fmt.Sprintf("config field %s failed %q validation", first.Namespace(), first.Tag()), err).
				WithContext("field", first.Namespace())
		}
		return apperrors.NewValidationError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the first existing default config file, or ""
func getConfigFilePath() string {
	for _, location := range configFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			InputPath:    DefaultInputPath,
			OutputPath:   DefaultOutputPath,
			DatasetSheet: DefaultDatasetSheet,
			ReportSheet:  DefaultReportSheet,
			ImageAnchor:  DefaultImageAnchor,
			Delimiter:    DefaultDelimiter,
		},
		Columns: ColumnsConfig{
			InvoiceID:    "Invoice ID",
			UnitPrice:    "Unit price",
			Quantity:     "Quantity",
			Tax:          "Tax 5%",
			Branch:       "Branch",
			City:         "City",
			CustomerType: "Customer type",
			Gender:       "Gender",
			ProductLine:  "Product line",
		},
		Style: StyleConfig{
			ColumnWidth:     DefaultColumnWidth,
			HeaderFill:      DefaultHeaderFill,
			HeaderFontColor: DefaultHeaderFontColor,
			HeaderFontSize:  DefaultHeaderFontSize,
		},
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
		Pipeline: PipelineConfig{
			StepTimeout: DefaultStepTimeout,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogsDir + "/" + DefaultLogFile,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Exporter:    "stdout",
			ServiceName: AppName,
		},
	}
}
