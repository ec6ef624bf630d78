package operations

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"salesreport/internal/charts"
	"salesreport/internal/dataprocessing"
	"salesreport/internal/exporter"
	"salesreport/internal/infrastructure"
	"salesreport/internal/validation"
)

// Step IDs in pipeline order
const (
	StageIDLoad      = "load"
	StageIDEnrich    = "enrich"
	StageIDAggregate = "aggregate"
	StageIDWrite     = "write"
	StageIDStyle     = "style"
	StageIDChart     = "chart"
	StageIDEmbed     = "embed"
	StageIDSave      = "save"
)

// Step names
const (
	StageNameLoad      = "Load Dataset"
	StageNameEnrich    = "Derive Totals"
	StageNameAggregate = "Summarize Sales"
	StageNameWrite     = "Write Workbook"
	StageNameStyle     = "Style Workbook"
	StageNameChart     = "Compose Charts"
	StageNameEmbed     = "Embed Charts"
	StageNameSave      = "Save Workbook"
)

// requireArtifact fails a step whose input was never produced
func requireArtifact(step string, present bool, artifact string) error {
	if present {
		return nil
	}
	return NewFatalError(artifact+" is not available", nil).withStep(step)
}

// LoadStage reads the input file into the run's table
type LoadStage struct {
	BaseStage
	logger *slog.Logger
}

// NewLoadStage creates a new load step
func NewLoadStage(logger *slog.Logger) *LoadStage {
	return &LoadStage{
		BaseStage: NewBaseStage(StageIDLoad, StageNameLoad),
		logger:    infrastructure.WithComponent(logger, StageIDLoad),
	}
}

// Execute runs the load step
func (s *LoadStage) Execute(ctx context.Context, run *Run) error {
	path := run.Paths.InputFile
	if err := validation.NewFileValidator(s.logger).ValidateInputFile(path); err != nil {
		return err
	}

	delimiter, _ := utf8.DecodeRuneInString(run.Config.Report.Delimiter)
	table, err := dataprocessing.LoadCSV(path, dataprocessing.LoadOptions{Delimiter: delimiter})
	if err != nil {
		return err
	}
	run.Table = table
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"report.rows":    table.Len(),
		"report.columns": table.Width(),
	})

	s.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("file", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", table.Width()))
	return nil
}

// EnrichStage derives the Subtotal and Total columns
type EnrichStage struct {
	BaseStage
	logger *slog.Logger
}

// NewEnrichStage creates a new enrich step
func NewEnrichStage(logger *slog.Logger) *EnrichStage {
	return &EnrichStage{
		BaseStage: NewBaseStage(StageIDEnrich, StageNameEnrich),
		logger:    infrastructure.WithComponent(logger, StageIDEnrich),
	}
}

// Execute runs the enrich step
func (s *EnrichStage) Execute(ctx context.Context, run *Run) error {
	if err := requireArtifact(s.ID(), run.Table != nil, "dataset"); err != nil {
		return err
	}
	if err := dataprocessing.Enrich(run.Table, run.Columns); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Derived columns added",
		slog.String("subtotal", dataprocessing.ColumnSubtotal),
		slog.String("total", dataprocessing.ColumnTotal))
	return nil
}

// AggregateStage computes the summary metrics
type AggregateStage struct {
	BaseStage
	logger *slog.Logger
}

// NewAggregateStage creates a new aggregate step
func NewAggregateStage(logger *slog.Logger) *AggregateStage {
	return &AggregateStage{
		BaseStage: NewBaseStage(StageIDAggregate, StageNameAggregate),
		logger:    infrastructure.WithComponent(logger, StageIDAggregate),
	}
}

// Execute runs the aggregate step
func (s *AggregateStage) Execute(ctx context.Context, run *Run) error {
	if err := requireArtifact(s.ID(), run.Table != nil, "dataset"); err != nil {
		return err
	}
	summary, err := dataprocessing.Summarize(run.Table, run.Columns)
	if err != nil {
		return err
	}
	run.Summary = summary

	if total, ok := summary.Value(dataprocessing.MetricTotalSales); ok {
		s.logger.InfoContext(ctx, "Summary computed",
			slog.Int("metrics", summary.Len()),
			slog.Float64("total_sales", total))
	}
	return nil
}

// WriteStage writes the dataset and summary sheets to a new workbook
type WriteStage struct {
	BaseStage
	logger *slog.Logger
}

// NewWriteStage creates a new write step
func NewWriteStage(logger *slog.Logger) *WriteStage {
	return &WriteStage{
		BaseStage: NewBaseStage(StageIDWrite, StageNameWrite),
		logger:    infrastructure.WithComponent(logger, StageIDWrite),
	}
}

// Execute runs the write step
func (s *WriteStage) Execute(ctx context.Context, run *Run) error {
	if err := requireArtifact(s.ID(), run.Table != nil && run.Summary != nil, "summary"); err != nil {
		return err
	}

	path := run.Paths.OutputFile
	if err := validation.NewFileValidator(s.logger).ValidateOutputFile(path); err != nil {
		return err
	}

	opts := exporter.WriteOptions{
		DatasetSheet: run.Config.Report.DatasetSheet,
		ReportSheet:  run.Config.Report.ReportSheet,
	}
	if err := exporter.WriteWorkbook(path, run.Table, run.Summary, opts); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Workbook written",
		slog.String("file", path),
		slog.String("dataset_sheet", opts.DatasetSheet),
		slog.String("report_sheet", opts.ReportSheet))
	return nil
}

// StyleStage reopens the workbook and applies the report look
type StyleStage struct {
	BaseStage
	logger *slog.Logger
}

// NewStyleStage creates a new style step
func NewStyleStage(logger *slog.Logger) *StyleStage {
	return &StyleStage{
		BaseStage: NewBaseStage(StageIDStyle, StageNameStyle),
		logger:    infrastructure.WithComponent(logger, StageIDStyle),
	}
}

// Execute runs the style step
func (s *StyleStage) Execute(ctx context.Context, run *Run) error {
	wb, err := exporter.OpenWorkbook(run.Paths.OutputFile)
	if err != nil {
		return err
	}
	run.Workbook = wb
	if err := run.OnClose("workbook", wb.Close); err != nil {
		return err
	}

	style := run.Config.Style
	opts := exporter.StyleOptions{
		DatasetSheet:    run.Config.Report.DatasetSheet,
		ReportSheet:     run.Config.Report.ReportSheet,
		ColumnWidth:     style.ColumnWidth,
		HeaderFill:      style.HeaderFill,
		HeaderFontColor: style.HeaderFontColor,
		HeaderFontSize:  style.HeaderFontSize,
	}
	if err := wb.ApplyStyle(opts); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Workbook styled",
		slog.Any("sheets", wb.Sheets()),
		slog.Float64("column_width", opts.ColumnWidth),
		slog.String("header_fill", opts.HeaderFill))
	return nil
}

// ChartStage renders the composite chart figure
type ChartStage struct {
	BaseStage
	logger *slog.Logger
}

// NewChartStage creates a new chart step
func NewChartStage(logger *slog.Logger) *ChartStage {
	return &ChartStage{
		BaseStage: NewBaseStage(StageIDChart, StageNameChart),
		logger:    infrastructure.WithComponent(logger, StageIDChart),
	}
}

// Execute runs the chart step
func (s *ChartStage) Execute(ctx context.Context, run *Run) error {
	if err := requireArtifact(s.ID(), run.Table != nil, "dataset"); err != nil {
		return err
	}

	opts := charts.DefaultOptions(run.Columns)
	opts.Width = run.Config.Chart.Width
	opts.Height = run.Config.Chart.Height

	fig, err := charts.Compose(run.Table, opts)
	if err != nil {
		return err
	}
	run.Figure = fig
	if err := run.OnClose("figure", fig.Close); err != nil {
		return err
	}
	size := fig.Bounds().Size()
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"chart.panels":    len(opts.Descriptors),
		"chart.width":     size.X,
		"chart.height":    size.Y,
		"chart.png_bytes": len(fig.Bytes()),
	})

	s.logger.InfoContext(ctx, "Charts composed",
		slog.Int("panels", len(opts.Descriptors)),
		slog.Int("width", size.X),
		slog.Int("height", size.Y),
		slog.Int("png_bytes", len(fig.Bytes())))
	return nil
}

// EmbedStage anchors the chart figure on the report sheet
type EmbedStage struct {
	BaseStage
	logger *slog.Logger
}

// NewEmbedStage creates a new embed step
func NewEmbedStage(logger *slog.Logger) *EmbedStage {
	return &EmbedStage{
		BaseStage: NewBaseStage(StageIDEmbed, StageNameEmbed),
		logger:    infrastructure.WithComponent(logger, StageIDEmbed),
	}
}

// Execute runs the embed step
func (s *EmbedStage) Execute(ctx context.Context, run *Run) error {
	if err := requireArtifact(s.ID(), run.Workbook != nil, "workbook"); err != nil {
		return err
	}
	if err := requireArtifact(s.ID(), run.Figure != nil, "figure"); err != nil {
		return err
	}

	sheet, anchor := run.Config.Report.ReportSheet, run.Config.Report.ImageAnchor
	if err := run.Workbook.EmbedImage(sheet, anchor, run.Figure.Bytes()); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Figure embedded",
		slog.String("sheet", sheet),
		slog.String("anchor", anchor))
	return nil
}

// SaveStage persists the finished workbook
type SaveStage struct {
	BaseStage
	logger *slog.Logger
}

// NewSaveStage creates a new save step
func NewSaveStage(logger *slog.Logger) *SaveStage {
	return &SaveStage{
		BaseStage: NewBaseStage(StageIDSave, StageNameSave),
		logger:    infrastructure.WithComponent(logger, StageIDSave),
	}
}

// Execute runs the save step
func (s *SaveStage) Execute(ctx context.Context, run *Run) error {
	if err := requireArtifact(s.ID(), run.Workbook != nil, "workbook"); err != nil {
		return err
	}
	if err := run.Workbook.Save(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Report saved", slog.String("file", run.Workbook.Path()))
	return nil
}

// NewReportPipeline creates a manager with the eight report steps registered
// in order
func NewReportPipeline(config *Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	manager := NewManager(NewRegistry(), config, logger)

	steps := []Step{
		NewLoadStage(logger),
		NewEnrichStage(logger),
		NewAggregateStage(logger),
		NewWriteStage(logger),
		NewStyleStage(logger),
		NewChartStage(logger),
		NewEmbedStage(logger),
		NewSaveStage(logger),
	}
	for _, step := range steps {
		if err := manager.RegisterStage(step); err != nil {
			return nil, err
		}
	}
	return manager, nil
}
