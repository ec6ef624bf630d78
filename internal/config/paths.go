package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file locations for one report run.
// Relative paths in the configuration are resolved against BaseDir, which is
// the working directory the program was started from.
type Paths struct {
	BaseDir    string
	InputFile  string
	OutputFile string
	LogsDir    string
	LogFile    string
}

// GetPaths resolves the configured paths against the current working directory
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %v", err)
	}
	return ResolvePaths(wd, cfg), nil
}

// ResolvePaths resolves the configured paths against baseDir
func ResolvePaths(baseDir string, cfg *Config) *Paths {
	p := &Paths{BaseDir: baseDir}
	p.InputFile = p.Resolve(cfg.Report.InputPath)
	p.OutputFile = p.Resolve(cfg.Report.OutputPath)
	if cfg.Logging.FilePath != "" {
		p.LogFile = p.Resolve(cfg.Logging.FilePath)
		p.LogsDir = filepath.Dir(p.LogFile)
	} else {
		p.LogsDir = p.Resolve(DefaultLogsDir)
		p.LogFile = filepath.Join(p.LogsDir, DefaultLogFile)
	}
	return p
}

// Resolve returns path unchanged when absolute, otherwise joined to BaseDir
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// LogPathResolution logs the resolved paths at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("input_file", p.InputFile),
		slog.String("output_file", p.OutputFile),
		slog.String("log_file", p.LogFile))
}
