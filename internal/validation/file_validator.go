package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "salesreport/internal/errors"
)

// workbookExtensions are the file extensions a workbook can be saved under
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// FileValidator checks report input and output locations before a run touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path is an existing, readable regular file
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("Input file does not exist",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewFileNotFoundError(path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("file", path))
		return apperrors.NewFileNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewFileNotFoundError(path, err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputFile checks that a workbook can be written at path.
// The parent directory is created when missing; an existing file is allowed
// and will be replaced.
func (v *FileValidator) ValidateOutputFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !workbookExtensions[ext] {
		v.logger.Error("Output file is not a workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewWriteError(fmt.Sprintf("output %s must have a workbook extension, got %q", path, ext), nil).
			WithContext("path", path)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		v.logger.Error("Output path is a directory",
			slog.String("path", path))
		return apperrors.NewWriteError(fmt.Sprintf("output %s is a directory", path), nil).
			WithContext("path", path)
	}

	return v.ValidateOutputDirectory(filepath.Dir(path))
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewWriteError(fmt.Sprintf("failed to create output directory %s", dir), err).
			WithContext("path", dir)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewWriteError(fmt.Sprintf("output directory %s is not writable", dir), err).
			WithContext("path", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
