package main

import (
	"errors"
	"os"

	tex2im "github.com/alnah/go-tex2im"
	"github.com/alnah/go-tex2im/internal/config"
)

// Exit codes for the tex2im CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// A failing LaTeX compiler or converter is not an error: its output is logged
// and whatever was produced is delivered.
const (
	ExitSuccess = 0 // All snippets rendered and delivered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Unreadable input, missing output directory
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, tex2im.ErrReadInput) ||
		errors.Is(err, tex2im.ErrReadPreamble) ||
		errors.Is(err, tex2im.ErrWorkDir) ||
		errors.Is(err, tex2im.ErrNoImage) ||
		errors.Is(err, tex2im.ErrWriteOutput) ||
		errors.Is(err, tex2im.ErrHTMLEmbed) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRange) ||
		errors.Is(err, tex2im.ErrNoSource) ||
		errors.Is(err, tex2im.ErrInvalidFontSize) ||
		errors.Is(err, tex2im.ErrInvalidBorder) ||
		errors.Is(err, tex2im.ErrInvalidDensity) ||
		errors.Is(err, tex2im.ErrInvalidFormat) ||
		errors.Is(err, tex2im.ErrInvalidColor) ||
		errors.Is(err, tex2im.ErrInvalidAntialias) ||
		errors.Is(err, tex2im.ErrInvalidLatexCmd) ||
		errors.Is(err, tex2im.ErrInvalidConvertCmd) ||
		errors.Is(err, tex2im.ErrInvalidWorkingDir) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
