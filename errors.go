package tex2im

import "errors"

// Sentinel errors for library operations.
var (
	// Request validation errors.
	ErrNoSource          = errors.New("exactly one of snippet or file must be set")
	ErrInvalidFontSize   = errors.New("invalid font size")
	ErrInvalidBorder     = errors.New("invalid border width")
	ErrInvalidDensity    = errors.New("invalid density")
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidColor      = errors.New("invalid color spec")
	ErrInvalidAntialias  = errors.New("invalid anti-aliasing mode")
	ErrInvalidLatexCmd   = errors.New("invalid latex command template")
	ErrInvalidConvertCmd = errors.New("invalid convert command")
	ErrInvalidWorkingDir = errors.New("working directory must be absolute")

	// Filesystem errors.
	ErrReadInput    = errors.New("failed to read input file")
	ErrReadPreamble = errors.New("failed to read preamble file")
	ErrNoHomeDir    = errors.New("home directory is unknown")
	ErrWorkDir      = errors.New("failed to prepare work directory")
	ErrNoImage      = errors.New("converter produced no image")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrHTMLEmbed    = errors.New("failed to embed image in HTML")
)
