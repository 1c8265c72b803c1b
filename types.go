package tex2im

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-tex2im/internal/fileutil"
)

// Defaults used by DefaultRequest.
const (
	DefaultFontSize        = 12
	DefaultTextColor       = "black"
	DefaultBackgroundColor = "white"
	DefaultDensity         = "150x150"
	DefaultFormat          = "png"
	DefaultLatexCmd        = "pdflatex -interaction=nonstopmode $INPUT_FILE"
	DefaultConvertCmd      = "convert"
)

// FormatHTML is the output format that embeds a PNG into an <img> tag.
const FormatHTML = "html"

// Antialias is the anti-aliasing mode passed to the converter.
type Antialias int

// Anti-aliasing modes. AntialiasAuto turns anti-aliasing off for transparent
// backgrounds and on otherwise.
const (
	AntialiasAuto Antialias = iota
	AntialiasOn
	AntialiasOff
)

// ParseAntialias accepts "auto", "on", "off" and the numeric forms -1, 1, 0.
func ParseAntialias(s string) (Antialias, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "-1", "":
		return AntialiasAuto, nil
	case "on", "1", "true", "yes":
		return AntialiasOn, nil
	case "off", "0", "false", "no":
		return AntialiasOff, nil
	}
	return AntialiasAuto, fmt.Errorf("%w: %q (must be auto, on, or off)", ErrInvalidAntialias, s)
}

func (a Antialias) String() string {
	switch a {
	case AntialiasOn:
		return "on"
	case AntialiasOff:
		return "off"
	default:
		return "auto"
	}
}

// Source is where the snippet comes from. Exactly one field is set.
type Source struct {
	Snippet string // literal LaTeX given on the command line
	File    string // path to a file holding the snippet
}

// IsFile reports whether the snippet is read from a file.
func (s Source) IsFile() bool {
	return s.File != ""
}

// Request describes one snippet to render. Build it once and do not mutate it
// while a render is in flight.
type Request struct {
	Source Source

	FontSize              int
	TextColor             string
	BackgroundColor       string
	Preamble              string // explicit preamble file, consulted first
	NoPreamble            bool   // skip the dotfile preamble search
	NoEquationEnvironment bool
	NoComment             bool

	Antialias   Antialias
	Border      int
	Density     string
	Transparent bool

	Format         string
	OutputBasename string // basename or existing directory
	Index          *int   // position in a batch; nil for a single snippet

	LatexCmd   string // shell template, $INPUT_FILE is replaced by out.tex
	ConvertCmd string // converter program and leading arguments

	KeepFiles bool
	Stdout    bool

	WorkingDir string   // absolute directory relative paths resolve against
	HomeDir    string   // used for the dotfile preamble search
	Invocation []string // command line recorded in the image comment
}

// DefaultRequest returns a request with default styling for the given source.
func DefaultRequest(src Source) Request {
	return Request{
		Source:          src,
		FontSize:        DefaultFontSize,
		TextColor:       DefaultTextColor,
		BackgroundColor: DefaultBackgroundColor,
		Antialias:       AntialiasAuto,
		Density:         DefaultDensity,
		Format:          DefaultFormat,
		LatexCmd:        DefaultLatexCmd,
		ConvertCmd:      DefaultConvertCmd,
	}
}

// WithIndex returns a copy of r with its batch index set.
func (r Request) WithIndex(i int) Request {
	r.Index = &i
	return r
}

// IsHTML reports whether the request asks for an HTML fragment.
func (r Request) IsHTML() bool {
	return strings.EqualFold(r.Format, FormatHTML)
}

// Validate checks the request before any file is touched.
func (r Request) Validate() error {
	if (r.Source.Snippet == "") == (r.Source.File == "") {
		return ErrNoSource
	}
	if r.FontSize <= 0 {
		return fmt.Errorf("%w: %d (must be > 0)", ErrInvalidFontSize, r.FontSize)
	}
	if r.Border < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidBorder, r.Border)
	}
	if strings.TrimSpace(r.Density) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDensity)
	}
	if r.Format == "" || fileutil.ValidateExtension(strings.TrimPrefix(r.Format, ".")) != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, r.Format)
	}
	if _, err := ParseColor(r.TextColor); err != nil {
		return fmt.Errorf("text color: %w", err)
	}
	if _, err := ParseColor(r.BackgroundColor); err != nil {
		return fmt.Errorf("background color: %w", err)
	}
	if r.Antialias < AntialiasAuto || r.Antialias > AntialiasOff {
		return fmt.Errorf("%w: %d", ErrInvalidAntialias, r.Antialias)
	}
	if strings.TrimSpace(r.LatexCmd) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLatexCmd)
	}
	if len(strings.Fields(r.ConvertCmd)) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidConvertCmd)
	}
	if !filepath.IsAbs(r.WorkingDir) {
		return fmt.Errorf("%w: %q", ErrInvalidWorkingDir, r.WorkingDir)
	}
	return nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRunner replaces the subprocess runner (tests use a fake).
func WithRunner(runner CommandRunner) Option {
	return func(r *Renderer) {
		r.runner = runner
	}
}

// WithLogger sets the logger used for stage progress and failures.
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStdout sets where streamed images are written.
func WithStdout(w io.Writer) Option {
	return func(r *Renderer) {
		r.stdout = w
	}
}

// WithTempDir sets the parent of per-snippet work directories.
// Empty means os.TempDir().
func WithTempDir(dir string) Option {
	return func(r *Renderer) {
		r.tempDir = dir
	}
}
