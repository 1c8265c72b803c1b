package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	tex2im "github.com/alnah/go-tex2im"
	"github.com/alnah/go-tex2im/internal/config"
)

// ErrInvalidWorkerCount is returned for --workers outside 0..config.MaxWorkers.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// commonFlags holds logging and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	debug   bool
}

// level maps the verbosity flags to a log level. The most verbose flag wins.
func (f commonFlags) level() log.Level {
	switch {
	case f.debug:
		return log.DebugLevel
	case f.verbose:
		return log.InfoLevel
	case f.quiet:
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// styleFlags holds LaTeX document flags.
type styleFlags struct {
	fontSize        int
	textColor       string
	backgroundColor string
	preamble        string
	noPreamble      bool
	noEquation      bool
}

// imageFlags holds converter flags.
type imageFlags struct {
	antialias   string
	border      int
	density     string
	transparent bool
	format      string
	noComment   bool
}

// outputFlags holds output destination flags.
type outputFlags struct {
	basename string
	keep     bool
	stdout   bool
	workers  int
}

// toolFlags holds external program flags.
type toolFlags struct {
	latexCmd   string
	convertCmd string
}

// modeFlags select what the run does instead of rendering.
type modeFlags struct {
	dryRun  bool
	doctor  bool
	json    bool
	version bool
}

// cliFlags holds all command-line flags.
type cliFlags struct {
	common commonFlags
	style  styleFlags
	image  imageFlags
	output outputFlags
	tools  toolFlags
	mode   modeFlags
}

// addCommonFlags adds logging and config flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress all logging")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each step")
	fs.BoolVarP(&f.debug, "debug", "d", false, "log debug details")
}

// addStyleFlags adds document flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.IntVarP(&f.fontSize, "font-size", "s", tex2im.DefaultFontSize, "font size in points")
	fs.StringVarP(&f.textColor, "text-color", "t", tex2im.DefaultTextColor, "text color: name or mode:value")
	fs.StringVarP(&f.backgroundColor, "background-color", "b", tex2im.DefaultBackgroundColor, "background color: name or mode:value")
	fs.StringVarP(&f.preamble, "preamble", "x", "", "file with extra preamble lines")
	fs.BoolVar(&f.noPreamble, "no-preamble", false, "skip ./.tex2im_preamble and ~/.tex2im_preamble")
	fs.BoolVarP(&f.noEquation, "no-equation-environment", "n", false, "do not wrap the snippet in eqnarray*")
}

// addImageFlags adds converter flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVarP(&f.antialias, "anti-aliasing", "a", tex2im.AntialiasAuto.String(), "anti-aliasing: auto, on, off")
	fs.IntVarP(&f.border, "border", "B", 0, "border width in pixels")
	fs.StringVarP(&f.density, "density", "D", tex2im.DefaultDensity, "resolution, e.g. 150x150")
	fs.BoolVarP(&f.transparent, "transparent-background", "z", false, "make the background transparent")
	fs.StringVarP(&f.format, "output-format", "f", tex2im.DefaultFormat, "image format; html embeds a PNG")
	fs.BoolVarP(&f.noComment, "no-comment", "C", false, "do not store the snippet in the image comment")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.basename, "output-basename", "o", "", "output basename or existing directory")
	fs.BoolVarP(&f.keep, "keep-files", "k", false, "keep the temporary work directory")
	fs.BoolVar(&f.stdout, "stdout", false, "write the image to stdout")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel snippets (0 = auto)")
}

// addToolFlags adds external program flags to a FlagSet.
func addToolFlags(fs *flag.FlagSet, f *toolFlags) {
	fs.StringVar(&f.latexCmd, "latex-cmd-template", tex2im.DefaultLatexCmd, "compiler command; $INPUT_FILE is the document")
	fs.StringVar(&f.convertCmd, "convert-cmd", tex2im.DefaultConvertCmd, "converter program, e.g. magick")
}

// addModeFlags adds run mode flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVar(&f.dryRun, "dry-run", false, "print documents and commands without running them")
	fs.BoolVar(&f.doctor, "doctor", false, "check that the external tools are installed")
	fs.BoolVar(&f.json, "json", false, "with --doctor, print JSON")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

// parseFlags parses the command line (without the program name).
// -h/--help surface as flag.ErrHelp.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, []string, error) {
	fs := flag.NewFlagSet("tex2im", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	f := &cliFlags{}
	addStyleFlags(fs, &f.style)
	addImageFlags(fs, &f.image)
	addOutputFlags(fs, &f.output)
	addToolFlags(fs, &f.tools)
	addCommonFlags(fs, &f.common)
	addModeFlags(fs, &f.mode)

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	return f, fs, fs.Args(), nil
}

// applyFlags copies explicitly set flags onto req, so unset flags never
// override the config file or environment.
func applyFlags(fs *flag.FlagSet, f *cliFlags, req *tex2im.Request) error {
	if fs.Changed("font-size") {
		req.FontSize = f.style.fontSize
	}
	if fs.Changed("text-color") {
		req.TextColor = f.style.textColor
	}
	if fs.Changed("background-color") {
		req.BackgroundColor = f.style.backgroundColor
	}
	if fs.Changed("preamble") {
		req.Preamble = f.style.preamble
	}
	if fs.Changed("no-preamble") {
		req.NoPreamble = f.style.noPreamble
	}
	if fs.Changed("no-equation-environment") {
		req.NoEquationEnvironment = f.style.noEquation
	}

	if fs.Changed("anti-aliasing") {
		mode, err := tex2im.ParseAntialias(f.image.antialias)
		if err != nil {
			return err
		}
		req.Antialias = mode
	}
	if fs.Changed("border") {
		req.Border = f.image.border
	}
	if fs.Changed("density") {
		req.Density = f.image.density
	}
	if fs.Changed("transparent-background") {
		req.Transparent = f.image.transparent
	}
	if fs.Changed("output-format") {
		req.Format = f.image.format
	}
	if fs.Changed("no-comment") {
		req.NoComment = f.image.noComment
	}

	if fs.Changed("output-basename") {
		req.OutputBasename = f.output.basename
	}
	if fs.Changed("keep-files") {
		req.KeepFiles = f.output.keep
	}
	if fs.Changed("stdout") {
		req.Stdout = f.output.stdout
	}

	if fs.Changed("latex-cmd-template") {
		req.LatexCmd = f.tools.latexCmd
	}
	if fs.Changed("convert-cmd") {
		req.ConvertCmd = f.tools.convertCmd
	}
	return nil
}

// resolveWorkers picks the worker count: flag > environment > config.
// 0 means auto.
func resolveWorkers(fs *flag.FlagSet, f *cliFlags, envWorkers, cfgWorkers int) (int, error) {
	n := cfgWorkers
	if envWorkers > 0 {
		n = envWorkers
	}
	if fs.Changed("workers") {
		n = f.output.workers
	}
	if n < 0 || n > config.MaxWorkers {
		return 0, fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return n, nil
}
