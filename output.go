package tex2im

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tex2im/internal/fileutil"
)

// defaultBasename names the output of an inline snippet.
const defaultBasename = "out"

// OutputRequest holds the inputs of output-path resolution.
type OutputRequest struct {
	InputFile  string // absolute snippet file, "" for inline snippets
	Basename   string // explicit basename or directory, "" if unset
	WorkingDir string
	Index      *int
	Format     string
}

// Output is where the rendered image goes.
type Output struct {
	Dir        string // delivery directory, not created if missing
	File       string // file name of the converter output
	Format     string // requested format
	WorkFormat string // format the converter produces ("png" for html)
}

// HTML reports whether the converter output is wrapped into an HTML file.
func (o Output) HTML() bool {
	return strings.EqualFold(o.Format, FormatHTML)
}

// FinalFile is the name of the delivered file. For html this is the
// converter output with its extension replaced by .html.
func (o Output) FinalFile() string {
	if o.HTML() {
		return withSuffix(o.File, "."+FormatHTML)
	}
	return o.File
}

// Path is the absolute path of the delivered file.
func (o Output) Path() string {
	return filepath.Join(o.Dir, o.FinalFile())
}

// ResolveOutput computes the output directory and file name.
//
// An explicit basename naming an existing directory becomes the output
// directory and the basename falls back to the default: the input file's
// stem, or "out". Inline snippets in a batch get "-<index>" appended so they
// don't collide; file snippets keep their stem.
func ResolveOutput(req OutputRequest) (Output, error) {
	if req.Format == "" {
		return Output{}, fmt.Errorf("%w: empty", ErrInvalidFormat)
	}

	outputDir := req.WorkingDir
	basename := req.Basename

	if basename != "" {
		if !filepath.IsAbs(basename) {
			basename = filepath.Join(outputDir, basename)
		}
		if fileutil.DirExists(basename) {
			outputDir = basename
			basename = ""
		}
	}

	derived := basename == ""
	if derived {
		if req.InputFile != "" {
			basename = stem(filepath.Base(req.InputFile))
		} else {
			basename = defaultBasename
		}
	}

	if req.InputFile == "" && req.Index != nil {
		basename = fmt.Sprintf("%s-%d", basename, *req.Index)
	}

	workFormat := req.Format
	if strings.EqualFold(workFormat, FormatHTML) {
		workFormat = "png"
	}
	ext := workFormat
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	full := basename
	if !filepath.IsAbs(full) {
		full = filepath.Join(outputDir, full)
	}
	// A derived name is a stem already; an explicit one has its suffix replaced.
	if derived {
		full += ext
	} else {
		full = withSuffix(full, ext)
	}

	return Output{
		Dir:        filepath.Dir(full),
		File:       filepath.Base(full),
		Format:     req.Format,
		WorkFormat: strings.TrimPrefix(workFormat, "."),
	}, nil
}

// suffixIndex returns the index of the final suffix's dot in the last path
// element, or -1. A leading dot or a trailing dot does not start a suffix.
func suffixIndex(path string) int {
	base := filepath.Base(path)
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return -1
	}
	return len(path) - len(base) + i
}

// withSuffix replaces the final suffix of path with ext, or appends ext when
// there is none.
func withSuffix(path, ext string) string {
	if i := suffixIndex(path); i >= 0 {
		return path[:i] + ext
	}
	return path + ext
}

// stem strips the final suffix from a file name.
func stem(name string) string {
	if i := suffixIndex(name); i >= 0 {
		return name[:i]
	}
	return name
}
