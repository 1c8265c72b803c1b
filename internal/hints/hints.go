// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-tex2im/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForCompilerNotFound returns hints when the LaTeX compiler is not on PATH.
func ForCompilerNotFound(program string) string {
	var hints []string
	if IsInContainer() {
		hints = append(hints, "install TeX Live in the image (apt-get install texlive-latex-base texlive-latex-recommended)")
	} else {
		hints = append(hints, "install a TeX distribution providing "+program)
	}
	hints = append(hints, "or point --latex-cmd-template at another compiler")
	return formatHints(hints)
}

// ForConverterNotFound returns hints when the image converter is not on PATH.
// ImageMagick 7 ships "magick" and may not install the legacy "convert".
func ForConverterNotFound(program string) string {
	var hints []string
	if filepath.Base(program) == "convert" {
		hints = append(hints, "with ImageMagick 7 use --convert-cmd magick")
	}
	if IsInContainer() {
		hints = append(hints, "install ImageMagick and Ghostscript in the image")
	} else {
		hints = append(hints, "install ImageMagick and Ghostscript")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/tex2im/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/tex2im/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("the output directory is not created automatically; create it first")
}

// ForColorSpec returns hints for malformed color specs.
func ForColorSpec() string {
	return format(`use an xcolor name ("blue", "red!50") or mode:value ("HTML:FF7F00", "rgb:0.2,0.4,0.6")`)
}

// ForPreamble returns hints for unreadable preamble files.
func ForPreamble() string {
	return format("use --no-preamble to skip ~/.tex2im_preamble and ./.tex2im_preamble")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
