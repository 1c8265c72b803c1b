package tex2im

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-tex2im/internal/fileutil"
)

// commentLine matches lines whose first non-whitespace character is '#'.
var commentLine = regexp.MustCompile(`^\s*#`)

// SourceFromArg decides whether a command-line argument names a snippet file
// or is the snippet itself. Relative paths resolve against workingDir.
// File paths are returned absolute.
func SourceFromArg(arg, workingDir string) Source {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(workingDir, path)
	}
	if arg != "" && fileutil.FileExists(path) {
		return Source{File: filepath.Clean(path)}
	}
	return Source{Snippet: arg}
}

// LoadSnippet returns the LaTeX text for src. Snippets read from a file have
// their comment lines removed and surrounding whitespace trimmed; inline
// snippets are returned untouched.
func LoadSnippet(src Source) (string, error) {
	if !src.IsFile() {
		return src.Snippet, nil
	}

	content, err := os.ReadFile(src.File) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	return StripComments(string(content)), nil
}

// StripComments drops '#' comment lines and trims the result.
func StripComments(text string) string {
	lines := strings.SplitAfter(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if commentLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, ""))
}
