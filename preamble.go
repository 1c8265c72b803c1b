package tex2im

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tex2im/internal/fileutil"
)

// Conventional preamble file names, searched in this order after an
// explicit --preamble file.
const (
	PreambleFileName = ".tex2im_preamble"
	HeaderFileName   = ".tex2im_header"
)

// PreambleCandidates lists the files consulted for extra preamble lines,
// in priority order. The explicit file always comes first; the dotfiles are
// only listed when the search is enabled.
func PreambleCandidates(req Request) ([]string, error) {
	var candidates []string

	if req.Preamble != "" {
		p := req.Preamble
		if !filepath.IsAbs(p) {
			p = filepath.Join(req.WorkingDir, p)
		}
		candidates = append(candidates, p)
	}

	if req.NoPreamble {
		return candidates, nil
	}

	if req.HomeDir == "" {
		return nil, ErrNoHomeDir
	}

	return append(candidates,
		filepath.Join(req.WorkingDir, PreambleFileName),
		filepath.Join(req.HomeDir, PreambleFileName),
		filepath.Join(req.HomeDir, HeaderFileName),
	), nil
}

// FindPreamble returns the first candidate that exists as a regular file,
// or "" when none does.
func FindPreamble(req Request) (string, error) {
	candidates, err := PreambleCandidates(req)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if fileutil.FileExists(c) {
			return c, nil
		}
	}
	return "", nil
}

// LoadPreamble reads the preamble file selected by FindPreamble.
// Returns "" when no preamble file applies.
func LoadPreamble(req Request) (string, error) {
	path, err := FindPreamble(req)
	if err != nil || path == "" {
		return "", err
	}
	return readPreamble(path)
}

func readPreamble(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadPreamble, err)
	}
	return strings.TrimRight(string(content), "\n"), nil
}
