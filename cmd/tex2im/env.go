package main

import (
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"

	tex2im "github.com/alnah/go-tex2im"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process state, and the subprocess runner.
type Environment struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Getwd       func() (string, error)
	UserHomeDir func() (string, error)
	Getenv      func(string) string
	Environ     func() []string
	LookPath    func(string) (string, error)
	IsTerminal  func(io.Writer) bool
	Runner      tex2im.CommandRunner
	TempDir     string // parent of work directories, "" = os.TempDir()
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getwd:       os.Getwd,
		UserHomeDir: os.UserHomeDir,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		LookPath:    exec.LookPath,
		IsTerminal:  isTerminal,
		Runner:      &tex2im.ExecRunner{},
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
