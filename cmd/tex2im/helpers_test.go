package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tex2im "github.com/alnah/go-tex2im"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake tools and environment
// ---------------------------------------------------------------------------

// fakeRunner plays the compiler (writes out.pdf) and the converter (writes a
// PNG to its last argument). Version probes echo a fixed line.
type fakeRunner struct {
	failCompile    bool
	convertMissing bool
	echoDocument   bool   // the converter writes out.tex instead of a PNG
	slowDocument   string // the converter stalls on documents containing this

	mu    sync.Mutex
	calls []tex2im.Command
}

func (f *fakeRunner) Run(_ context.Context, dir string, cmd tex2im.Command) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if len(cmd.Args) == 1 && strings.HasSuffix(cmd.Args[0], "version") {
		return []byte(filepath.Base(cmd.Name) + " 1.0\nextra"), nil
	}

	if cmd.Name == tex2im.ShellCommand("").Name {
		if f.failCompile {
			return []byte("! LaTeX Error"), errors.New("exit status 1")
		}
		return nil, os.WriteFile(filepath.Join(dir, tex2im.PDFFile), []byte("%PDF"), 0644)
	}

	if f.convertMissing {
		return nil, fmt.Errorf("running %s: %w", cmd.Name, exec.ErrNotFound)
	}
	payload := tinyPNG()
	if f.echoDocument || f.slowDocument != "" {
		doc, err := os.ReadFile(filepath.Join(dir, tex2im.DocumentFile))
		if err != nil {
			return nil, err
		}
		if f.slowDocument != "" && strings.Contains(string(doc), f.slowDocument) {
			time.Sleep(50 * time.Millisecond)
		}
		if f.echoDocument {
			payload = doc
		}
	}
	return nil, os.WriteFile(filepath.Join(dir, cmd.Args[len(cmd.Args)-1]), payload, 0644)
}

func (f *fakeRunner) commands() []tex2im.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tex2im.Command(nil), f.calls...)
}

func tinyPNG() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)))
	return buf.Bytes()
}

// testEnv is an isolated Environment with captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *fakeRunner
	wd     string
	home   string
	vars   map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		runner: &fakeRunner{},
		wd:     t.TempDir(),
		home:   t.TempDir(),
		vars:   map[string]string{},
	}
	te.Environment = &Environment{
		Stdout:      te.stdout,
		Stderr:      te.stderr,
		Getwd:       func() (string, error) { return te.wd, nil },
		UserHomeDir: func() (string, error) { return te.home, nil },
		Getenv:      func(k string) string { return te.vars[k] },
		Environ: func() []string {
			var kv []string
			for k, v := range te.vars {
				kv = append(kv, k+"="+v)
			}
			return kv
		},
		LookPath:   func(name string) (string, error) { return "/usr/bin/" + name, nil },
		IsTerminal: func(io.Writer) bool { return false },
		Runner:     te.runner,
		TempDir:    t.TempDir(),
	}
	return te
}

// run invokes runMain with the program name prepended.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"tex2im"}, args...), te.Environment)
}

func (te *testEnv) path(name string) string {
	return filepath.Join(te.wd, name)
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
