package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tex2im "github.com/alnah/go-tex2im"
	"github.com/alnah/go-tex2im/internal/hints"
)

// ErrDoctorFailed is returned when a required tool or resource is missing.
var ErrDoctorFailed = errors.New("environment is not ready")

// versionTimeout bounds each "--version" probe.
const versionTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string     `json:"status"` // "ready", "warnings", "errors"
	Compiler  toolInfo   `json:"compiler"`
	Converter toolInfo   `json:"converter"`
	Preamble  string     `json:"preamble,omitempty"`
	Env       envInfo    `json:"environment"`
	System    systemInfo `json:"system"`
	Warnings  []string   `json:"warnings,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one external program.
type toolInfo struct {
	Command string `json:"command"`
	Program string `json:"program"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctor checks the tools req would use and prints a report.
// Returns ErrDoctorFailed when errors were found; warnings alone pass.
func runDoctor(ctx context.Context, req tex2im.Request, jsonOutput bool, env *Environment) error {
	result := diagnose(ctx, req, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ErrDoctorFailed
	}
	return nil
}

// diagnose performs all diagnostic checks.
func diagnose(ctx context.Context, req tex2im.Request, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	result.Compiler = checkTool(ctx, env, req.LatexCmd, firstWord(req.LatexCmd), "--version")
	if !result.Compiler.Found {
		result.Errors = append(result.Errors,
			fmt.Sprintf("LaTeX compiler %q not found on PATH", result.Compiler.Program))
	}

	result.Converter = checkTool(ctx, env, req.ConvertCmd, firstWord(req.ConvertCmd), "-version")
	if !result.Converter.Found {
		result.Errors = append(result.Errors,
			fmt.Sprintf("converter %q not found on PATH", result.Converter.Program))
	}

	checkPreamble(result, req)
	checkSystem(result, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkTool locates program on PATH and asks it for its version.
func checkTool(ctx context.Context, env *Environment, command, program, versionFlag string) toolInfo {
	info := toolInfo{Command: command, Program: program}
	if program == "" {
		return info
	}

	path, err := env.LookPath(program)
	if err != nil {
		return info
	}
	info.Found = true
	info.Path = path

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := env.Runner.Run(ctx, os.TempDir(), tex2im.Command{Name: path, Args: []string{versionFlag}})
	if err == nil {
		first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
		info.Version = strings.TrimSpace(first)
	}
	return info
}

// checkPreamble reports which preamble file a render would use.
func checkPreamble(result *doctorResult, req tex2im.Request) {
	path, err := tex2im.FindPreamble(req)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("preamble search skipped: %v", err))
		return
	}
	result.Preamble = path
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("TEX2IM_CONTAINER") == "1" {
		return true, "TEX2IM_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the work directory parent is writable.
func checkSystem(result *doctorResult, env *Environment) {
	tmpDir := env.TempDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	result.System.TempDir = tmpDir

	dir, err := os.MkdirTemp(tmpDir, "tex2im-doctor-")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.RemoveAll(dir)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "tex2im doctor")
	fmt.Fprintln(w)

	printTool(w, "LaTeX compiler", r.Compiler, hints.ForCompilerNotFound)
	printTool(w, "Converter", r.Converter, hints.ForConverterNotFound)

	fmt.Fprintln(w, "Preamble")
	if r.Preamble != "" {
		fmt.Fprintf(w, "  [OK] Using %s\n", r.Preamble)
	} else {
		fmt.Fprintln(w, "  [OK] None")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: %s (writable)\n", filepath.Clean(r.System.TempDir))
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: %s (not writable)\n", filepath.Clean(r.System.TempDir))
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printTool prints one tool section, with an install hint when missing.
func printTool(w io.Writer, title string, t toolInfo, hint func(string) string) {
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  Command: %s\n", t.Command)
	if t.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", t.Path)
		if t.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %q not found%s\n", t.Program, hint(t.Program))
	}
	fmt.Fprintln(w)
}
