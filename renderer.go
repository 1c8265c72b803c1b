package tex2im

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-tex2im/internal/fileutil"
)

// File permission constants.
const (
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Stage names a step of the render pipeline that runs an external tool.
type Stage string

// Pipeline stages backed by subprocesses.
const (
	StageCompile Stage = "compile"
	StageConvert Stage = "convert"
)

// StageResult records one subprocess run. A failed stage does not stop the
// pipeline: later stages run with whatever artifacts exist.
type StageResult struct {
	Stage    Stage
	Command  string
	Output   []byte
	Err      error
	Duration time.Duration
}

// Failed reports whether the tool could not run or exited non-zero.
func (s StageResult) Failed() bool {
	return s.Err != nil
}

// Plan is everything decided before any tool runs.
type Plan struct {
	Snippet        string
	Document       string
	PreambleFile   string // "" when no preamble file applies
	LatexCommand   string
	ConvertCommand Command
	Output         Output
}

// Result is the outcome of a render.
type Result struct {
	Plan     *Plan
	Compile  StageResult
	Convert  StageResult
	Path     string // delivered file; "" when streamed to stdout
	Streamed bool
	WorkDir  string // set only when the work directory was kept
}

// Failed reports whether any tool stage failed.
func (r *Result) Failed() bool {
	return r.Compile.Failed() || r.Convert.Failed()
}

// Renderer turns LaTeX snippets into images using an external compiler and
// converter. It holds no per-render state and is safe for concurrent use;
// each render works in its own temporary directory.
type Renderer struct {
	runner  CommandRunner
	logger  *log.Logger
	stdout  io.Writer
	tempDir string

	stdoutMu sync.Mutex
}

// NewRenderer creates a Renderer. By default it runs real processes, logs
// nowhere, and streams to os.Stdout.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		runner: &ExecRunner{},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan validates req and prepares the document, commands, and output
// location without writing anything.
func (r *Renderer) Plan(req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snippet, err := LoadSnippet(req.Source)
	if err != nil {
		return nil, err
	}

	preambleFile, err := FindPreamble(req)
	if err != nil {
		return nil, err
	}
	var preamble string
	if preambleFile != "" {
		if preamble, err = readPreamble(preambleFile); err != nil {
			return nil, err
		}
	}

	doc, err := Assemble(req, snippet, preamble)
	if err != nil {
		return nil, err
	}

	out, err := ResolveOutput(OutputRequest{
		InputFile:  req.Source.File,
		Basename:   req.OutputBasename,
		WorkingDir: req.WorkingDir,
		Index:      req.Index,
		Format:     req.Format,
	})
	if err != nil {
		return nil, err
	}

	return &Plan{
		Snippet:        snippet,
		Document:       doc,
		PreambleFile:   preambleFile,
		LatexCommand:   LatexCommand(req.LatexCmd),
		ConvertCommand: ConvertCommand(req, snippet, out.File),
		Output:         out,
	}, nil
}

// Render runs the full pipeline for one snippet: write the document, compile
// it, convert the PDF, optionally wrap it in HTML, and deliver the result.
//
// Tool failures are logged and recorded in the Result; the pipeline carries
// on so partial artifacts still reach the user. The returned error covers
// everything else (invalid request, filesystem failures, cancellation).
func (r *Renderer) Render(ctx context.Context, req Request) (result *Result, err error) {
	plan, err := r.Plan(req)
	if err != nil {
		return nil, err
	}
	result = &Result{Plan: plan}

	workDir, err := os.MkdirTemp(r.tempDir, "tex2im-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkDir, err)
	}
	r.logger.Info("created work directory", "dir", workDir)

	defer func() {
		if req.KeepFiles {
			result.WorkDir = workDir
			return
		}
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			r.logger.Warn("removing work directory", "dir", workDir, "err", rmErr)
			return
		}
		r.logger.Info("deleted work directory", "dir", workDir)
	}()

	docPath := filepath.Join(workDir, DocumentFile)
	// #nosec G306 -- the document is not sensitive
	if err := os.WriteFile(docPath, []byte(plan.Document), filePermissions); err != nil {
		return result, fmt.Errorf("%w: writing document: %v", ErrWorkDir, err)
	}
	r.logger.Info("wrote LaTeX document", "path", docPath)

	result.Compile = r.runStage(ctx, workDir, StageCompile, plan.LatexCommand, ShellCommand(plan.LatexCommand))
	if result.Compile.Failed() {
		r.logger.Error("LaTeX command returned non-zero status",
			"command", result.Compile.Command,
			"err", result.Compile.Err,
			"document", plan.Document,
			"output", string(result.Compile.Output))
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	result.Convert = r.runStage(ctx, workDir, StageConvert, plan.ConvertCommand.String(), plan.ConvertCommand)
	if result.Convert.Failed() {
		r.logger.Error("convert command returned non-zero status",
			"command", result.Convert.Command,
			"err", result.Convert.Err,
			"output", string(result.Convert.Output))
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	if !fileutil.FileExists(filepath.Join(workDir, plan.Output.File)) {
		return result, fmt.Errorf("%w: %s", ErrNoImage, plan.Output.File)
	}

	final := plan.Output.File
	if plan.Output.HTML() {
		final, err = embedHTMLFile(workDir, plan.Output)
		if err != nil {
			return result, err
		}
	}

	if err := r.deliver(req, workDir, final, plan.Output, result); err != nil {
		return result, err
	}
	return result, nil
}

// runStage executes one tool and times it.
func (r *Renderer) runStage(ctx context.Context, workDir string, stage Stage, display string, cmd Command) StageResult {
	r.logger.Info("running "+string(stage), "command", display)

	start := time.Now()
	out, err := r.runner.Run(ctx, workDir, cmd)
	res := StageResult{
		Stage:    stage,
		Command:  display,
		Output:   out,
		Err:      err,
		Duration: time.Since(start),
	}
	r.logger.Debug(string(stage)+" finished", "duration", res.Duration.Round(time.Millisecond))
	return res
}

// deliver streams the final file to stdout or copies it to the output
// directory. The output directory is never created.
func (r *Renderer) deliver(req Request, workDir, final string, out Output, result *Result) error {
	src := filepath.Join(workDir, final)

	if req.Stdout {
		data, err := os.ReadFile(src) // #nosec G304 -- work directory file
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		r.stdoutMu.Lock()
		_, err = r.stdout.Write(data)
		r.stdoutMu.Unlock()
		if err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		result.Streamed = true
		return nil
	}

	dst := filepath.Join(out.Dir, final)
	r.logger.Info("copying file", "to", dst)
	if err := fileutil.CopyFile(src, dst, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	result.Path = dst
	return nil
}
