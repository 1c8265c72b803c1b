package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	tex2im "github.com/alnah/go-tex2im"
	"github.com/alnah/go-tex2im/internal/config"
	"github.com/alnah/go-tex2im/internal/hints"
)

// exitCommandNotFound is the shell's exit status for an unknown command.
const exitCommandNotFound = 127

// snippetRenderer renders one request. Satisfied by *tex2im.Renderer.
type snippetRenderer interface {
	Render(ctx context.Context, req tex2im.Request) (*tex2im.Result, error)
}

// Compile-time interface implementation check.
var _ snippetRenderer = (*tex2im.Renderer)(nil)

// snippetResult holds the outcome of a single render.
type snippetResult struct {
	Arg      string
	Result   *tex2im.Result
	Err      error
	Duration time.Duration
}

// renderBatch renders requests concurrently with at most workers goroutines.
// Requests with the same non-empty key (their output path) form one job and
// are rendered in input order, so the last of them wins. Results are
// returned in input order.
func renderBatch(ctx context.Context, r snippetRenderer, args []string, reqs []tex2im.Request, keys []string, workers int) []snippetResult {
	if len(reqs) == 0 {
		return nil
	}

	groups := groupByKey(len(reqs), keys)
	concurrency := min(max(workers, 1), len(groups))

	results := make([]snippetResult, len(reqs))
	var wg sync.WaitGroup
	jobs := make(chan []int, len(groups))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for group := range jobs {
				for _, idx := range group {
					results[idx] = renderOne(ctx, r, args[idx], reqs[idx])
				}
			}
		}()
	}

	for _, g := range groups {
		jobs <- g
	}
	close(jobs)

	wg.Wait()
	return results
}

func renderOne(ctx context.Context, r snippetRenderer, arg string, req tex2im.Request) snippetResult {
	if ctx.Err() != nil {
		return snippetResult{Arg: arg, Err: ctx.Err()}
	}
	start := time.Now()
	res, err := r.Render(ctx, req)
	return snippetResult{
		Arg:      arg,
		Result:   res,
		Err:      err,
		Duration: time.Since(start),
	}
}

// groupByKey splits indices 0..n-1 into groups sharing a key, ordered by
// first occurrence. Missing or empty keys get a group of their own.
func groupByKey(n int, keys []string) [][]int {
	groups := make([][]int, 0, n)
	byKey := make(map[string]int)
	for i := 0; i < n; i++ {
		var key string
		if i < len(keys) {
			key = keys[i]
		}
		if key == "" {
			groups = append(groups, []int{i})
			continue
		}
		if g, ok := byKey[key]; ok {
			groups[g] = append(groups[g], i)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, []int{i})
	}
	return groups
}

// resolvePoolSize determines the number of concurrent renders.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > config.MaxWorkers {
		return config.MaxWorkers
	}
	return n
}

// reportResults logs each outcome, prints kept work directories, and
// returns an error covering every snippet that could not be delivered.
// Tool failures alone are not errors.
func reportResults(results []snippetResult, env *Environment, logger *log.Logger, streamed bool) error {
	keepOut := env.Stdout
	if streamed {
		keepOut = env.Stderr
	}

	var errs []error
	for _, r := range results {
		if r.Result != nil {
			reportToolProblems(env, r.Result)
			if r.Result.WorkDir != "" {
				fmt.Fprintf(keepOut, "Generated files were written to %s.\n", r.Result.WorkDir)
			}
		}
		if r.Err != nil {
			logger.Error("render failed", "snippet", r.Arg, "err", r.Err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Arg, r.Err))
			continue
		}
		if r.Result.Streamed {
			logger.Info("wrote image to stdout", "snippet", r.Arg, "duration", r.Duration.Round(time.Millisecond))
		} else {
			logger.Info("wrote image", "path", r.Result.Path, "duration", r.Duration.Round(time.Millisecond))
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return fmt.Errorf("%d of %d snippets failed: %w", len(errs), len(results), errors.Join(errs...))
	}
}

// reportToolProblems prints install hints when a tool was not found.
func reportToolProblems(env *Environment, res *tex2im.Result) {
	if res.Plan == nil {
		return
	}
	var exitErr *exec.ExitError
	if errors.As(res.Compile.Err, &exitErr) && exitErr.ExitCode() == exitCommandNotFound {
		program := firstWord(res.Plan.LatexCommand)
		fmt.Fprintf(env.Stderr, "LaTeX compiler %q not found%s\n", program, hints.ForCompilerNotFound(program))
	}
	if errors.Is(res.Convert.Err, exec.ErrNotFound) {
		program := res.Plan.ConvertCommand.Name
		fmt.Fprintf(env.Stderr, "converter %q not found%s\n", program, hints.ForConverterNotFound(program))
	}
}

// firstWord returns the program name of a shell command line.
func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
