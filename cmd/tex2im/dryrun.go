package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	tex2im "github.com/alnah/go-tex2im"
)

// Chroma settings for highlighting documents on a terminal.
const (
	highlightLexer     = "tex"
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// dryRun prints what would be run for each snippet without running it.
func (inv *invocation) dryRun(s *settings) error {
	w := inv.env.Stdout
	highlight := inv.env.IsTerminal(w)
	renderer := inv.newRenderer()

	var errs []error
	for i, req := range inv.requests(s.base) {
		arg := inv.positional[i]
		if i > 0 {
			fmt.Fprintln(w)
		}
		plan, err := renderer.Plan(req)
		if err != nil {
			fmt.Fprintf(w, "%% snippet %d: %s\n%% error: %v\n", i+1, arg, err)
			errs = append(errs, fmt.Errorf("%s: %w", arg, err))
			continue
		}
		printPlan(w, i+1, arg, plan, req.Stdout, highlight)
	}
	return errors.Join(errs...)
}

// printPlan writes one snippet's document and commands.
func printPlan(w io.Writer, n int, arg string, plan *tex2im.Plan, stdout, highlight bool) {
	fmt.Fprintf(w, "%% snippet %d: %s\n", n, arg)
	if plan.PreambleFile != "" {
		fmt.Fprintf(w, "%% preamble: %s\n", plan.PreambleFile)
	}
	writeDocument(w, plan.Document, highlight)
	fmt.Fprintf(w, "%% compile: %s\n", plan.LatexCommand)
	fmt.Fprintf(w, "%% convert: %s\n", plan.ConvertCommand)
	if stdout {
		fmt.Fprintln(w, "% output: <stdout>")
	} else {
		fmt.Fprintf(w, "%% output: %s\n", plan.Output.Path())
	}
}

// writeDocument prints the LaTeX source, highlighted when requested.
// Falls back to plain text if highlighting fails.
func writeDocument(w io.Writer, doc string, highlight bool) {
	if highlight {
		if err := quick.Highlight(w, doc+"\n", highlightLexer, highlightFormatter, highlightStyle); err == nil {
			return
		}
	}
	fmt.Fprintln(w, doc)
}
