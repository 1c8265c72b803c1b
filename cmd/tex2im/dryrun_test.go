package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestDryRun(t *testing.T) {
	t.Parallel()

	t.Run("prints plan without running tools", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		if code := te.run("--dry-run", "-k", `\alpha`, `\beta`); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, te.stderr)
		}
		if n := len(te.runner.commands()); n != 0 {
			t.Errorf("dry run ran %d commands", n)
		}

		out := te.stdout.String()
		for _, want := range []string{
			`% snippet 1: \alpha`,
			`% snippet 2: \beta`,
			`\begin{document}`,
			"% compile: pdflatex -interaction=nonstopmode out.tex",
			"% convert: convert -trim",
			"% output: " + te.path("out-0.png"),
			"% output: " + te.path("out-1.png"),
		} {
			if !strings.Contains(out, want) {
				t.Errorf("dry run output missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "Generated files") {
			t.Error("dry run must not report kept files")
		}
	})

	t.Run("stdout destination", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		if code := te.run("--dry-run", "--stdout", "x"); code != ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(te.stdout.String(), "% output: <stdout>") {
			t.Errorf("output:\n%s", te.stdout)
		}
	})

	t.Run("names the preamble file", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		writeTestFile(t, te.path("defs.tex"), `\newcommand{\R}{\mathbb{R}}`)
		if code := te.run("--dry-run", "-x", "defs.tex", `\R`); code != ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		out := te.stdout.String()
		if !strings.Contains(out, "% preamble: "+te.path("defs.tex")) {
			t.Errorf("output missing preamble line:\n%s", out)
		}
		if !strings.Contains(out, `\newcommand{\R}{\mathbb{R}}`) {
			t.Errorf("document missing preamble content:\n%s", out)
		}
	})

	t.Run("missing explicit preamble is skipped", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		if code := te.run("--dry-run", "-x", "missing.tex", "--no-preamble", "a"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, te.stderr)
		}
		if strings.Contains(te.stdout.String(), "% preamble:") {
			t.Errorf("no preamble should be used:\n%s", te.stdout)
		}
	})

	t.Run("each invalid snippet is reported", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t)
		code := te.run("--dry-run", "-t", "x:y:z", "a", "b")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		out := te.stdout.String()
		if strings.Count(out, "% error:") != 2 {
			t.Errorf("expected an error line per snippet:\n%s", out)
		}
	})
}

func TestWriteDocument(t *testing.T) {
	t.Parallel()

	doc := "\\documentclass{article}\n\\begin{document}x\\end{document}"

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writeDocument(&buf, doc, false)
		if buf.String() != doc+"\n" {
			t.Errorf("writeDocument() = %q", buf.String())
		}
	})

	t.Run("highlighted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writeDocument(&buf, doc, true)
		out := buf.String()
		if !strings.Contains(out, "\x1b[") {
			t.Errorf("expected ANSI escapes, got %q", out)
		}
		if !strings.Contains(out, "documentclass") {
			t.Errorf("highlighted output lost content: %q", out)
		}
	})
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	if isTerminal(io.Discard) {
		t.Error("io.Discard is not a terminal")
	}
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
