package tex2im

import (
	"fmt"
	"strings"
)

// Names the generated document binds the two colors to.
const (
	textColorName       = "text_color"
	backgroundColorName = "background_color"
)

// Assemble builds the LaTeX document for a snippet. preamble is inserted
// verbatim before \begin{document} when non-empty.
func Assemble(req Request, snippet, preamble string) (string, error) {
	text, err := ParseColor(req.TextColor)
	if err != nil {
		return "", fmt.Errorf("text color: %w", err)
	}
	background, err := ParseColor(req.BackgroundColor)
	if err != nil {
		return "", fmt.Errorf("background color: %w", err)
	}

	lines := []string{
		fmt.Sprintf(`\documentclass[%dpt]{article}`, req.FontSize),
		`\usepackage{xcolor}`,
		`\pagestyle{empty}`,
		text.Define(textColorName),
		background.Define(backgroundColorName),
		`\pagecolor{` + backgroundColorName + `}`,
	}

	if preamble != "" {
		lines = append(lines, preamble)
	}

	lines = append(lines,
		`\begin{document}{`,
		`\color{`+textColorName+`}`,
	)
	if !req.NoEquationEnvironment {
		lines = append(lines, `\begin{eqnarray*}`)
	}

	lines = append(lines, snippet)

	if !req.NoEquationEnvironment {
		lines = append(lines, `\end{eqnarray*}`)
	}
	lines = append(lines, `}\end{document}`)

	return strings.Join(lines, "\n"), nil
}
