package tex2im

import (
	"strconv"
	"strings"
)

// Fixed file names inside a work directory.
const (
	DocumentFile = "out.tex"
	PDFFile      = "out.pdf"
)

// attribution is the first line of the comment embedded into images.
const attribution = "# This image was created with tex2im (https://github.com/alnah/go-tex2im)"

// inputFileReplacer substitutes the $INPUT_FILE placeholder. Other $-names
// are left alone so the template can still use shell variables.
var inputFileReplacer = strings.NewReplacer(
	"${INPUT_FILE}", DocumentFile,
	"$INPUT_FILE", DocumentFile,
)

// LatexCommand renders the compiler command template.
func LatexCommand(template string) string {
	return inputFileReplacer.Replace(template)
}

// Command is a program invocation without a shell.
type Command struct {
	Name string
	Args []string
}

// String renders the command for logs. Arguments containing whitespace are
// double-quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

// antialiasFlag picks the converter flag. In ImageMagick "+antialias"
// disables anti-aliasing and "-antialias" enables it.
func antialiasFlag(mode Antialias, transparent bool) string {
	switch mode {
	case AntialiasOff:
		return "+antialias"
	case AntialiasOn:
		return "-antialias"
	default:
		if transparent {
			return "+antialias"
		}
		return "-antialias"
	}
}

// ConvertCommand builds the converter invocation that turns out.pdf into
// outputFile. snippet is embedded into the comment field unless disabled.
func ConvertCommand(req Request, snippet, outputFile string) Command {
	fields := strings.Fields(req.ConvertCmd)
	cmd := Command{Name: fields[0]}
	args := append([]string{}, fields[1:]...)

	args = append(args,
		"-trim",
		"-border", strconv.Itoa(req.Border),
		"-bordercolor", req.BackgroundColor,
		"+adjoin",
		"-density", req.Density,
		antialiasFlag(req.Antialias, req.Transparent),
	)

	if req.Transparent {
		args = append(args, "-transparent", req.BackgroundColor)
	}

	if !req.NoComment {
		args = append(args, "-comment", ImageComment(req.Invocation, snippet))
	}

	cmd.Args = append(args, PDFFile, outputFile)
	return cmd
}

// ImageComment builds the text stored in the image comment field: an
// attribution line, the command line, and the snippet. Backslashes are
// doubled because the converter treats them as escapes.
func ImageComment(invocation []string, snippet string) string {
	quoted := make([]string, len(invocation))
	for i, a := range invocation {
		quoted[i] = quoteArg(a)
	}

	lines := []string{
		attribution,
		escapeBackslashes("# " + strings.Join(quoted, " ")),
		escapeBackslashes(snippet),
		"",
	}
	return strings.Join(lines, "\n")
}

func quoteArg(a string) string {
	if strings.Contains(a, " ") {
		return `"` + a + `"`
	}
	return a
}

func escapeBackslashes(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}
