package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2im [flags] <snippet|file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render LaTeX snippets to images. Each argument is a LaTeX snippet, or a")
	fmt.Fprintln(w, "file holding one ('#' comment lines are ignored).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -s, --font-size <n>            Font size in points (default 12)")
	fmt.Fprintln(w, "  -t, --text-color <c>           Text color (default black)")
	fmt.Fprintln(w, "  -b, --background-color <c>     Background color (default white)")
	fmt.Fprintln(w, "                                 Colors: xcolor name (\"blue\", \"red!50\")")
	fmt.Fprintln(w, "                                 or mode:value (\"HTML:FF7F00\")")
	fmt.Fprintln(w, "  -x, --preamble <file>          Extra preamble lines")
	fmt.Fprintln(w, "      --no-preamble              Skip ./.tex2im_preamble and ~/.tex2im_preamble")
	fmt.Fprintln(w, "  -n, --no-equation-environment  Do not wrap the snippet in eqnarray*")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image:")
	fmt.Fprintln(w, "  -f, --output-format <ext>      Image format (default png); html embeds a PNG")
	fmt.Fprintln(w, "  -D, --density <d>              Resolution (default 150x150)")
	fmt.Fprintln(w, "  -B, --border <n>               Border in pixels (default 0)")
	fmt.Fprintln(w, "  -z, --transparent-background   Transparent background")
	fmt.Fprintln(w, "  -a, --anti-aliasing <mode>     auto, on, off (default auto: off when transparent)")
	fmt.Fprintln(w, "  -C, --no-comment               Do not store the snippet in the image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output-basename <path>   Output basename or existing directory")
	fmt.Fprintln(w, "                                 (default: input file name, or out[-N])")
	fmt.Fprintln(w, "      --stdout                   Write the image to stdout")
	fmt.Fprintln(w, "  -k, --keep-files               Keep the temporary work directory")
	fmt.Fprintln(w, "  -w, --workers <n>              Parallel snippets, 0 = auto (max 8)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tools:")
	fmt.Fprintln(w, "      --latex-cmd-template <s>   Compiler command, $INPUT_FILE is the document")
	fmt.Fprintln(w, "                                 (default \"pdflatex -interaction=nonstopmode $INPUT_FILE\")")
	fmt.Fprintln(w, "      --convert-cmd <s>          Converter program (default convert; magick for ImageMagick 7)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -c, --config <name>            Config file name or path")
	fmt.Fprintln(w, "      --dry-run                  Print documents and commands, run nothing")
	fmt.Fprintln(w, "      --doctor                   Check the compiler and converter (--json for JSON)")
	fmt.Fprintln(w, "  -v, --verbose                  Log each step")
	fmt.Fprintln(w, "  -d, --debug                    Log debug details")
	fmt.Fprintln(w, "  -q, --quiet                    Suppress all logging")
	fmt.Fprintln(w, "      --version                  Print version")
	fmt.Fprintln(w, "  -h, --help                     Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEX2IM_CONFIG, TEX2IM_LATEX_CMD, TEX2IM_CONVERT_CMD, TEX2IM_DENSITY,")
	fmt.Fprintln(w, "  TEX2IM_FORMAT, TEX2IM_WORKERS")
}
