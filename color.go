package tex2im

import (
	"fmt"
	"strings"
)

// Color is a parsed xcolor color spec.
// A named color ("blue", "red!50") has an empty Mode.
type Color struct {
	Mode  string
	Value string
}

// ParseColor parses a color spec: either a predefined xcolor name, or a
// "mode:value" pair such as "HTML:FF7F00".
// Specs with more than one colon are rejected rather than guessed at.
func ParseColor(spec string) (Color, error) {
	if strings.TrimSpace(spec) == "" {
		return Color{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	toks := strings.Split(spec, ":")
	switch len(toks) {
	case 1:
		return Color{Value: spec}, nil
	case 2:
		if toks[0] == "" || toks[1] == "" {
			return Color{}, fmt.Errorf("%w: %q (want mode:value)", ErrInvalidColor, spec)
		}
		return Color{Mode: toks[0], Value: toks[1]}, nil
	default:
		return Color{}, fmt.Errorf("%w: %q (more than one ':')", ErrInvalidColor, spec)
	}
}

// Named reports whether the color is a predefined xcolor name.
func (c Color) Named() bool {
	return c.Mode == ""
}

// Define returns the LaTeX line that binds name to this color.
func (c Color) Define(name string) string {
	if c.Named() {
		return fmt.Sprintf(`\colorlet{%s}{%s}`, name, c.Value)
	}
	return fmt.Sprintf(`\definecolor{%s}{%s}{%s}`, name, c.Mode, c.Value)
}

// String returns the spec the color was parsed from.
func (c Color) String() string {
	if c.Named() {
		return c.Value
	}
	return c.Mode + ":" + c.Value
}
