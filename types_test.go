package tex2im

import (
	"errors"
	"testing"
)

// validRequest returns a request that passes Validate.
func validRequest() Request {
	req := DefaultRequest(Source{Snippet: `x^2`})
	req.WorkingDir = "/tmp"
	req.HomeDir = "/home/nobody"
	return req
}

// ---------------------------------------------------------------------------
// TestParseAntialias - Anti-aliasing modes
// ---------------------------------------------------------------------------

func TestParseAntialias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Antialias
		wantErr bool
	}{
		{"auto", AntialiasAuto, false},
		{"-1", AntialiasAuto, false},
		{"", AntialiasAuto, false},
		{"on", AntialiasOn, false},
		{"1", AntialiasOn, false},
		{"ON", AntialiasOn, false},
		{"off", AntialiasOff, false},
		{"0", AntialiasOff, false},
		{" false ", AntialiasOff, false},
		{"2", AntialiasAuto, true},
		{"maybe", AntialiasAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAntialias(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAntialias) {
					t.Errorf("ParseAntialias(%q) error = %v, want ErrInvalidAntialias", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAntialias(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAntialias(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAntialias_String(t *testing.T) {
	t.Parallel()

	for _, mode := range []Antialias{AntialiasAuto, AntialiasOn, AntialiasOff} {
		got, err := ParseAntialias(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseAntialias(%q) = %v, %v; want %v", mode.String(), got, err, mode)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDefaultRequest / TestRequest_WithIndex
// ---------------------------------------------------------------------------

func TestDefaultRequest(t *testing.T) {
	t.Parallel()

	req := DefaultRequest(Source{Snippet: "a"})

	if req.FontSize != 12 {
		t.Errorf("FontSize = %d, want 12", req.FontSize)
	}
	if req.TextColor != "black" || req.BackgroundColor != "white" {
		t.Errorf("colors = %q/%q, want black/white", req.TextColor, req.BackgroundColor)
	}
	if req.Density != "150x150" {
		t.Errorf("Density = %q, want 150x150", req.Density)
	}
	if req.Format != "png" {
		t.Errorf("Format = %q, want png", req.Format)
	}
	if req.Antialias != AntialiasAuto {
		t.Errorf("Antialias = %v, want auto", req.Antialias)
	}
	if req.Border != 0 {
		t.Errorf("Border = %d, want 0", req.Border)
	}
	if req.Index != nil {
		t.Errorf("Index = %v, want nil", *req.Index)
	}
}

func TestRequest_WithIndex(t *testing.T) {
	t.Parallel()

	base := validRequest()
	a := base.WithIndex(0)
	b := base.WithIndex(1)

	if base.Index != nil {
		t.Error("WithIndex mutated the receiver")
	}
	if a.Index == nil || *a.Index != 0 {
		t.Errorf("a.Index = %v, want 0", a.Index)
	}
	if b.Index == nil || *b.Index != 1 {
		t.Errorf("b.Index = %v, want 1", b.Index)
	}
}

func TestRequest_IsHTML(t *testing.T) {
	t.Parallel()

	for format, want := range map[string]bool{"html": true, "HTML": true, "png": false, "htm": false} {
		req := validRequest()
		req.Format = format
		if got := req.IsHTML(); got != want {
			t.Errorf("IsHTML() with format %q = %v, want %v", format, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRequest_Validate - Request validation
// ---------------------------------------------------------------------------

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Request) {},
			wantErr: nil,
		},
		{
			name:    "file source is valid",
			mutate:  func(r *Request) { r.Source = Source{File: "/tmp/a.tex"} },
			wantErr: nil,
		},
		{
			name:    "no source",
			mutate:  func(r *Request) { r.Source = Source{} },
			wantErr: ErrNoSource,
		},
		{
			name:    "both sources",
			mutate:  func(r *Request) { r.Source = Source{Snippet: "x", File: "/tmp/a.tex"} },
			wantErr: ErrNoSource,
		},
		{
			name:    "zero font size",
			mutate:  func(r *Request) { r.FontSize = 0 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "negative border",
			mutate:  func(r *Request) { r.Border = -1 },
			wantErr: ErrInvalidBorder,
		},
		{
			name:    "empty density",
			mutate:  func(r *Request) { r.Density = " " },
			wantErr: ErrInvalidDensity,
		},
		{
			name:    "empty format",
			mutate:  func(r *Request) { r.Format = "" },
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "format with separator",
			mutate:  func(r *Request) { r.Format = "png/../x" },
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "bad text color",
			mutate:  func(r *Request) { r.TextColor = "a:b:c" },
			wantErr: ErrInvalidColor,
		},
		{
			name:    "bad background color",
			mutate:  func(r *Request) { r.BackgroundColor = "" },
			wantErr: ErrInvalidColor,
		},
		{
			name:    "out of range antialias",
			mutate:  func(r *Request) { r.Antialias = Antialias(7) },
			wantErr: ErrInvalidAntialias,
		},
		{
			name:    "empty latex command",
			mutate:  func(r *Request) { r.LatexCmd = "" },
			wantErr: ErrInvalidLatexCmd,
		},
		{
			name:    "empty convert command",
			mutate:  func(r *Request) { r.ConvertCmd = "  " },
			wantErr: ErrInvalidConvertCmd,
		},
		{
			name:    "relative working dir",
			mutate:  func(r *Request) { r.WorkingDir = "rel" },
			wantErr: ErrInvalidWorkingDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
