// Package config loads tex2im settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tex2im "github.com/alnah/go-tex2im"
	"github.com/alnah/go-tex2im/internal/fileutil"
)

// AppDir is the directory name under the user config directory.
const AppDir = "tex2im"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldRange      = errors.New("field out of range")
)

// NotFoundError lists the locations searched for a config file.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// Field limits.
const (
	MaxColorLength   = 64   // "HTML:FF7F00", "red!50!blue"
	MaxDensityLength = 32   // "150x150"
	MaxFormatLength  = 16   // "png", "html"
	MaxPathLength    = 4096 // PATH_MAX
	MaxCommandLength = 4096
	MaxFontSize      = 1000
	MaxBorder        = 10000
	MaxWorkers       = 8
)

// Config holds file-level defaults for rendering. Nil and empty fields are
// unset and leave the request untouched.
type Config struct {
	Style   StyleConfig  `yaml:"style,omitempty"`
	Image   ImageConfig  `yaml:"image,omitempty"`
	Output  OutputConfig `yaml:"output,omitempty"`
	Tools   ToolsConfig  `yaml:"tools,omitempty"`
	Workers int          `yaml:"workers,omitempty"` // 0 = auto
}

// StyleConfig defines the LaTeX document options.
type StyleConfig struct {
	FontSize              int    `yaml:"fontSize,omitempty"`        // points
	TextColor             string `yaml:"textColor,omitempty"`       // "blue" or "HTML:FF7F00"
	BackgroundColor       string `yaml:"backgroundColor,omitempty"` // same syntax as textColor
	Preamble              string `yaml:"preamble,omitempty"`        // explicit preamble file
	NoPreamble            *bool  `yaml:"noPreamble,omitempty"`
	NoEquationEnvironment *bool  `yaml:"noEquationEnvironment,omitempty"`
}

// ImageConfig defines converter options.
type ImageConfig struct {
	Antialias   string `yaml:"antialias,omitempty"` // "auto", "on", "off"
	Border      *int   `yaml:"border,omitempty"`    // pixels
	Density     string `yaml:"density,omitempty"`   // "150x150"
	Transparent *bool  `yaml:"transparent,omitempty"`
	Format      string `yaml:"format,omitempty"` // "png", "jpg", "html", ...
	NoComment   *bool  `yaml:"noComment,omitempty"`
}

// OutputConfig defines where results go.
type OutputConfig struct {
	Basename  string `yaml:"basename,omitempty"` // basename or existing directory
	KeepFiles *bool  `yaml:"keepFiles,omitempty"`
}

// ToolsConfig defines the external programs.
type ToolsConfig struct {
	LatexCmd   string `yaml:"latexCmd,omitempty"`   // must reference $INPUT_FILE to be useful
	ConvertCmd string `yaml:"convertCmd,omitempty"` // "convert" or "magick"
}

// Validate checks field lengths and numeric ranges.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"style.textColor", c.Style.TextColor, MaxColorLength},
		{"style.backgroundColor", c.Style.BackgroundColor, MaxColorLength},
		{"style.preamble", c.Style.Preamble, MaxPathLength},
		{"image.density", c.Image.Density, MaxDensityLength},
		{"image.format", c.Image.Format, MaxFormatLength},
		{"output.basename", c.Output.Basename, MaxPathLength},
		{"tools.latexCmd", c.Tools.LatexCmd, MaxCommandLength},
		{"tools.convertCmd", c.Tools.ConvertCmd, MaxCommandLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}

	if err := validateRange("style.fontSize", c.Style.FontSize, 0, MaxFontSize); err != nil {
		return err
	}
	if c.Image.Border != nil {
		if err := validateRange("image.border", *c.Image.Border, 0, MaxBorder); err != nil {
			return err
		}
	}
	if err := validateRange("workers", c.Workers, 0, MaxWorkers); err != nil {
		return err
	}

	for _, color := range []struct{ field, value string }{
		{"style.textColor", c.Style.TextColor},
		{"style.backgroundColor", c.Style.BackgroundColor},
	} {
		if color.value == "" {
			continue
		}
		if _, err := tex2im.ParseColor(color.value); err != nil {
			return fmt.Errorf("%s: %w", color.field, err)
		}
	}

	if c.Image.Antialias != "" {
		if _, err := tex2im.ParseAntialias(c.Image.Antialias); err != nil {
			return fmt.Errorf("image.antialias: %w", err)
		}
	}

	if c.Image.Format != "" {
		if err := fileutil.ValidateExtension(c.Image.Format); err != nil {
			return fmt.Errorf("image.format: %w", err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateRange(fieldName string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrFieldRange, fieldName, lo, hi, value)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every field unset.
func DefaultConfig() *Config {
	return &Config{}
}

// Apply copies every set field onto req.
// The config must have been validated; an invalid antialias value is ignored.
func (c *Config) Apply(req *tex2im.Request) {
	if c.Style.FontSize != 0 {
		req.FontSize = c.Style.FontSize
	}
	setString(&req.TextColor, c.Style.TextColor)
	setString(&req.BackgroundColor, c.Style.BackgroundColor)
	setString(&req.Preamble, c.Style.Preamble)
	setBool(&req.NoPreamble, c.Style.NoPreamble)
	setBool(&req.NoEquationEnvironment, c.Style.NoEquationEnvironment)

	if c.Image.Antialias != "" {
		if mode, err := tex2im.ParseAntialias(c.Image.Antialias); err == nil {
			req.Antialias = mode
		}
	}
	if c.Image.Border != nil {
		req.Border = *c.Image.Border
	}
	setString(&req.Density, c.Image.Density)
	setBool(&req.Transparent, c.Image.Transparent)
	setString(&req.Format, c.Image.Format)
	setBool(&req.NoComment, c.Image.NoComment)

	setString(&req.OutputBasename, c.Output.Basename)
	setBool(&req.KeepFiles, c.Output.KeepFiles)

	setString(&req.LatexCmd, c.Tools.LatexCmd)
	setString(&req.ConvertCmd, c.Tools.ConvertCmd)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := unmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// name.yaml then name.yml, first in the current directory, then in the user
// config directory (~/.config/tex2im/ on Linux).
func SearchPaths(name string) []string {
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, AppDir))
	}

	paths := make([]string, 0, 2*len(dirs))
	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Tried: tried}
}
