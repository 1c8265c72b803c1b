package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	tex2im "github.com/alnah/go-tex2im"
)

// envPrefix starts every tex2im environment variable.
const envPrefix = "TEX2IM_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TEX2IM_CONFIG: config file name or path
	LatexCmd   string // TEX2IM_LATEX_CMD: compiler command template
	ConvertCmd string // TEX2IM_CONVERT_CMD: converter program
	Density    string // TEX2IM_DENSITY: converter density
	Format     string // TEX2IM_FORMAT: output format
	Workers    int    // TEX2IM_WORKERS: parallel snippets
}

// knownEnvVars lists valid TEX2IM_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2IM_CONFIG":      true,
	"TEX2IM_LATEX_CMD":   true,
	"TEX2IM_CONVERT_CMD": true,
	"TEX2IM_DENSITY":     true,
	"TEX2IM_FORMAT":      true,
	"TEX2IM_WORKERS":     true,
	"TEX2IM_CONTAINER":   true, // read by --doctor
}

// loadEnvConfig reads configuration through getenv.
// Malformed or non-positive TEX2IM_WORKERS values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TEX2IM_CONFIG"),
		LatexCmd:   getenv("TEX2IM_LATEX_CMD"),
		ConvertCmd: getenv("TEX2IM_CONVERT_CMD"),
		Density:    getenv("TEX2IM_DENSITY"),
		Format:     getenv("TEX2IM_FORMAT"),
	}

	if workers := getenv("TEX2IM_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized TEX2IM_* variable.
// Helps catch typos like TEX2IM_LATEXCMD instead of TEX2IM_LATEX_CMD.
func warnUnknownEnvVars(logger *log.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig copies set environment values onto req.
// Called after the config file and before CLI flags, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, req *tex2im.Request) {
	if env.LatexCmd != "" {
		req.LatexCmd = env.LatexCmd
	}
	if env.ConvertCmd != "" {
		req.ConvertCmd = env.ConvertCmd
	}
	if env.Density != "" {
		req.Density = env.Density
	}
	if env.Format != "" {
		req.Format = env.Format
	}
}
