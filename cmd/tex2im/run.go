package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	tex2im "github.com/alnah/go-tex2im"
	"github.com/alnah/go-tex2im/internal/config"
	"github.com/alnah/go-tex2im/internal/hints"
)

// invocation is one run of the CLI.
type invocation struct {
	args       []string
	flags      *cliFlags
	fs         *flag.FlagSet
	positional []string
	env        *Environment
	logger     *log.Logger
}

// settings is the resolved configuration shared by every snippet.
type settings struct {
	base    tex2im.Request
	workers int
}

// run resolves settings and dispatches to the selected mode.
func (inv *invocation) run(ctx context.Context) error {
	s, err := inv.resolveSettings()
	if err != nil {
		return err
	}

	switch {
	case inv.flags.mode.doctor:
		return runDoctor(ctx, s.base, inv.flags.mode.json, inv.env)
	case inv.flags.mode.dryRun:
		return inv.dryRun(s)
	default:
		return inv.render(ctx, s)
	}
}

// resolveSettings builds the base request from defaults, the config file,
// the environment, and explicitly set flags, in that order.
func (inv *invocation) resolveSettings() (*settings, error) {
	env := inv.env

	wd, err := env.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	home, err := env.UserHomeDir()
	if err != nil {
		inv.logger.Debug("home directory unknown", "err", err)
		home = ""
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(inv.logger, env.Environ())

	cfg := config.DefaultConfig()
	configName := inv.flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		if cfg, err = config.LoadConfig(configName); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if data, err := config.Marshal(cfg); err == nil {
			inv.logger.Debug("loaded config", "name", configName, "config", string(data))
		}
	}

	base := tex2im.DefaultRequest(tex2im.Source{})
	base.WorkingDir = wd
	base.HomeDir = home
	base.Invocation = inv.args

	cfg.Apply(&base)
	applyEnvConfig(envCfg, &base)
	if err := applyFlags(inv.fs, inv.flags, &base); err != nil {
		return nil, err
	}

	workers, err := resolveWorkers(inv.fs, inv.flags, envCfg.Workers, cfg.Workers)
	if err != nil {
		return nil, err
	}

	return &settings{base: base, workers: workers}, nil
}

// requests builds one request per positional argument. Batch indices are
// only assigned when there is more than one snippet.
func (inv *invocation) requests(base tex2im.Request) []tex2im.Request {
	reqs := make([]tex2im.Request, len(inv.positional))
	for i, arg := range inv.positional {
		req := base
		req.Source = tex2im.SourceFromArg(arg, base.WorkingDir)
		if len(inv.positional) > 1 {
			req = req.WithIndex(i)
		}
		reqs[i] = req
	}
	return reqs
}

func (inv *invocation) newRenderer() *tex2im.Renderer {
	return tex2im.NewRenderer(
		tex2im.WithRunner(inv.env.Runner),
		tex2im.WithLogger(inv.logger),
		tex2im.WithStdout(inv.env.Stdout),
		tex2im.WithTempDir(inv.env.TempDir),
	)
}

// render runs the pipeline for every snippet.
func (inv *invocation) render(ctx context.Context, s *settings) error {
	workers := resolvePoolSize(s.workers)
	if s.base.Stdout {
		workers = 1
		if inv.env.IsTerminal(inv.env.Stdout) {
			inv.logger.Warn("writing binary image data to a terminal")
		}
		if len(inv.positional) > 1 {
			inv.logger.Warn("images are concatenated on stdout", "count", len(inv.positional))
		}
	}
	inv.logger.Debug("rendering", "snippets", len(inv.positional), "workers", workers)

	renderer := inv.newRenderer()
	reqs := inv.requests(s.base)
	results := renderBatch(ctx, renderer, inv.positional, reqs, outputKeys(renderer, reqs), workers)

	return reportResults(results, inv.env, inv.logger, s.base.Stdout)
}

// outputKeys returns the delivery path of each request, or "" when it is
// streamed or cannot be planned. Requests sharing a path must not render
// concurrently.
func outputKeys(renderer *tex2im.Renderer, reqs []tex2im.Request) []string {
	keys := make([]string, len(reqs))
	for i, req := range reqs {
		if req.Stdout {
			continue
		}
		if plan, err := renderer.Plan(req); err == nil {
			keys[i] = plan.Output.Path()
		}
	}
	return keys
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var nf *config.NotFoundError
	switch {
	case errors.As(err, &nf):
		return hints.ForConfigNotFound(nf.Tried)
	case errors.Is(err, tex2im.ErrWriteOutput) && errors.Is(err, fs.ErrNotExist):
		return hints.ForOutputDirectory()
	case errors.Is(err, tex2im.ErrInvalidColor):
		return hints.ForColorSpec()
	case errors.Is(err, tex2im.ErrReadPreamble):
		return hints.ForPreamble()
	}
	return ""
}
