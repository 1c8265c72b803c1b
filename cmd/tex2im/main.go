package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"pkt.systems/version"
)

func main() {
	version.SetDefaultModule("github.com/alnah/go-tex2im")

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain parses args, runs the requested mode, and returns the exit code.
func runMain(args []string, env *Environment) int {
	f, fs, positional, err := parseFlags(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'tex2im --help' for usage.")
		return ExitUsage
	}

	if f.mode.version {
		fmt.Fprintln(env.Stdout, version.Module(), version.Current())
		return ExitSuccess
	}

	if len(positional) == 0 && !f.mode.doctor {
		printUsage(env.Stderr)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, f.common.level())

	ctx, stop := notifyContext(context.Background())
	defer stop()

	inv := &invocation{
		args:       args,
		flags:      f,
		fs:         fs,
		positional: positional,
		env:        env,
		logger:     logger,
	}
	if err := inv.run(ctx); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
