package tex2im

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/alnah/go-tex2im/internal/process"
)

// waitDelay bounds how long Wait blocks on output pipes after the process
// group was killed.
const waitDelay = 2 * time.Second

// CommandRunner abstracts command execution to enable testing without real subprocesses.
// Run executes cmd with dir as its working directory and returns stdout and
// stderr interleaved. A non-nil error means the command could not start or
// exited non-zero.
type CommandRunner interface {
	Run(ctx context.Context, dir string, cmd Command) ([]byte, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Compile-time interface implementation check.
var _ CommandRunner = (*ExecRunner)(nil)

// Run starts the command in its own process group. Cancelling ctx kills the
// whole group, so a shell-wrapped compiler does not leave children behind.
func (r *ExecRunner) Run(ctx context.Context, dir string, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) // #nosec G204 -- commands come from user configuration
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		return out.Bytes(), fmt.Errorf("running %s: %w", c.Name, err)
	}
	return out.Bytes(), nil
}

// ShellCommand wraps a command line for the platform shell.
func ShellCommand(line string) Command {
	if runtime.GOOS == "windows" {
		return Command{Name: "cmd", Args: []string{"/C", line}}
	}
	return Command{Name: "sh", Args: []string{"-c", line}}
}
