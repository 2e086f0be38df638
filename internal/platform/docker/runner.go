package docker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Output is what a runtime command wrote.
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes runtime CLI commands.
type Runner interface {
	Run(ctx context.Context, args ...string) (Output, error)
}

// CommandError is returned when a runtime command exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Binary string
}

// NewExecRunner returns a runner for the given binary, "docker" if empty.
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "docker"
	}
	return &ExecRunner{Binary: binary}
}

// Run executes the binary with args and captures stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (Output, error) {
	// #nosec G204 - binary is fixed at construction, args are built by this package
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return out, &CommandError{
			Args:   append([]string{r.Binary}, args...),
			Stderr: strings.TrimSpace(out.Stderr),
			Err:    err,
		}
	}
	return out, nil
}
