// Package local runs provisioning commands on the machine kubeprov runs on.
package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/imamik/kubeprov/internal/platform/shell"
)

// waitDelay bounds how long Run waits for output pipes after the process
// group has been killed.
const waitDelay = 2 * time.Second

// Host executes requests as child processes.
type Host struct {
	name string
}

// New returns a host named after the local hostname.
func New() *Host {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "localhost"
	}
	return &Host{name: name}
}

// Name returns the local hostname at construction time.
func (h *Host) Name() string {
	return h.name
}

// Run starts the program directly, without a shell, and waits for it.
// Stdout and stderr are captured interleaved. The child runs in its own
// process group and cancellation kills the whole group, so pipelines started
// through sh -c stop with it.
func (h *Host) Run(ctx context.Context, req shell.Request) (shell.Response, error) {
	cmd := exec.CommandContext(ctx, req.Program, req.Args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay
	if len(req.Env) > 0 {
		cmd.Env = append(os.Environ(), req.EnvList()...)
	}
	if len(req.Stdin) > 0 {
		cmd.Stdin = bytes.NewReader(req.Stdin)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	resp := shell.Response{Output: out.String()}

	if ctx.Err() != nil {
		resp.ExitCode = -1
		return resp, ctx.Err()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return resp, nil
	case errors.As(err, &exitErr):
		resp.ExitCode = exitErr.ExitCode()
		return resp, nil
	default:
		resp.ExitCode = -1
		return resp, fmt.Errorf("failed to run %s: %w", req.Program, err)
	}
}
