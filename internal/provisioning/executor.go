package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/kubeprov/internal/config"
	"github.com/imamik/kubeprov/internal/plan"
	"github.com/imamik/kubeprov/internal/platform/shell"
	"github.com/imamik/kubeprov/internal/util/retry"
)

// Command results used in events and metrics.
const (
	resultSucceeded = "succeeded"
	resultFailed    = "failed"
	resultIgnored   = "ignored"
)

// exitStatusError marks an attempt that ran to completion with a non-zero status.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Executor runs the commands of a single phase on a host.
type Executor struct {
	host     Host
	observer Observer
	metrics  *Metrics
	timeouts *config.Timeouts
	sleep    func(ctx context.Context, d time.Duration) error
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithObserver sets the observer receiving execution events.
func WithObserver(o Observer) ExecutorOption {
	return func(e *Executor) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) ExecutorOption {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithTimeouts overrides the command timeouts and retry tuning.
func WithTimeouts(t *config.Timeouts) ExecutorOption {
	return func(e *Executor) {
		if t != nil {
			e.timeouts = t
		}
	}
}

// WithSleep replaces the function used to wait out phase delays.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) ExecutorOption {
	return func(e *Executor) {
		if fn != nil {
			e.sleep = fn
		}
	}
}

// NewExecutor creates an executor for host.
func NewExecutor(host Host, opts ...ExecutorOption) *Executor {
	e := &Executor{
		host:     host,
		observer: NopObserver{},
		timeouts: config.DefaultTimeouts(),
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the phase's commands in order.
//
// The first failing success-required command stops the phase. Best-effort
// failures are recorded and execution continues. Artifacts of a command are
// extracted and written only after the command succeeds.
func (e *Executor) Execute(ctx context.Context, phase plan.Phase) RunResult {
	start := time.Now()
	res := RunResult{
		Phase:     phase,
		Outcome:   Succeeded,
		Artifacts: make(map[string]string),
	}
	finish := func() RunResult {
		res.Duration = time.Since(start)
		e.metrics.RecordPhase(res)
		return res
	}
	fail := func(err error) RunResult {
		res.Outcome = Failed
		res.Err = err
		return finish()
	}

	if phase.Delay > 0 {
		e.observer.Event(Event{
			Type:    EventPhaseWaiting,
			Phase:   phase.Name,
			Message: fmt.Sprintf("Waiting %s before %s", phase.Delay, phase.Title),
			Fields:  map[string]string{FieldDelay: phase.Delay.String()},
		})
		if err := e.sleep(ctx, phase.Delay); err != nil {
			return fail(fmt.Errorf("phase %s: interrupted while waiting: %w", phase.Name, err))
		}
	}

	for i, cmd := range phase.Commands {
		e.observer.Progress(phase.Name, i+1, len(phase.Commands))
		e.observer.Event(Event{
			Type:    EventCommandStarted,
			Phase:   phase.Name,
			Message: commandLabel(cmd),
			Fields: map[string]string{
				FieldIndex:   fmt.Sprint(i + 1),
				FieldCommand: cmd.Request().String(),
				FieldPolicy:  cmd.Policy.String(),
			},
		})

		resp, err := e.run(ctx, phase.Name, cmd)
		res.Output = resp.Output

		if err != nil {
			failure := commandFailure(phase.Name, i, cmd, resp, err)

			if cmd.Policy == plan.BestEffort {
				res.BestEffortFailures = append(res.BestEffortFailures, failure)
				e.metrics.RecordCommand(phase.Name, resultIgnored)
				e.observer.Event(Event{
					Type:    EventCommandIgnored,
					Phase:   phase.Name,
					Message: fmt.Sprintf("%s failed, continuing", commandLabel(cmd)),
					Output:  resp.Output,
					Fields:  failureFields(failure),
				})
				continue
			}

			e.metrics.RecordCommand(phase.Name, resultFailed)
			e.observer.Event(Event{
				Type:    EventCommandFailed,
				Phase:   phase.Name,
				Message: fmt.Sprintf("%s failed", commandLabel(cmd)),
				Output:  resp.Output,
				Fields:  failureFields(failure),
			})
			return fail(failure)
		}

		e.metrics.RecordCommand(phase.Name, resultSucceeded)
		e.observer.Event(Event{
			Type:    EventCommandSucceeded,
			Phase:   phase.Name,
			Message: commandLabel(cmd),
			Output:  resp.Output,
			Fields: map[string]string{
				FieldIndex:  fmt.Sprint(i + 1),
				FieldPolicy: cmd.Policy.String(),
			},
		})

		for _, a := range cmd.Artifacts {
			content, err := e.writeArtifact(ctx, phase.Name, i, a, resp.Output)
			if err != nil {
				return fail(err)
			}
			res.Artifacts[a.Name] = content
		}
	}

	return finish()
}

// run executes one command, retrying network commands with backoff.
func (e *Executor) run(ctx context.Context, phase string, cmd plan.Command) (shell.Response, error) {
	timeout := e.timeoutFor(cmd)
	req := cmd.Request()

	var resp shell.Response
	attempt := func(ctx context.Context, _ int) error {
		actx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		r, err := e.host.Run(actx, req)
		resp = r
		switch {
		case err != nil && ctx.Err() != nil:
			return retry.Fatal(err)
		case err != nil && errors.Is(actx.Err(), context.DeadlineExceeded):
			return fmt.Errorf("timed out after %s: %w", timeout, err)
		case err != nil:
			return err
		case !r.Succeeded():
			return &exitStatusError{code: r.ExitCode}
		}
		return nil
	}

	if cmd.Retry != plan.RetryNetwork {
		err := attempt(ctx, 1)
		return resp, err
	}

	err := retry.Do(ctx, attempt,
		retry.WithMaxRetries(e.timeouts.RetryMaxAttempts-1),
		retry.WithInitialDelay(e.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(e.timeouts.RetryMaxDelay),
		retry.WithOnRetry(func(n int, err error, delay time.Duration) {
			e.metrics.RecordRetry(phase)
			e.observer.Event(Event{
				Type:    EventCommandRetrying,
				Phase:   phase,
				Message: fmt.Sprintf("%s failed (%v), retrying in %s", commandLabel(cmd), err, delay),
				Fields: map[string]string{
					FieldAttempt: fmt.Sprint(n),
					FieldDelay:   delay.String(),
				},
			})
		}),
	)
	return resp, err
}

func (e *Executor) timeoutFor(cmd plan.Command) time.Duration {
	switch {
	case cmd.Timeout > 0:
		return cmd.Timeout
	case cmd.Retry == plan.RetryNetwork:
		return e.timeouts.Network
	default:
		return e.timeouts.Command
	}
}

// writeArtifact derives an artifact from output and persists it on the host.
func (e *Executor) writeArtifact(ctx context.Context, phase string, index int, a plan.Artifact, output string) (string, error) {
	content := output
	if a.Extract != nil {
		v, err := a.Extract(output)
		if err != nil {
			return "", &ArtifactParseError{Phase: phase, Artifact: a.Name, Output: output, Err: err}
		}
		content = v
	}

	data := content
	if !strings.HasSuffix(data, "\n") {
		data += "\n"
	}
	req := shell.Request{Program: "tee", Args: []string{a.Path}, Stdin: []byte(data)}

	ctx, cancel := context.WithTimeout(ctx, e.timeouts.Command)
	defer cancel()

	resp, err := e.host.Run(ctx, req)
	if err != nil || !resp.Succeeded() {
		failure := &CommandFailedError{
			Phase:       phase,
			Index:       index,
			Description: "write " + a.Name,
			Command:     req.String(),
			ExitCode:    resp.ExitCode,
			Output:      resp.Output,
			Err:         err,
		}
		if err != nil {
			failure.ExitCode = -1
		}
		return "", failure
	}

	e.observer.Event(Event{
		Type:    EventArtifactWritten,
		Phase:   phase,
		Message: fmt.Sprintf("Saved %s to %s", a.Name, a.Path),
		Fields: map[string]string{
			FieldArtifact: a.Name,
			FieldPath:     a.Path,
		},
	})
	return content, nil
}

func commandFailure(phase string, index int, cmd plan.Command, resp shell.Response, err error) *CommandFailedError {
	failure := &CommandFailedError{
		Phase:       phase,
		Index:       index,
		Description: cmd.Description,
		Command:     cmd.Request().String(),
		ExitCode:    -1,
		Output:      resp.Output,
		Err:         err,
	}
	var exitErr *exitStatusError
	if errors.As(err, &exitErr) {
		failure.ExitCode = exitErr.code
		failure.Err = nil
	}
	return failure
}

func failureFields(f *CommandFailedError) map[string]string {
	return map[string]string{
		FieldIndex:    fmt.Sprint(f.Index + 1),
		FieldCommand:  f.Command,
		FieldExitCode: fmt.Sprint(f.ExitCode),
	}
}

func commandLabel(cmd plan.Command) string {
	if cmd.Description != "" {
		return cmd.Description
	}
	return cmd.Request().String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
