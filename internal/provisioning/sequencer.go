package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/kubeprov/internal/plan"
)

// Sequencer runs the phases of a plan in order, stopping at the first failed
// phase. Nothing is rolled back; partially applied state stays on the host.
type Sequencer struct {
	exec *Executor
}

// NewSequencer creates a sequencer on top of exec.
func NewSequencer(exec *Executor) *Sequencer {
	return &Sequencer{exec: exec}
}

// Run executes phases for role and returns the summary. When a phase fails,
// the returned error wraps the phase error and the summary lists the
// phases that were skipped.
func (s *Sequencer) Run(ctx context.Context, role plan.Role, phases []plan.Phase) (*Summary, error) {
	if err := plan.Validate(phases); err != nil {
		return nil, err
	}

	obs := s.exec.observer.WithFields(map[string]string{
		FieldRole: string(role),
		FieldHost: s.exec.host.Name(),
	})
	exec := *s.exec
	exec.observer = obs

	start := time.Now()
	summary := &Summary{
		Role: role,
		Host: s.exec.host.Name(),
	}

	obs.Event(Event{
		Type:    EventRunStarted,
		Message: fmt.Sprintf("Provisioning %s on %s (%d phases)", role, summary.Host, len(phases)),
		Fields:  map[string]string{FieldTotal: fmt.Sprint(len(phases))},
	})

	for i, phase := range phases {
		LogPhaseStart(obs, phase.Name, phase.Ordinal, len(phases), phase.Title)

		r := exec.Execute(ctx, phase)
		summary.Results = append(summary.Results, r)

		if r.Outcome == Failed {
			LogPhaseFailed(obs, phase.Name, phase.Ordinal, phase.Title, r.Err)
			for _, rest := range phases[i+1:] {
				summary.Skipped = append(summary.Skipped, rest.Name)
				LogPhaseSkipped(obs, rest.Name)
			}
			summary.Err = fmt.Errorf("%s phase failed: %w", phase.Name, r.Err)
			summary.Duration = time.Since(start)
			exec.metrics.RecordRun(summary)
			return summary, summary.Err
		}

		LogPhaseComplete(obs, phase.Name, phase.Ordinal, phase.Title, r.Duration)
	}

	summary.Duration = time.Since(start)
	exec.metrics.RecordRun(summary)
	obs.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("Provisioning %s completed in %s", role, summary.Duration.Round(time.Second)),
		Fields:  map[string]string{FieldDuration: summary.Duration.Round(time.Millisecond).String()},
	})
	return summary, nil
}
