package provisioning

import (
	"time"

	"github.com/imamik/kubeprov/internal/plan"
)

// Outcome is the result of running one phase.
type Outcome int

const (
	Succeeded Outcome = iota
	Failed
)

func (o Outcome) String() string {
	if o == Failed {
		return "failed"
	}
	return "succeeded"
}

// RunResult records how a phase ended.
type RunResult struct {
	Phase   plan.Phase
	Outcome Outcome
	Err     error

	// Output is the captured output of the last command that ran.
	Output string

	// BestEffortFailures lists best-effort commands that failed.
	BestEffortFailures []*CommandFailedError

	// Artifacts maps artifact name to the content written on the host.
	Artifacts map[string]string

	Duration time.Duration
}

// Summary is the outcome of a whole sequence. It lives only for the run.
type Summary struct {
	Role plan.Role
	Host string

	// Results holds one entry per phase that ran, in order.
	Results []RunResult

	// Skipped names the phases never started because an earlier one failed.
	Skipped []string

	Err      error
	Duration time.Duration
}

// Succeeded reports whether every phase of the plan ran and succeeded.
func (s *Summary) Succeeded() bool {
	if s.Err != nil || len(s.Skipped) > 0 {
		return false
	}
	for _, r := range s.Results {
		if r.Outcome != Succeeded {
			return false
		}
	}
	return true
}

// Artifact returns the content of a named artifact produced during the run.
func (s *Summary) Artifact(name string) (string, bool) {
	for _, r := range s.Results {
		if v, ok := r.Artifacts[name]; ok {
			return v, true
		}
	}
	return "", false
}

// JoinCommand returns the worker join command captured by cluster initialization.
func (s *Summary) JoinCommand() string {
	v, _ := s.Artifact(plan.ArtifactJoinCommand)
	return v
}

// PhaseNames returns the names of the phases that ran, in order.
func (s *Summary) PhaseNames() []string {
	names := make([]string, len(s.Results))
	for i, r := range s.Results {
		names[i] = r.Phase.Name
	}
	return names
}

// BestEffortFailures returns all best-effort failures across phases.
func (s *Summary) BestEffortFailures() []*CommandFailedError {
	var out []*CommandFailedError
	for _, r := range s.Results {
		out = append(out, r.BestEffortFailures...)
	}
	return out
}
