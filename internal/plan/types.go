package plan

import (
	"time"

	"github.com/imamik/kubeprov/internal/platform/shell"
)

// Policy decides what a non-zero exit of a command means for the run.
type Policy int

const (
	// SuccessRequired commands abort the whole sequence on failure.
	SuccessRequired Policy = iota
	// BestEffort commands are recorded on failure but never abort.
	BestEffort
)

func (p Policy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "success-required"
}

// RetryClass selects the retry policy applied to a command.
type RetryClass int

const (
	// RetryNone runs the command exactly once. Used for local mutations.
	RetryNone RetryClass = iota
	// RetryNetwork retries with exponential backoff. Used for downloads and
	// package mirror access.
	RetryNetwork
)

func (r RetryClass) String() string {
	if r == RetryNetwork {
		return "network"
	}
	return "none"
}

// ExtractFunc derives an artifact's content from a command's captured output.
type ExtractFunc func(output string) (string, error)

// Artifact is a value derived from a command's output and written to the
// target host after the command succeeds.
type Artifact struct {
	Name string
	Path string

	// Extract derives the content. Nil persists the raw output.
	Extract ExtractFunc
}

// Command is one process invocation on the target host.
type Command struct {
	Description string
	Program     string
	Args        []string
	Stdin       []byte
	Env         map[string]string

	Policy Policy
	Retry  RetryClass

	// Timeout bounds a single attempt. Zero means the executor default.
	Timeout time.Duration

	Artifacts []Artifact
}

// Request converts the command into a host invocation.
func (c Command) Request() shell.Request {
	return shell.Request{
		Program: c.Program,
		Args:    c.Args,
		Stdin:   c.Stdin,
		Env:     c.Env,
	}
}

// Phase is a named, ordered group of commands.
type Phase struct {
	Name    string
	Title   string
	Ordinal int

	// Delay is waited before the first command, giving components started
	// asynchronously by earlier phases time to settle.
	Delay time.Duration

	Commands []Command
}

// BestEffortOnly reports whether no command in the phase can abort the run.
func (p Phase) BestEffortOnly() bool {
	for _, c := range p.Commands {
		if c.Policy == SuccessRequired {
			return false
		}
	}
	return true
}
