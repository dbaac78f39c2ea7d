package provisioning

import (
	"fmt"

	"github.com/imamik/kubeprov/internal/platform/shell"
)

// outputTailLines bounds how much command output is carried in error messages.
const outputTailLines = 10

// CommandFailedError is returned when a command exits non-zero or cannot be run.
type CommandFailedError struct {
	Phase       string
	Index       int // position of the command within its phase, starting at 0
	Description string
	Command     string
	ExitCode    int // -1 when no exit status was obtained
	Output      string
	Err         error
}

func (e *CommandFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("phase %s: command %d (%s) failed: %v", e.Phase, e.Index+1, e.Command, e.Err)
	}
	msg := fmt.Sprintf("phase %s: command %d (%s) exited with status %d", e.Phase, e.Index+1, e.Command, e.ExitCode)
	if tail := shell.LastLines(e.Output, outputTailLines); tail != "" {
		msg += "\n" + tail
	}
	return msg
}

func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// ArtifactParseError is returned when an artifact cannot be derived from the
// output of a command that otherwise succeeded.
type ArtifactParseError struct {
	Phase    string
	Artifact string
	Output   string
	Err      error
}

func (e *ArtifactParseError) Error() string {
	return fmt.Sprintf("phase %s: failed to extract %s: %v", e.Phase, e.Artifact, e.Err)
}

func (e *ArtifactParseError) Unwrap() error {
	return e.Err
}
