package provisioning

import (
	"context"

	"github.com/imamik/kubeprov/internal/platform/shell"
)

// Host is the machine being provisioned.
// Implemented by internal/platform/local, internal/platform/ssh and
// internal/platform/dryrun.
type Host interface {
	// Name identifies the host in logs and summaries.
	Name() string

	// Run executes the request to completion. A non-zero exit status is
	// reported through Response.ExitCode with a nil error; the error is
	// reserved for failures that prevented obtaining an exit status
	// (spawn failure, lost connection, context cancellation).
	Run(ctx context.Context, req shell.Request) (shell.Response, error)
}
