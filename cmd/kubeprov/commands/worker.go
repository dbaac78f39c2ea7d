package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubeprov/cmd/kubeprov/handlers"
	"github.com/imamik/kubeprov/internal/plan"
)

// Worker returns the command that prepares a worker node.
func Worker() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Prepare a Kubernetes worker node",
		Long: `Prepare a Kubernetes worker node.

Runs the same host preparation, container runtime and Kubernetes package
phases as 'kubeprov master' and stops there. Join the node afterwards with the
command printed by the master run.

Examples:
  sudo kubeprov worker
  kubeprov worker -c worker-1.yaml -y`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), plan.RoleWorker, opts)
		},
	}

	addRunFlags(cmd, &opts)

	return cmd
}
