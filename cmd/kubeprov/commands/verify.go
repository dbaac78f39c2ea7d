package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubeprov/cmd/kubeprov/handlers"
	"github.com/imamik/kubeprov/internal/plan"
)

// Verify returns the cluster health check command.
func Verify() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the health of the cluster",
		Long: `Check the health of the cluster.

Shows node status, kube-system pods, cluster information, the kubeaudit
version and the containerd service status. Every check is informational: a
failing check is reported as a warning and never fails the command.

When the admin kubeconfig is readable on the host, the cluster API is probed
as well. Use --wait to poll until every node and system pod is ready.

Examples:
  kubeprov verify
  kubeprov verify --wait 5m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), plan.RoleVerify, opts)
		},
	}

	addRunFlags(cmd, &opts)
	cmd.Flags().DurationVar(&opts.Wait, "wait", 0, "Wait up to this long for all nodes and system pods to be ready")

	return cmd
}
