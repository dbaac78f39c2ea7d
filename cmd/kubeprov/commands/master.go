package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubeprov/cmd/kubeprov/handlers"
	"github.com/imamik/kubeprov/internal/plan"
)

// Master returns the command that provisions a control-plane node.
func Master() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "master",
		Short: "Provision a Kubernetes control-plane node",
		Long: `Provision a Kubernetes control-plane node.

Prepares the host (swap, kernel modules, sysctl), installs containerd, runc
and the CNI plugins, installs kubelet, kubeadm and kubectl, initializes the
cluster with kubeadm, installs Calico, the kubeaudit scanner and the
k8s-security-scan helper, and finally checks node and pod status.

The worker join command is saved to /tmp/kubeadm-join-command.txt on the host
and printed at the end. Configure artifacts.s3 to also upload it to a bucket.

The run stops at the first failed phase. Nothing is rolled back.

Examples:
  # Provision this machine (as root)
  sudo kubeprov master

  # Provision a remote host over SSH
  kubeprov master -c cluster.yaml

  # Show what would run
  kubeprov master --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), plan.RoleMaster, opts)
		},
	}

	addRunFlags(cmd, &opts)

	return cmd
}
