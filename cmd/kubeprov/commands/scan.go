package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubeprov/cmd/kubeprov/handlers"
)

// Scan returns the kubeaudit security scan command.
func Scan() *cobra.Command {
	var opts handlers.ScanOptions

	cmd := &cobra.Command{
		Use:   "scan [cluster | manifest <file> | autofix <file>]",
		Short: "Run kubeaudit against the cluster or a manifest",
		Long: `Run kubeaudit on the configured host.

  cluster            audit the running cluster
  manifest <file>    audit a manifest file on the host
  autofix <file>     write a fixed copy of the manifest as fixed-<file>

Any other arguments print the usage and exit successfully.

Examples:
  kubeprov scan cluster
  kubeprov scan autofix /root/sample-pod.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Scan(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: kubeprov.yaml if present)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the kubeaudit command instead of running it")

	return cmd
}
