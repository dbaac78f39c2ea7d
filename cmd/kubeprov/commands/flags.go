package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubeprov/cmd/kubeprov/handlers"
)

// addRunFlags binds the flags shared by master, worker and verify.
func addRunFlags(cmd *cobra.Command, opts *handlers.RunOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: kubeprov.yaml if present)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the commands instead of running them")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show all command output and debug events")
}
