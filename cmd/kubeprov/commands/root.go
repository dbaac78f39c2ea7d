// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the kubeprov CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kubeprov",
		Short:         "Provision Kubernetes nodes with kubeadm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Provisioning
	cmd.AddCommand(Master())
	cmd.AddCommand(Worker())
	cmd.AddCommand(Verify())

	// Utility
	cmd.AddCommand(Plan())
	cmd.AddCommand(Scan())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
