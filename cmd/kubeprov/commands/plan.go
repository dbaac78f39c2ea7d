package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubeprov/cmd/kubeprov/handlers"
	"github.com/imamik/kubeprov/internal/plan"
)

// Plan returns the command that lists the commands of a role.
func Plan() *cobra.Command {
	var configPath string

	roles := make([]string, 0, len(plan.Roles()))
	for _, r := range plan.Roles() {
		roles = append(roles, string(r))
	}

	cmd := &cobra.Command{
		Use:   "plan <master|worker|verify>",
		Short: "List the phases and commands of a role",
		Long: `List the phases and commands a role would run, in order, without
connecting to any host.

Examples:
  kubeprov plan master
  kubeprov plan worker -c worker-1.yaml`,
		ValidArgs: roles,
		Args:      cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Plan(args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: kubeprov.yaml if present)")

	return cmd
}
