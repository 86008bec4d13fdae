package audit

import "github.com/spf13/cobra"

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage fetch-cycle history",
		Long: "View a local history of dashboard fetch cycles and prune old entries.\n\n" +
			"History is stored locally in ~/.config/donorlens/donorlens.db. Only\n" +
			"cycle metadata is kept, never dashboard data.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
