package cmd

import (
	"context"
	"os"

	"nathanbeddoewebdev/donorlens/cmd/commands/audit"
	"nathanbeddoewebdev/donorlens/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/donorlens/cmd/commands/config"
	"nathanbeddoewebdev/donorlens/cmd/commands/dashboard"
	"nathanbeddoewebdev/donorlens/cmd/commands/serve"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "donorlens",
		Short: "Fundraising analytics dashboards for your terminal",
		Long: `donorlens shows donor lifecycle, intelligence, campaign, revenue,
cohort and cashflow dashboards for an organization, fetched from the
analytics API. Failed queries never block a dashboard: missing figures
are shown as zero, and cohort and cashflow views fall back to sample data.

Quick start:
  donorlens auth login --organization 42   # Store your API token
  donorlens dashboard show                 # Interactive dashboard
  donorlens dashboard show --all -o json   # Every tab as JSON
  donorlens serve                          # JSON gateway`,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(dashboard.NewCommand())
	cmd.AddCommand(audit.NewCommand())
	cmd.AddCommand(serve.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
