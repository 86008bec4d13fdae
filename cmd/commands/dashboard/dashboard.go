package dashboard

import (
	"os"

	"nathanbeddoewebdev/donorlens/internal/app"
	"nathanbeddoewebdev/donorlens/internal/logger"

	"github.com/spf13/cobra"
)

// NewCommand returns the "dashboard" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "View fundraising dashboards",
		Long: `View the fundraising analytics dashboards of the configured organization.

Set the organization with "donorlens config set organization-id <id>" and
store a token with "donorlens auth login" first.`,
	}

	cmd.AddCommand(TabsCommand())
	cmd.AddCommand(ShowCommand())

	return cmd
}

// newApp builds the wired application. Tests replace it.
var newApp = func(cmd *cobra.Command) (*app.App, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return app.New(app.Options{
		LogWriter: os.Stderr,
		LogFormat: logger.FormatText,
		Verbose:   verbose,
	})
}
