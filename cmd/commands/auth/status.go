package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/donorlens/internal/config"
	"nathanbeddoewebdev/donorlens/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an API token is stored",
		Long: `Show whether an API token is stored and which organization the
dashboards load for.

Example:
  donorlens auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, err := newStore().GetToken(auth.APIAccount)
			switch {
			case err == nil:
				fmt.Fprintln(out, "token: logged in")
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintln(out, "token: not logged in")
			default:
				fmt.Fprintf(out, "token: error (%v)\n", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if org, ok := cfg.Organization(); ok {
				fmt.Fprintf(out, "organization: %s\n", org)
			} else {
				fmt.Fprintln(out, "organization: not set")
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
