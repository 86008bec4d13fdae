package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/donorlens/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := newStore().DeleteToken(auth.APIAccount)
			if errors.Is(err, auth.ErrTokenNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No API token stored")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed API token")
			return nil
		},
		SilenceUsage: true,
	}
}
