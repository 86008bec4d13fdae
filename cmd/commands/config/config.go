package config

import (
	"nathanbeddoewebdev/donorlens/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage donorlens configuration",
		Long: "View and modify persistent donorlens settings.\n\n" +
			"Configuration is stored at ~/.config/donorlens/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
