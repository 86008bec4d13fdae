package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/donorlens/internal/config"
	"nathanbeddoewebdev/donorlens/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  donorlens config set organization-id 42\n" +
			"  donorlens config set api-base-url https://analytics.example.org/api/v1\n" +
			"  donorlens config set request-timeout 10s",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) {
	key := config.Lookup(util.NormalizeKey(args[0]))
	if key == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if err := key.Set(cfg, strings.TrimSpace(args[1])); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", key.Name, err)
		return
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", key.Name, key.Get(cfg))
}
