package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/donorlens/internal/config"
	"nathanbeddoewebdev/donorlens/internal/services/auth"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// newStore is replaced in tests.
var newStore = auth.DefaultStore

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the analytics API token",
		Long: `Store the analytics API token in the local keychain and, optionally,
the organization whose dashboards you want to see.

Examples:
  donorlens auth login
  donorlens auth login --token "$DONORLENS_TOKEN" --organization 42`,
		Args:         cobra.NoArgs,
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")
	cmd.Flags().String("organization", "", "Organization id to save in the config")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	token, _ := cmd.Flags().GetString("token")
	org, _ := cmd.Flags().GetString("organization")
	token = strings.TrimSpace(token)
	org = strings.TrimSpace(org)

	if token == "" {
		var err error
		token, org, err = prompt(org)
		if err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := newStore().SetToken(auth.APIAccount, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved API token")

	if org == "" {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Lookup("organization-id").Set(cfg, org); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Organization set to %q\n", org)
	return nil
}

// prompt asks for the token, and the organization when org is empty. It
// uses a form in a terminal and a plain password read otherwise.
func prompt(org string) (string, string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Enter API token: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", err
		}
		return strings.TrimSpace(string(b)), org, nil
	}

	var token string
	fields := []huh.Field{
		huh.NewInput().
			Title("API token").
			EchoMode(huh.EchoModePassword).
			Value(&token).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("token cannot be empty")
				}
				return nil
			}),
	}
	if org == "" {
		fields = append(fields, huh.NewInput().
			Title("Organization id").
			Description("Leave blank to keep the configured organization").
			Value(&org))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithAccessible(os.Getenv("ACCESSIBLE") != "")
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", fmt.Errorf("login aborted")
		}
		return "", "", err
	}
	return strings.TrimSpace(token), strings.TrimSpace(org), nil
}
