package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phawaaz/vmsync/internal/session"
)

func newLoginCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Log in and store the session token",
		Long:  "Authenticates against the VMS API and caches the session token and profile locally.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := ""
			if len(args) == 1 {
				email = args[0]
			}
			return runLogin(cmd.Context(), email, server)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or the hosted backend)")

	return cmd
}

func runLogin(ctx context.Context, email, serverFlag string) error {
	if serverFlag != "" {
		cfg, err := loadConfig()
		if err != nil {
			cfg = CLIConfig{}
		}
		cfg.ServerURL = serverFlag
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("no email provided")
	}

	fmt.Print("Password: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	password := strings.TrimSpace(line)
	if password == "" {
		return fmt.Errorf("no password provided")
	}

	c := newAPIClient()
	result, err := c.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	profile := session.Profile{
		ID:        result.User.ID,
		FirstName: result.User.FirstName,
		LastName:  result.User.LastName,
		FullName:  result.User.FullName,
		Email:     result.User.Email,
		Role:      result.User.Role,
		Phone:     result.User.Phone,
		AvatarURL: result.User.Photo,
		CreatedAt: result.User.CreatedAt,
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.SaveLogin(result.Token, profile); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("✓ Logged in as %s\n", profile.DisplayName())
	return nil
}
