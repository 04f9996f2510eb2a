package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phawaaz/vmsync/internal/session"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the cached profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}
}

func runWhoami() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	profile, err := store.Profile()
	if errors.Is(err, session.ErrAuthMissing) {
		fmt.Println("Not logged in. Run 'vmsync login' to authenticate.")
		return nil
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(profile)
	}

	fmt.Printf("Name:   %s\n", profile.DisplayName())
	fmt.Printf("Email:  %s\n", profile.Email)
	fmt.Printf("Role:   %s\n", profile.Role)
	if profile.Phone != "" {
		fmt.Printf("Phone:  %s\n", profile.Phone)
	}
	return nil
}
