package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Long:  "Removes the cached session token and profile from the local store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	token, err := store.Token()
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Println("✓ Logged out. Session removed.")
	return nil
}
