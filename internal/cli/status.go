package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phawaaz/vmsync/internal/session"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and session status",
		Long:  "Tests the connection to the VMS backend and checks whether the stored session token is still valid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

func runStatus(ctx context.Context) error {
	serverURL := getServerURL()
	fmt.Printf("Server:  %s\n", serverURL)

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
		fmt.Println("Session: not logged in")
		fmt.Println("\nRun 'vmsync login' to authenticate.")
		return nil
	}

	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	fmt.Printf("Token:   %s…\n", prefix)

	if session.TokenExpired(token, time.Now()) {
		fmt.Println("Session: ✗ token expired")
		fmt.Println("\nRun 'vmsync login' to re-authenticate.")
		return nil
	}

	// Probe the summary endpoint to confirm the token is accepted.
	c := newAPIClient()
	if _, err := c.FetchSummary(ctx, token); err != nil {
		fmt.Printf("Session: ✗ %v\n", err)
		return nil
	}

	fmt.Println("Session: ✓ connected and authenticated")
	return nil
}
