package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phawaaz/vmsync/internal/client"
)

func newRegisterCmd() *cobra.Command {
	var (
		firstName string
		lastName  string
		phone     string
		password  string
	)

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a new visitor account",
		Long: `Create a new visitor account on the VMS backend.

Example:
  vmsync register jane@example.com --first Jane --last Doe --password s3cret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), client.RegisterRequest{
				Email:     args[0],
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
				Phone:     phone,
			})
		},
	}

	cmd.Flags().StringVar(&firstName, "first", "", "first name")
	cmd.Flags().StringVar(&lastName, "last", "", "last name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func runRegister(ctx context.Context, req client.RegisterRequest) error {
	if req.Password == "" {
		return fmt.Errorf("no password provided (use --password)")
	}

	c := newAPIClient()
	if err := c.Register(ctx, req); err != nil {
		return fmt.Errorf("registering: %w", err)
	}

	fmt.Println("✓ Account created. Run 'vmsync login' to authenticate.")
	return nil
}
