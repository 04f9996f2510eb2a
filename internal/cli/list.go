package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your full visit history",
		Long:  "Fetches the visit summary from the VMS backend and prints every visit on record.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context())
		},
	}
}

func runList(ctx context.Context) error {
	svc, store, err := newService()
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	summary := svc.VisitSummary()
	if isJSON() {
		return printJSON(summary)
	}

	if len(summary) == 0 {
		fmt.Println("No visits on record.")
		return nil
	}

	return printVisitTable(summary)
}
