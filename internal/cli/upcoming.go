package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newUpcomingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show your next scheduled visits",
		Long:  "Fetches the visit summary and prints upcoming visits, soonest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpcoming(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "maximum number of visits to show")

	return cmd
}

func runUpcoming(ctx context.Context, limit int) error {
	svc, store, err := newService()
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	top := svc.TopUpcoming(limit)
	if isJSON() {
		return printJSON(top)
	}

	if len(top) == 0 {
		fmt.Println("No upcoming visits.")
		return nil
	}

	for _, v := range top {
		printVisitDetails(v)
	}
	return nil
}
