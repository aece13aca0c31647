package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cultivator/internal/ui"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Run the daily boundary reset (idempotent per day)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := svc.RunDailyResetNow(ctx)
			if err != nil {
				return err
			}

			if !report.Performed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("already reset today — nothing to do"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reset for %s: %d streak(s) reset, %d quest(s) rescheduled\n",
				ui.IconReset, report.Today, report.StreakResets, report.QuestsMoved)
			return nil
		},
	}

	return cmd
}
