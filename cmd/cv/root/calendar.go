package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cultivator/internal/ui"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar <identity-id> <YYYY-MM-DD> <done|miss>",
		Short: "Edit a past day's completion and recompute progression",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("identity id, date, and done|miss are required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("identity id must be an integer")
			}
			if args[2] != "done" && args[2] != "miss" {
				return errors.New("third argument must be done or miss")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			proj, err := svc.EditCalendar(ctx, id, args[1], args[2] == "done")
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s recomputed: tier %s, level %d, %d/%d days, streak %d\n",
				ui.IconDone, ui.TierText(string(proj.Tier)), proj.Level,
				proj.DaysCompleted, proj.RequiredDays, proj.StreakDays)
			return nil
		},
	}

	return cmd
}
