package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cultivator/internal/engine"
	"cultivator/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <identity-id> [gate]",
		Short: "Complete a gate task (or the whole day with no gate)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("identity id (and optional gate) required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("identity id must be an integer")
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

			if len(args) == 2 {
				gate, ok := engine.ParseGate(args[1])
				if !ok {
					return fmt.Errorf("unknown gate %q (want one of %v)", args[1], engine.AllGates)
				}
				res, err := svc.CompleteGateTask(ctx, id, gate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s +%.4f points (gate %.4f, level total %.4f)\n",
					ui.IconDone, gate, res.PointsAwarded, res.GateProgress, res.TotalProgress)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.Muted.Render(fmt.Sprintf("%d/%d gates done today", res.GatesDone, len(engine.AllGates))))
				if res.Day != nil {
					printDayResult(cmd, res.Day)
				}
				return nil
			}

			day, err := svc.CompleteDay(ctx, id)
			if err != nil {
				return err
			}
			printDayResult(cmd, day)
			return nil
		},
	}

	return cmd
}

func printDayResult(cmd *cobra.Command, day *engine.DayResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s day complete — streak day %d\n", ui.IconFlame, day.StreakDay)
	if day.TierUp {
		fmt.Fprintf(out, "%s %s → %s\n", ui.BadgeTierUp, ui.TierText(string(day.TierBefore)), ui.TierText(string(day.TierAfter)))
	} else if day.LevelUp {
		fmt.Fprintf(out, "%s level %d → %d\n", ui.IconSparkle, day.LevelBefore, day.LevelAfter)
	}
	if day.Milestone != nil {
		fmt.Fprintf(out, "%s milestone! +%d coins", ui.IconStar, day.Milestone.Coins)
		if day.Milestone.Stars > 0 {
			fmt.Fprintf(out, ", +%d stars", day.Milestone.Stars)
		}
		if day.WillGain > 0 {
			fmt.Fprintf(out, ", +%.1f Will", day.WillGain)
		}
		fmt.Fprintln(out)
	} else if day.SubBonus != nil {
		fmt.Fprintf(out, "%s sub-milestone: +%d coins\n", ui.IconSparkle, day.SubBonus.Coins)
	}
	if day.Prestiged {
		fmt.Fprintln(out, ui.Gold.Render("🌀 prestige! streak ladder advanced"))
	}
}
