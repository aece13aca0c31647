package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cultivator/internal/engine"
	"cultivator/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show profile, identities, streak, and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			rank, err := svc.OverallRank(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Cultivator Status"))
			fmt.Fprintln(out, ui.LabelValue("Rank", fmt.Sprintf("%s (score %.2f)", ui.Gold.Render(rank.RankTier), rank.FinalScore)))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s%d", ui.IconCoin, p.Coins)))
			fmt.Fprintln(out, ui.LabelValue("Stars", fmt.Sprintf("%s%d", ui.IconStar, p.Stars)))
			fmt.Fprintln(out, ui.LabelValue("Will", fmt.Sprintf("%s%.1f / %.0f", ui.IconWill, p.Will, engine.MaxTotalWill)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Dimensions"))
			fmt.Fprintf(out, "- 💪 body: %.2f (rank %d)\n", p.StatBody, engine.StatRankValue(p.StatBody))
			fmt.Fprintf(out, "- 🧠 mind: %.2f (rank %d)\n", p.StatMind, engine.StatRankValue(p.StatMind))
			fmt.Fprintf(out, "- 🧘 soul: %.2f (rank %d)\n", p.StatSoul, engine.StatRankValue(p.StatSoul))
			fmt.Fprintf(out, "- 💎 will: %.2f (rank %d)\n", p.StatWill, engine.StatRankValue(p.StatWill))
			fmt.Fprintln(out, "")

			idents, err := svc.IdentityRepo().ListActive(ctx)
			if err != nil {
				return err
			}
			streak, err := svc.StreakRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.H2.Render(ui.IconPath+" Identities"))
			if len(idents) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("none yet — try: cv path \"Monk\""))
			}
			for _, ident := range idents {
				visual := engine.StreakVisualState(streak.CurrentStreak, streak.CurrentLevel)
				fmt.Fprintf(out, "- [%d] %s — %s lvl %d (%d/%d days) %s\n",
					ident.ID, ui.Title.Render(ident.Name), ui.TierText(ident.Tier),
					ident.Level, ident.DaysCompleted, ident.RequiredDays,
					ui.StageText(visual.Stage))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconFlame+" Streak"))
			milestone := engine.MilestoneDays(streak.CurrentLevel)
			fmt.Fprintf(out, "- day %d of %d (prestige level %d, best %d)\n",
				streak.CurrentStreak, milestone, streak.CurrentLevel, streak.MaxStreak)
			fmt.Fprintln(out, "")

			achievements, err := engine.GetAchievementsForProfile(ctx, svc)
			if err != nil {
				return err
			}
			earned := 0
			for _, a := range achievements {
				if a.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("🏆 Achievements (%d/%d)", earned, len(achievements))))
			for _, a := range achievements {
				if a.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description))
				}
			}

			return nil
		},
	}

	return cmd
}
