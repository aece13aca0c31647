package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cultivator/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List shop items with current prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.ShopView(ctx)
			if err != nil {
				return err
			}
			p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconShop, "Shop"))
			fmt.Fprintln(out, ui.LabelValue("Coins", p.Coins))
			fmt.Fprintln(out, "")

			category := ""
			for _, e := range entries {
				if e.Item.Category != category {
					category = e.Item.Category
					fmt.Fprintln(out, ui.H2.Render(category))
				}
				line := fmt.Sprintf("- %s %s", ui.Key.Render(e.Item.ID), e.Item.Title)
				if e.CurrentPrice != nil {
					line += fmt.Sprintf(" — %s%d", ui.IconCoin, *e.CurrentPrice)
					if e.InflationPercent > 0 {
						line += " " + ui.Muted.Render(fmt.Sprintf("(+%.0f%% %s", e.InflationPercent, ui.BandText(e.Band)))
						if e.ResetIn != "" {
							line += ui.Muted.Render(", resets in "+e.ResetIn)
						}
						line += ui.Muted.Render(")")
					}
				} else {
					line += fmt.Sprintf(" — %s%d", ui.IconCoin, e.Item.CostCoins)
				}
				if e.InventoryCount > 0 {
					line += " " + ui.Muted.Render(fmt.Sprintf("[held: %d]", e.InventoryCount))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase a shop item at its current price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Purchase(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s bought %s for %s%d (balance %d)\n",
				ui.IconTicket, res.ItemID, ui.IconCoin, res.PricePaid, res.NewBalance)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("ticket "+res.TicketID))
			return nil
		},
	}

	return cmd
}
