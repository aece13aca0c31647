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

func newPathCmd() *cobra.Command {
	var retire bool

	cmd := &cobra.Command{
		Use:   "path <name|id>",
		Short: "Adopt a new identity path (or retire one with --retire)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name (or id with --retire) is required")
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

			if retire {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return errors.New("--retire expects a numeric identity id")
				}
				if err := svc.RetireIdentity(ctx, id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("identity retired; history preserved"))
				return nil
			}

			ident, err := svc.CreateIdentity(ctx, engine.CreateIdentityInput{Name: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s adopted (id %d, tier %s)\n",
				ui.IconPath, ui.Title.Render(ident.Name), ident.ID, ui.TierText(ident.Tier))
			return nil
		},
	}

	cmd.Flags().BoolVar(&retire, "retire", false, "Retire (soft-delete) the identity with the given id")
	return cmd
}
