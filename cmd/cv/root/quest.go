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

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage side quests",
	}
	cmd.AddCommand(newQuestAddCmd(), newQuestDoneCmd(), newQuestListCmd())
	return cmd
}

func newQuestAddCmd() *cobra.Command {
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule a quest for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.CreateQuest(ctx, engine.CreateQuestInput{
				Title:       args[0],
				IsRecurring: recurring,
			})
			if err != nil {
				return err
			}

			kind := "one-off"
			if q.IsRecurring {
				kind = "recurring"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s quest [%d] %s (%s)\n",
				ui.IconQuest, q.ID, ui.Title.Render(q.Title), kind)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recurring, "recurring", "r", false, "reopen the quest at every daily reset")

	return cmd
}

func newQuestDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <quest-id>",
		Short: "Mark a quest completed",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("quest id must be an integer")
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
			if err := svc.CompleteQuest(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s quest %d completed\n", ui.IconDone, id)
			return nil
		},
	}

	return cmd
}

func newQuestListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.QuestRepo().ListAll(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests"))
			if len(quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("no quests — try: cv quest add \"Stretch\""))
				return nil
			}
			for _, q := range quests {
				mark := " "
				if q.Status == engine.QuestStatusCompleted {
					mark = "x"
				}
				line := fmt.Sprintf("[%s] %d. %s", mark, q.ID, q.Title)
				if q.IsRecurring {
					line += " " + ui.Muted.Render("(recurring)")
				}
				line += " " + ui.Muted.Render(q.Day)
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}
