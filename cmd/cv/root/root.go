package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cultivator/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "cv",
	Short:         "Cultivator — local-first daily path tracker",
	Long:          "Cultivator is a local-first CLI/TUI habit tracker where daily practice levels identities through a 13-tier ladder.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newPathCmd(),
		newDoCmd(),
		newCalendarCmd(),
		newStatusCmd(),
		newResetCmd(),
		newShopCmd(),
		newBuyCmd(),
		newQuestCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
