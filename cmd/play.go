package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <lesson-file>...",
	Short: "Play the given lesson files",
	Long: `Open the TUI on the first lesson. The other files stay in the lesson
library and are candidates for the "up next" recommendation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}
