package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/wire"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List puzzles completed on this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user-filter")
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.HistoryAdapter().List(cmd.Context(), user, limit)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <xdid>",
	Short: "Show one completed puzzle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.HistoryAdapter().Show(cmd.Context(), args[0])
		return err
	},
}

func init() {
	historyCmd.Flags().StringP("user-filter", "u", "", "only completions observed by this player")
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of completions (0 for all)")

	historyCmd.AddCommand(historyShowCmd)
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	return historyCmd
}
