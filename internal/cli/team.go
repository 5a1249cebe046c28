package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/wire"
)

var teamCmd = &cobra.Command{
	Use:   "team <puzzle.xd>...",
	Short: "Open a tmux session with one player pane per name",
	Long: `Open a tmux session whose window holds one pane per player, each running
"xdplay play" on the same puzzles against the same team directory.

Example:
  xdplay team --players ann,bob,cat nyt-2024-01-01.xd`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		players, _ := cmd.Flags().GetStringSlice("players")
		session, _ := cmd.Flags().GetString("session")
		command, _ := cmd.Flags().GetString("command")

		cfg, err := wire.Config()
		if err != nil {
			return err
		}
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		if command == "" {
			if exe, err := os.Executable(); err == nil {
				command = exe
			}
		}

		adapter, err := wire.TeamAdapter(os.Stdout)
		if err != nil {
			return err
		}
		return adapter.Start(cmd.Context(), primary.StartTeamRequest{
			SessionName: session,
			WorkingDir:  cwd,
			TeamDir:     cfg.TeamDir,
			Players:     players,
			Puzzles:     args,
			Command:     command,
		})
	},
}

func init() {
	teamCmd.Flags().StringSliceP("players", "p", nil, "player names, one pane each (required)")
	teamCmd.Flags().StringP("session", "s", "", "tmux session name (default xdplay-<puzzle id>)")
	teamCmd.Flags().String("command", "", "player binary started in each pane (default this binary)")
	teamCmd.MarkFlagRequired("players")
}

// TeamCmd returns the team command
func TeamCmd() *cobra.Command {
	return teamCmd
}
