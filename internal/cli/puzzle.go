package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/wire"
)

var showCmd = &cobra.Command{
	Use:   "show <puzzle.xd>",
	Short: "Print the grid as the team has filled it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PuzzleAdapter(cmd.Context(), args[0], os.Stdout)
		if err != nil {
			return err
		}
		return adapter.Show(cmd.Context())
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <puzzle.xd>",
	Short: "Write the puzzle document with the current fill",
	Long:  "Write the puzzle document with the team's fill to stdout, or to a file with --output.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			adapter, err := wire.PuzzleAdapter(ctx, args[0], os.Stdout)
			if err != nil {
				return err
			}
			return adapter.Save(ctx)
		}

		player, err := wire.PlayerService(ctx, args)
		if err != nil {
			return err
		}
		if err := player.SaveCurrent(ctx, output); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", output)
		return nil
	},
}

var guessCmd = &cobra.Command{
	Use:   "guess <puzzle.xd> <clue|x,y> <answer>",
	Short: "Enter an answer for a clue or a single cell",
	Long: `Enter an answer for a clue ("A1 CAT") or a value for one cell ("3,0 T").
A "." in a clue answer erases that cell and "(STAR)" fills one rebus cell.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PuzzleAdapter(cmd.Context(), args[0], os.Stdout)
		if err != nil {
			return err
		}
		return adapter.Guess(cmd.Context(), args[1], args[2])
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve <puzzle.xd>",
	Short: "Fill every empty cell from the solution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PuzzleAdapter(cmd.Context(), args[0], os.Stdout)
		if err != nil {
			return err
		}
		return adapter.Solve(cmd.Context())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <puzzle.xd>",
	Short: "Show progress and check for completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PuzzleAdapter(cmd.Context(), args[0], os.Stdout)
		if err != nil {
			return err
		}
		return adapter.Status(cmd.Context())
	},
}

func init() {
	saveCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	return showCmd
}

// SaveCmd returns the save command
func SaveCmd() *cobra.Command {
	return saveCmd
}

// GuessCmd returns the guess command
func GuessCmd() *cobra.Command {
	return guessCmd
}

// SolveCmd returns the solve command
func SolveCmd() *cobra.Command {
	return solveCmd
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return statusCmd
}
