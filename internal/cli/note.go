package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/wire"
)

var noteCmd = &cobra.Command{
	Use:   "note <puzzle.xd> <clue> <text>...",
	Short: "Leave a note on a clue for the team",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PuzzleAdapter(cmd.Context(), args[0], os.Stdout)
		if err != nil {
			return err
		}
		return adapter.Note(cmd.Context(), args[1], strings.Join(args[2:], " "))
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <puzzle.xd> [clue]",
	Short: "List notes on one clue, or on every clue",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.PuzzleAdapter(cmd.Context(), args[0], os.Stdout)
		if err != nil {
			return err
		}
		clue := ""
		if len(args) == 2 {
			clue = args[1]
		}
		return adapter.Notes(cmd.Context(), clue)
	},
}

// NoteCmd returns the note command
func NoteCmd() *cobra.Command {
	return noteCmd
}

// NotesCmd returns the notes command
func NotesCmd() *cobra.Command {
	return notesCmd
}
