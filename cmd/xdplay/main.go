package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/cli"
	"github.com/example/xdplay/internal/version"
	"github.com/example/xdplay/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "xdplay",
		Short:   "xdplay - collaborative terminal crosswords",
		Version: version.String(),
		Long: `xdplay plays .xd crosswords in the terminal. Several players can fill the
same grid at once: every guess and note is appended to a shared journal file
next to the puzzle (or in $TEAMDIR), and each player replays the others' entries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Playing
	rootCmd.AddCommand(cli.PlayCmd())
	rootCmd.AddCommand(cli.TeamCmd())

	// Scripted access to a puzzle's journal
	rootCmd.AddCommand(cli.ShowCmd())
	rootCmd.AddCommand(cli.SaveCmd())
	rootCmd.AddCommand(cli.GuessCmd())
	rootCmd.AddCommand(cli.NoteCmd())
	rootCmd.AddCommand(cli.NotesCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.SolveCmd())

	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
