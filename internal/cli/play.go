package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/example/xdplay/internal/adapters/tui"
	"github.com/example/xdplay/internal/wire"
)

var playCmd = &cobra.Command{
	Use:   "play <puzzle.xd>...",
	Short: "Play puzzles in the terminal",
	Long: `Play one or more .xd puzzles. Guesses and notes go to <id>.xd-guesses.jsonl
in the team directory, so everyone pointing at the same directory plays the
same grid. Ctrl-N rotates to the next puzzle.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fd := os.Stdout.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return fmt.Errorf("play needs a terminal; use show, guess or status from scripts")
		}
		poll, _ := cmd.Flags().GetDuration("poll")
		return runPlay(cmd.Context(), args, poll)
	},
}

func runPlay(ctx context.Context, paths []string, poll time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := wire.Config()
	if err != nil {
		return err
	}
	player, err := wire.PlayerService(ctx, paths)
	if err != nil {
		return err
	}
	logger := wire.Logger()

	// fall back to polling when change notification is unavailable
	var wake <-chan struct{}
	if w, err := wire.JournalWatcher(); err != nil {
		logger.Warn("journal watcher unavailable", "error", err)
	} else {
		defer w.Close()
		if wake, err = w.Watch(ctx, player.JournalPaths()); err != nil {
			logger.Warn("failed to watch journals", "error", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	logger.Info("play started", "puzzles", len(paths), "user", cfg.User)
	err = tui.New(screen, player, tui.Config{
		Options:      &cfg.Options,
		Wake:         wake,
		PollInterval: poll,
		Logger:       logger,
	}).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	playCmd.Flags().Duration("poll", tui.DefaultPollInterval, "how often to check journals for other players' guesses")
}

// PlayCmd returns the play command
func PlayCmd() *cobra.Command {
	return playCmd
}
