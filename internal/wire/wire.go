// Package wire provides dependency injection for xdplay.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	cliadapter "github.com/example/xdplay/internal/adapters/cli"
	"github.com/example/xdplay/internal/adapters/filesystem"
	"github.com/example/xdplay/internal/adapters/sqlite"
	tmuxadapter "github.com/example/xdplay/internal/adapters/tmux"
	"github.com/example/xdplay/internal/adapters/watch"
	"github.com/example/xdplay/internal/app"
	"github.com/example/xdplay/internal/config"
	"github.com/example/xdplay/internal/db"
	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/tmux"
)

// Settings are the global command line flags.
type Settings struct {
	ConfigPath string
	DBPath     string
	User       string
	TeamDir    string
	Verbose    bool
}

var (
	settings Settings

	cfg     *config.Config
	cfgErr  error
	cfgOnce sync.Once

	logger  *slog.Logger
	logFile *os.File
	logOnce sync.Once

	historyRepo    *sqlite.HistoryRepository
	historyService primary.HistoryService
	once           sync.Once
)

// Configure records the global flags. It must be called before any other
// function in this package.
func Configure(s Settings) {
	settings = s
}

// ConfigPath returns the --config flag or ~/.xdplay/config.json.
func ConfigPath() (string, error) {
	if settings.ConfigPath != "" {
		return settings.ConfigPath, nil
	}
	return config.DefaultPath()
}

// Config returns the resolved configuration: file, then environment, then flags.
func Config() (*config.Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, cfgErr
}

func loadConfig() {
	path, err := ConfigPath()
	if err != nil {
		cfgErr = err
		return
	}
	c, err := config.Resolve(path, os.Getenv)
	if err != nil {
		cfgErr = err
		return
	}
	if settings.User != "" {
		c.User = settings.User
	}
	if settings.TeamDir != "" {
		c.TeamDir = settings.TeamDir
	}
	cfg = c
}

// LogPath returns the log file location, ~/.xdplay/xdplay.log.
func LogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".xdplay", "xdplay.log"), nil
}

// Logger returns the process logger. The player owns the terminal, so logs
// go to a file; every line carries this process's session id.
func Logger() *slog.Logger {
	logOnce.Do(initLogger)
	return logger
}

func initLogger() {
	level := slog.LevelInfo
	if settings.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	if path, err := LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				logFile = f
				w = f
			}
		}
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("session", uuid.NewString(), "pid", os.Getpid())
	slog.SetDefault(logger)
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	Logger()

	if settings.DBPath != "" {
		db.SetPath(settings.DBPath)
	}

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	historyRepo = sqlite.NewHistoryRepository(database)
	historyService = app.NewHistoryService(historyRepo)
}

// PlayerService loads the puzzles in paths against the configured journal
// directory and replays the first one.
func PlayerService(ctx context.Context, paths []string) (*app.PlayerServiceImpl, error) {
	c, err := Config()
	if err != nil {
		return nil, err
	}
	once.Do(initServices)

	return app.NewPlayerService(ctx, paths,
		filesystem.NewPuzzleStore(),
		filesystem.NewJournalDir(c.JournalDir()),
		historyRepo,
		app.SessionConfig{
			User:         c.User,
			RebusSymbols: c.RebusSymbols,
			Logger:       Logger(),
		})
}

// TeamService returns a TeamService backed by tmux. Fails when tmux is not
// available.
func TeamService() (primary.TeamService, error) {
	g, err := tmux.NewGotmuxAdapter()
	if err != nil {
		return nil, err
	}
	return app.NewTeamService(tmuxadapter.NewAdapter(g)), nil
}

// JournalWatcher returns a new watcher for journal changes. The caller
// closes it.
func JournalWatcher() (*watch.JournalWatcher, error) {
	return watch.NewJournalWatcher(Logger())
}

// PuzzleAdapter returns a PuzzleAdapter over the puzzle at path, its journal
// already replayed.
func PuzzleAdapter(ctx context.Context, path string, out io.Writer) (*cliadapter.PuzzleAdapter, error) {
	player, err := PlayerService(ctx, []string{path})
	if err != nil {
		return nil, err
	}
	return cliadapter.NewPuzzleAdapter(player.Current(), out), nil
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return HistoryAdapterWithOutput(os.Stdout)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(HistoryService(), out)
}

// TeamAdapter returns a new TeamAdapter writing to the given output.
func TeamAdapter(out io.Writer) (*cliadapter.TeamAdapter, error) {
	svc, err := TeamService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewTeamAdapter(svc, out), nil
}

// Shutdown closes the database and the log file.
func Shutdown() {
	if err := db.Close(); err != nil && logger != nil {
		logger.Warn("failed to close database", "error", err)
	}
	if logFile != nil {
		logFile.Close()
	}
}
