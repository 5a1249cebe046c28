package secondary

import "context"

// TeamSession describes a tmux session with one player pane per user.
type TeamSession struct {
	Name       string
	WorkingDir string
	TeamDir    string
	Players    []string
	Puzzles    []string // puzzle paths passed to every pane
	Command    string   // player binary, defaults to "xdplay"
}

// TeamLauncher defines the secondary port for opening shared-terminal team sessions.
type TeamLauncher interface {
	// SessionExists reports whether a session with this name is running.
	SessionExists(ctx context.Context, name string) bool

	// Launch creates the session and one pane per player.
	Launch(ctx context.Context, team TeamSession) error

	// AttachInstructions returns the command a user runs to join the session.
	AttachInstructions(sessionName string) string
}
