// Package tmux contains TMux adapter implementations.
package tmux

import (
	"context"

	"github.com/example/xdplay/internal/config"
	"github.com/example/xdplay/internal/ports/secondary"
	tmuxpkg "github.com/example/xdplay/internal/tmux"
)

// DefaultCommand is the player binary started in each pane.
const DefaultCommand = "xdplay"

// Adapter implements secondary.TeamLauncher by wrapping the internal/tmux package.
type Adapter struct {
	gotmux *tmuxpkg.GotmuxAdapter
}

// NewAdapter creates a new TMux adapter.
func NewAdapter(g *tmuxpkg.GotmuxAdapter) *Adapter {
	return &Adapter{gotmux: g}
}

// SessionExists checks if a TMux session exists.
func (a *Adapter) SessionExists(ctx context.Context, name string) bool {
	return a.gotmux.SessionExists(name)
}

// Launch creates the team session with one player pane per user.
func (a *Adapter) Launch(ctx context.Context, team secondary.TeamSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.gotmux.CreateTeamSession(Layout(team))
}

// AttachInstructions returns user-friendly instructions for attaching to a session.
func (a *Adapter) AttachInstructions(sessionName string) string {
	return tmuxpkg.AttachInstructions(sessionName)
}

// Layout maps a team session onto panes, one per player in order.
func Layout(team secondary.TeamSession) tmuxpkg.TeamLayout {
	layout := tmuxpkg.TeamLayout{
		SessionName: team.Name,
		WindowName:  "xdplay",
		WorkingDir:  team.WorkingDir,
	}
	for _, player := range team.Players {
		layout.Panes = append(layout.Panes, tmuxpkg.PaneSpec{
			Player:  player,
			Command: PlayerCommand(team, player),
		})
	}
	return layout
}

// PlayerCommand returns the argv that starts player's pane: the player
// binary in play mode, with the player name and team directory passed
// through the environment.
func PlayerCommand(team secondary.TeamSession, player string) []string {
	command := team.Command
	if command == "" {
		command = DefaultCommand
	}
	argv := []string{"env", config.EnvUser + "=" + player}
	if team.TeamDir != "" {
		argv = append(argv, config.EnvTeamDir+"="+team.TeamDir)
	}
	argv = append(argv, command, "play")
	return append(argv, team.Puzzles...)
}

// Ensure Adapter implements the interface.
var _ secondary.TeamLauncher = (*Adapter)(nil)
