package tmux

import (
	"fmt"
	"os/exec"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// GotmuxAdapter wraps gotmux library for session lifecycle management
type GotmuxAdapter struct {
	tmux *gotmux.Tmux
}

// NewGotmuxAdapter creates a new gotmux adapter
func NewGotmuxAdapter() (*GotmuxAdapter, error) {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux client: %w", err)
	}
	return &GotmuxAdapter{
		tmux: tmux,
	}, nil
}

// respawnArgs is the tmux argv that restarts pane with command as its root
// process. Each argv element stays one word, so paths with spaces survive.
func respawnArgs(paneID string, command []string) []string {
	return append([]string{"respawn-pane", "-t", paneID, "-k"}, command...)
}

// CreateTeamSession creates a session whose first window holds one pane per
// player, tiled. Each pane's root process is the player's command.
func (g *GotmuxAdapter) CreateTeamSession(layout TeamLayout) error {
	if len(layout.Panes) == 0 {
		return fmt.Errorf("team session %s has no players", layout.SessionName)
	}

	// Create session with plain shell; the first pane is respawned below
	session, err := g.tmux.NewSession(&gotmux.SessionOptions{
		Name:           layout.SessionName,
		StartDirectory: layout.WorkingDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := g.layoutPanes(session, layout); err != nil {
		// a half-built team is worse than none
		if kerr := g.KillSession(layout.SessionName); kerr != nil {
			return fmt.Errorf("%w (cleanup failed: %v)", err, kerr)
		}
		return err
	}
	return nil
}

func (g *GotmuxAdapter) layoutPanes(session *gotmux.Session, layout TeamLayout) error {
	windows, err := session.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	if len(windows) == 0 {
		return fmt.Errorf("no windows found in new session")
	}
	window := windows[0]
	if err := window.Rename(layout.WindowName); err != nil {
		return fmt.Errorf("failed to rename window: %w", err)
	}

	panes, err := window.ListPanes()
	if err != nil || len(panes) == 0 {
		return fmt.Errorf("failed to get initial pane: %w", err)
	}

	for i := 1; i < len(layout.Panes); i++ {
		// Alternate split direction so tiling starts from a balanced grid
		dir := gotmux.PaneSplitDirectionVertical
		if i%2 == 0 {
			dir = gotmux.PaneSplitDirectionHorizontal
		}
		if err := panes[0].SplitWindow(&gotmux.SplitWindowOptions{
			SplitDirection: dir,
			StartDirectory: layout.WorkingDir,
		}); err != nil {
			return fmt.Errorf("failed to split pane for %s: %w", layout.Panes[i].Player, err)
		}
		// tiled keeps every split wide enough for the next one
		if err := window.SelectLayout("tiled"); err != nil {
			return fmt.Errorf("failed to apply tiled layout: %w", err)
		}
	}

	panes, err = window.ListPanes()
	if err != nil {
		return fmt.Errorf("failed to list panes: %w", err)
	}
	if len(panes) != len(layout.Panes) {
		return fmt.Errorf("expected %d panes, found %d", len(layout.Panes), len(panes))
	}

	// Every player becomes its pane's root process via respawn-pane -k, which
	// takes an argv; SplitWindowOptions only takes a shell string
	for i, p := range panes {
		player := layout.Panes[i]
		if err := exec.Command("tmux", respawnArgs(p.Id, player.Command)...).Run(); err != nil {
			return fmt.Errorf("failed to respawn pane for %s: %w", player.Player, err)
		}
	}

	// @player is readable via #{@player} in pane borders
	for i, p := range panes {
		if err := p.SetOption("@player", layout.Panes[i].Player); err != nil {
			return fmt.Errorf("failed to set @player=%s: %w", layout.Panes[i].Player, err)
		}
	}
	if err := window.SetOption("pane-border-format", " #{@player} "); err != nil {
		return fmt.Errorf("failed to set pane-border-format: %w", err)
	}
	if err := window.SetOption("pane-border-status", "top"); err != nil {
		return fmt.Errorf("failed to set pane-border-status: %w", err)
	}

	return nil
}

// GetSession returns a gotmux Session by name, or nil if not found.
func (g *GotmuxAdapter) GetSession(name string) (*gotmux.Session, error) {
	sessions, err := g.tmux.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

// SessionExists checks if a tmux session exists
func (g *GotmuxAdapter) SessionExists(name string) bool {
	s, err := g.GetSession(name)
	return err == nil && s != nil
}

// KillSession terminates a tmux session
func (g *GotmuxAdapter) KillSession(name string) error {
	s, err := g.GetSession(name)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session %s not found", name)
	}
	return s.Kill()
}
