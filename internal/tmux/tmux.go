// Package tmux opens shared-terminal team sessions.
package tmux

import (
	"fmt"
	"strings"
)

// PaneSpec describes one player pane.
type PaneSpec struct {
	Player  string
	Command []string // argv run as the pane's root process
}

// TeamLayout describes a session with one window of player panes.
type TeamLayout struct {
	SessionName string
	WindowName  string
	WorkingDir  string
	Panes       []PaneSpec
}

// AttachInstructions returns user-friendly instructions for attaching to session
func AttachInstructions(sessionName string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Attach to session: tmux attach -t %s\n", sessionName))
	b.WriteString("\n")
	b.WriteString("Window Layout:\n")
	b.WriteString("  One tiled pane per player, all sharing the team journals\n")
	b.WriteString("\n")
	b.WriteString("TMux Commands:\n")
	b.WriteString("  Switch panes: Ctrl+b then arrow keys\n")
	b.WriteString("  Zoom pane: Ctrl+b then z\n")
	b.WriteString("  Detach session: Ctrl+b then d\n")

	return b.String()
}
