package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/ports/secondary"
)

// TeamServiceImpl implements the TeamService interface.
type TeamServiceImpl struct {
	launcher secondary.TeamLauncher
}

// NewTeamService creates a new TeamService with injected dependencies.
func NewTeamService(launcher secondary.TeamLauncher) *TeamServiceImpl {
	return &TeamServiceImpl{launcher: launcher}
}

// StartTeam validates the roster and launches the session.
func (s *TeamServiceImpl) StartTeam(ctx context.Context, req primary.StartTeamRequest) (*primary.StartTeamResponse, error) {
	if len(req.Puzzles) == 0 {
		return nil, errors.New("at least one puzzle is required")
	}
	if err := validatePlayers(req.Players); err != nil {
		return nil, err
	}

	name := req.SessionName
	if name == "" {
		name = TeamSessionName(req.Puzzles[0])
	}
	if s.launcher.SessionExists(ctx, name) {
		return nil, fmt.Errorf("session %s already exists\n\n%s", name, s.launcher.AttachInstructions(name))
	}

	team := secondary.TeamSession{
		Name:       name,
		WorkingDir: req.WorkingDir,
		TeamDir:    req.TeamDir,
		Players:    req.Players,
		Puzzles:    req.Puzzles,
		Command:    req.Command,
	}
	if err := s.launcher.Launch(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to launch team session: %w", err)
	}

	return &primary.StartTeamResponse{
		SessionName:        name,
		AttachInstructions: s.launcher.AttachInstructions(name),
	}, nil
}

// TeamSessionName derives a tmux-safe session name from a puzzle path.
func TeamSessionName(puzzlePath string) string {
	id := strings.TrimSuffix(filepath.Base(puzzlePath), filepath.Ext(puzzlePath))
	id = strings.Map(func(r rune) rune {
		if r == '.' || r == ':' || unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, id)
	return "xdplay-" + id
}

// Player names become journal authors and pane commands, so they must be
// unique single words.
func validatePlayers(players []string) error {
	if len(players) == 0 {
		return errors.New("at least one player is required")
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == "" || strings.IndexFunc(p, unicode.IsSpace) >= 0 {
			return fmt.Errorf("invalid player name %q", p)
		}
		if seen[p] {
			return fmt.Errorf("player %s listed twice", p)
		}
		seen[p] = true
	}
	return nil
}

// Ensure TeamServiceImpl implements the interface.
var _ primary.TeamService = (*TeamServiceImpl)(nil)
