package primary

import "context"

// TeamService defines the primary port for starting a shared team session.
type TeamService interface {
	// StartTeam opens a tmux session with one player pane per name, all
	// playing the same puzzles against the same team directory.
	StartTeam(ctx context.Context, req StartTeamRequest) (*StartTeamResponse, error)
}

// StartTeamRequest contains parameters for starting a team session.
type StartTeamRequest struct {
	SessionName string // defaults to xdplay-<first puzzle id>
	WorkingDir  string
	TeamDir     string
	Players     []string
	Puzzles     []string
	Command     string
}

// StartTeamResponse contains the result of starting a team session.
type StartTeamResponse struct {
	SessionName        string
	AttachInstructions string
}
