package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/xdplay/internal/ports/primary"
)

// TeamAdapter translates the team command to TeamService calls.
type TeamAdapter struct {
	service primary.TeamService
	out     io.Writer
}

// NewTeamAdapter creates a new TeamAdapter with the given service.
func NewTeamAdapter(service primary.TeamService, out io.Writer) *TeamAdapter {
	return &TeamAdapter{
		service: service,
		out:     out,
	}
}

// Start opens the team session and prints how to attach to it.
func (a *TeamAdapter) Start(ctx context.Context, req primary.StartTeamRequest) error {
	resp, err := a.service.StartTeam(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Started team session %s with %d players\n", resp.SessionName, len(req.Players))
	fmt.Fprintln(a.out, resp.AttachInstructions)
	return nil
}
