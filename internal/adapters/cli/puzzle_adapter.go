package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/xdplay/internal/core/puzzle"
	"github.com/example/xdplay/internal/ports/primary"
)

// PuzzleAdapter runs one-shot commands against a puzzle session: the same
// journal operations as the player, without a terminal UI.
type PuzzleAdapter struct {
	session primary.Session
	out     io.Writer
}

// NewPuzzleAdapter creates a new PuzzleAdapter over a replayed session.
func NewPuzzleAdapter(session primary.Session, out io.Writer) *PuzzleAdapter {
	return &PuzzleAdapter{
		session: session,
		out:     out,
	}
}

// Show prints the grid coloured by solver, then the standings.
func (a *PuzzleAdapter) Show(ctx context.Context) error {
	snap := a.session.Snapshot()
	a.header(snap)

	for _, row := range snap.Cells {
		cells := make([]string, len(row))
		for x, c := range row {
			switch {
			case c.Block:
				cells[x] = puzzle.Block
			case !c.Filled:
				cells[x] = puzzle.Unfilled
			default:
				cells[x] = slotColor(c.Slot).Sprint(c.Glyph)
			}
		}
		fmt.Fprintf(a.out, "  %s\n", strings.Join(cells, " "))
	}
	for _, r := range snap.Rebus {
		fmt.Fprintf(a.out, "  %s = %s\n", r.Symbol, r.Value)
	}
	fmt.Fprintln(a.out)

	a.standings(snap)
	return nil
}

// Status checks completion and prints progress.
func (a *PuzzleAdapter) Status(ctx context.Context) error {
	res, err := a.session.Check(ctx)
	if err != nil {
		return err
	}
	snap := a.session.Snapshot()
	a.header(snap)
	a.standings(snap)

	switch {
	case snap.Completed:
		fmt.Fprintln(a.out, color.New(color.FgGreen).Sprint("✓ complete"))
	case res.Filled && !res.Correct:
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprintf("no cigar! %d are wrong", res.Wrong))
	default:
		fmt.Fprintln(a.out, "in progress")
	}
	return nil
}

// Guess enters answer into the clue named by target ("A1"), or a single
// value into the cell named by target ("x,y"). In a clue answer "." erases
// a cell and a parenthesised run such as "(STAR)" fills one rebus cell.
// A guess that finishes the puzzle marks it complete.
func (a *PuzzleAdapter) Guess(ctx context.Context, target, answer string) error {
	if id, err := puzzle.ParseClueID(strings.ToUpper(target)); err == nil {
		if err := a.guessClue(ctx, id, answer); err != nil {
			return err
		}
		return a.checkDone(ctx)
	}
	c, err := parseCoord(target)
	if err != nil {
		return fmt.Errorf("target %q is neither a clue nor x,y", target)
	}
	if err := a.session.SetAt(ctx, c, answer); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s = %s\n", c, strings.ToUpper(answer))
	return a.checkDone(ctx)
}

func (a *PuzzleAdapter) guessClue(ctx context.Context, id puzzle.ClueID, answer string) error {
	if !a.session.JumpToClue(id) {
		return fmt.Errorf("no clue %s in this puzzle", id)
	}
	coords := clueCells(a.session.Snapshot(), id)
	cells, err := splitCells(answer)
	if err != nil {
		return err
	}
	if len(cells) != len(coords) {
		return fmt.Errorf("%q has %d cells, %s needs %d", answer, len(cells), id, len(coords))
	}
	for i, v := range cells {
		if err := a.session.SetAt(ctx, coords[i], v); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "✓ %s = %s\n", id, strings.ToUpper(answer))
	return nil
}

func (a *PuzzleAdapter) checkDone(ctx context.Context) error {
	res, err := a.session.Check(ctx)
	if err != nil {
		return err
	}
	if res.Marked {
		fmt.Fprintln(a.out, color.New(color.FgGreen).Sprint("✓ Puzzle complete"))
	}
	return nil
}

// Note appends a note to a clue.
func (a *PuzzleAdapter) Note(ctx context.Context, clue, text string) error {
	id, err := puzzle.ParseClueID(strings.ToUpper(clue))
	if err != nil {
		return err
	}
	if !a.session.JumpToClue(id) {
		return fmt.Errorf("no clue %s in this puzzle", id)
	}
	if err := a.session.AddNote(ctx, text); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Noted %s\n", id)
	return nil
}

// Notes prints the notes of one clue, or of every clue that has any when
// clue is empty.
func (a *PuzzleAdapter) Notes(ctx context.Context, clue string) error {
	var ids []puzzle.ClueID
	if clue != "" {
		id, err := puzzle.ParseClueID(strings.ToUpper(clue))
		if err != nil {
			return err
		}
		ids = append(ids, id)
	} else {
		snap := a.session.Snapshot()
		for _, cv := range append(snap.Across, snap.Down...) {
			if cv.Notes > 0 {
				ids = append(ids, cv.ID)
			}
		}
	}

	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}
	for _, id := range ids {
		if !a.session.JumpToClue(id) {
			return fmt.Errorf("no clue %s in this puzzle", id)
		}
		snap := a.session.Snapshot()
		fmt.Fprintf(a.out, "%s. %s\n", id, snap.Current.Text)
		for _, n := range snap.Notes {
			who := slotColor(n.Slot).Sprintf("<%s>", n.User)
			fmt.Fprintf(a.out, "  %s %s %s\n", n.Time.Local().Format("Jan _2 15:04"), who, n.Text)
		}
	}
	return nil
}

// Solve fills every empty cell from the solution and checks completion.
func (a *PuzzleAdapter) Solve(ctx context.Context) error {
	before := a.session.Snapshot().NSolved
	if err := a.session.Solve(ctx); err != nil {
		return err
	}
	if _, err := a.session.Check(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Solved %d cells\n", a.session.Snapshot().NSolved-before)
	return nil
}

// Save writes the puzzle document with the current fill.
func (a *PuzzleAdapter) Save(ctx context.Context) error {
	return a.session.Save(a.out)
}

func (a *PuzzleAdapter) header(snap *primary.Snapshot) {
	if snap.Title != "" {
		fmt.Fprintf(a.out, "\n%s (%s)\n", snap.ID, snap.Title)
	} else {
		fmt.Fprintf(a.out, "\n%s\n", snap.ID)
	}
	fmt.Fprintf(a.out, "Filled: %d/%d\n\n", snap.NSolved, snap.NCells)
}

func (a *PuzzleAdapter) standings(snap *primary.Snapshot) {
	for _, s := range snap.Solvers {
		fmt.Fprintf(a.out, "  %s %3d%%\n", slotColor(s.Slot).Sprintf("%-12s", s.User), s.Percent)
	}
	if len(snap.Solvers) > 0 {
		fmt.Fprintln(a.out)
	}
}

// clueCells lists the cells of a clue by walking the grid from its start.
func clueCells(snap *primary.Snapshot, id puzzle.ClueID) []puzzle.Coord {
	var start *puzzle.Coord
	for _, cv := range append(snap.Across, snap.Down...) {
		if cv.ID == id {
			s := cv.Start
			start = &s
			break
		}
	}
	if start == nil {
		return nil
	}
	dx, dy := 1, 0
	if id.Dir == puzzle.Down {
		dx, dy = 0, 1
	}
	var cells []puzzle.Coord
	for x, y := start.X, start.Y; y < snap.Rows && x < snap.Cols && !snap.Cells[y][x].Block; x, y = x+dx, y+dy {
		cells = append(cells, puzzle.Coord{X: x, Y: y})
	}
	return cells
}

// splitCells breaks a clue answer into per-cell values: one rune per cell,
// except a parenthesised run, which is one rebus cell.
func splitCells(answer string) ([]string, error) {
	var cells []string
	runes := []rune(answer)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '(' {
			cells = append(cells, string(runes[i]))
			continue
		}
		end := i + 1
		for end < len(runes) && runes[end] != ')' {
			end++
		}
		if end == len(runes) {
			return nil, fmt.Errorf("%q has an unclosed (", answer)
		}
		if end == i+1 {
			return nil, fmt.Errorf("%q has an empty ()", answer)
		}
		cells = append(cells, string(runes[i+1:end]))
		i = end
	}
	return cells, nil
}

func parseCoord(s string) (puzzle.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return puzzle.Coord{}, fmt.Errorf("missing comma in %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return puzzle.Coord{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return puzzle.Coord{}, err
	}
	return puzzle.Coord{X: x, Y: y}, nil
}
