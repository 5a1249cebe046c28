// Package journal defines the guess/note records of a puzzle journal and
// their line encoding.
// This is part of the Functional Core - no I/O, only pure functions.
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/example/xdplay/internal/core/puzzle"
)

// FileSuffix is appended to a puzzle id to name its journal file.
const FileSuffix = ".xd-guesses.jsonl"

// ErrCompleted is returned when appending to a journal that has been marked
// done.
var ErrCompleted = errors.New("puzzle submitted! submitted puzzles cannot be changed")

// Kind distinguishes guess records from note records.
type Kind int

const (
	KindGuess Kind = iota
	KindNote
)

// Record is one journal line.
type Record struct {
	Kind Kind
	User string
	Time time.Time // zero when the line carried no time

	// guess fields
	Coord puzzle.Coord
	Ch    string
	XDID  string

	// note fields
	Clue puzzle.ClueID
	Note string
}

// Guess builds a guess record.
func Guess(xdid string, c puzzle.Coord, ch, user string, at time.Time) Record {
	return Record{Kind: KindGuess, XDID: xdid, Coord: c, Ch: ch, User: user, Time: at}
}

// NewNote builds a note record.
func NewNote(clue puzzle.ClueID, text, user string, at time.Time) Record {
	return Record{Kind: KindNote, Clue: clue, Note: text, User: user, Time: at}
}

// IsNote reports whether r is a note record.
func (r Record) IsNote() bool {
	return r.Kind == KindNote
}

type guessLine struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Ch   string   `json:"ch"`
	User string   `json:"user,omitempty"`
	XDID string   `json:"xdid,omitempty"`
	Time *float64 `json:"time,omitempty"`
}

type noteLine struct {
	Dirnum string   `json:"dirnum"`
	User   string   `json:"user,omitempty"`
	Note   string   `json:"note"`
	Time   *float64 `json:"time,omitempty"`
}

type wireLine struct {
	X      *int     `json:"x"`
	Y      *int     `json:"y"`
	Ch     *string  `json:"ch"`
	User   string   `json:"user"`
	XDID   string   `json:"xdid"`
	Dirnum string   `json:"dirnum"`
	Note   *string  `json:"note"`
	Time   *float64 `json:"time"`
}

// Encode renders r as a single line terminated by '\n'.
func Encode(r Record) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch r.Kind {
	case KindNote:
		if r.Clue.IsZero() {
			return nil, fmt.Errorf("note record has no clue")
		}
		b, err = json.Marshal(noteLine{
			Dirnum: r.Clue.String(),
			User:   r.User,
			Note:   r.Note,
			Time:   unixSeconds(r.Time),
		})
	default:
		if r.Ch == "" {
			return nil, fmt.Errorf("guess record at %s has no character", r.Coord)
		}
		b, err = json.Marshal(guessLine{
			X:    r.Coord.X,
			Y:    r.Coord.Y,
			Ch:   r.Ch,
			User: r.User,
			XDID: r.XDID,
			Time: unixSeconds(r.Time),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses one line. Lines carrying a "note" field are notes; all others
// must be guesses with x, y and ch.
func Decode(line []byte) (Record, error) {
	var w wireLine
	if err := json.Unmarshal(bytes.TrimSpace(line), &w); err != nil {
		return Record{}, fmt.Errorf("invalid journal line: %w", err)
	}
	r := Record{User: w.User, Time: fromUnixSeconds(w.Time)}
	if w.Note != nil {
		id, err := puzzle.ParseClueID(w.Dirnum)
		if err != nil {
			return Record{}, fmt.Errorf("invalid note record: %w", err)
		}
		r.Kind = KindNote
		r.Clue = id
		r.Note = *w.Note
		return r, nil
	}
	if w.X == nil || w.Y == nil || w.Ch == nil || *w.Ch == "" {
		return Record{}, fmt.Errorf("guess record missing x, y or ch")
	}
	if *w.Ch == puzzle.Block || *w.Ch == "_" {
		return Record{}, fmt.Errorf("guess record cannot fill a cell with %q", *w.Ch)
	}
	r.Kind = KindGuess
	r.Coord = puzzle.Coord{X: *w.X, Y: *w.Y}
	r.Ch = *w.Ch
	r.XDID = w.XDID
	return r, nil
}

func unixSeconds(t time.Time) *float64 {
	if t.IsZero() {
		return nil
	}
	s := float64(t.UnixNano()) / float64(time.Second)
	return &s
}

func fromUnixSeconds(s *float64) time.Time {
	if s == nil {
		return time.Time{}
	}
	sec, frac := math.Modf(*s)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
