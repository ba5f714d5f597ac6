package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/domino14/hexengine/board"
)

// MoveType is a type of move: a stone placement or the synthetic probe.
type MoveType uint8

const (
	MoveTypePlace MoveType = iota
	// MoveTypeProbe is never played. The search uses it as a marker inside
	// a candidate list.
	MoveTypeProbe
)

var (
	ErrBadCoords = errors.New("cannot parse coordinates")
)

// Move is a stone placement by a side on a grid coordinate.
type Move struct {
	action MoveType
	side   board.Side
	coord  board.Coord
}

var reAlgebraic, reNumeric *regexp.Regexp

func init() {
	reAlgebraic = regexp.MustCompile(`^(?P<col>[a-nA-N])(?P<row>[0-9]+)$`)
	reNumeric = regexp.MustCompile(`^(?P<row>[0-9]+)\s*,\s*(?P<col>[0-9]+)$`)
}

// NewPlacementMove places a stone on a padded grid coordinate.
func NewPlacementMove(side board.Side, c board.Coord) Move {
	return Move{action: MoveTypePlace, side: side, coord: c}
}

// NewMoveAt places a stone on an un-padded board position.
func NewMoveAt(side board.Side, p board.Position) Move {
	return NewPlacementMove(side, p.Padded())
}

func NewProbeMove() Move {
	return Move{action: MoveTypeProbe}
}

func (m Move) Action() MoveType {
	return m.action
}

func (m Move) IsProbe() bool {
	return m.action == MoveTypeProbe
}

func (m Move) Side() board.Side {
	return m.side
}

// Coord is the padded grid coordinate.
func (m Move) Coord() board.Coord {
	return m.coord
}

// Position is the un-padded board position.
func (m Move) Position() board.Position {
	return m.coord.Position()
}

func (m Move) ShortDescription() string {
	if m.IsProbe() {
		return "(probe)"
	}
	return m.coord.Position().String()
}

func (m Move) String() string {
	if m.IsProbe() {
		return "<probe>"
	}
	return fmt.Sprintf("<%s %s>", m.side, m.coord.Position())
}

// ParsePosition accepts either Hex notation ("h6": column letter, 1-based
// row) or a zero-based "row,col" pair.
func ParsePosition(s string) (board.Position, error) {
	s = strings.TrimSpace(s)
	if m := reAlgebraic.FindStringSubmatch(s); m != nil {
		row, err := strconv.Atoi(m[2])
		if err != nil {
			return board.Position{}, err
		}
		p := board.Position{Row: row - 1, Col: int(strings.ToLower(m[1])[0] - 'a')}
		if !p.OnBoard() {
			return board.Position{}, fmt.Errorf("%w: %q is off the board", ErrBadCoords, s)
		}
		return p, nil
	}
	if m := reNumeric.FindStringSubmatch(s); m != nil {
		row, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		p := board.Position{Row: row, Col: col}
		if !p.OnBoard() {
			return board.Position{}, fmt.Errorf("%w: %q is off the board", ErrBadCoords, s)
		}
		return p, nil
	}
	return board.Position{}, fmt.Errorf("%w: %q", ErrBadCoords, s)
}
