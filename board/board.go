// Package board holds the padded Hex grid shared by every part of the
// engine. The playable area is BoardSize x BoardSize; it is surrounded by a
// one-cell ring of sentinel "border" values so that edge adjacency needs no
// special-casing.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BoardSize is the number of playable rows and columns.
	BoardSize = 14
	// Dim is the side of the padded grid.
	Dim = BoardSize + 2
	// NumCells is the number of cells in the padded grid.
	NumCells = Dim * Dim
)

// Cell is a tri-state cell value, relative to the engine's own side.
type Cell int8

const (
	Opp   Cell = -1
	Empty Cell = 0
	Mine  Cell = 1
)

func (c Cell) String() string {
	switch c {
	case Mine:
		return "mine"
	case Opp:
		return "opp"
	}
	return "empty"
}

// Other returns the opposing cell value. Empty stays empty.
func (c Cell) Other() Cell {
	return -c
}

// Side is an absolute player color.
type Side int8

const (
	NoSide Side = iota
	// Red connects the top and bottom edges.
	Red
	// Blue connects the left and right edges.
	Blue
)

var ErrUnknownSide = errors.New("unknown side")

func (s Side) String() string {
	switch s {
	case Red:
		return "R"
	case Blue:
		return "B"
	}
	return "-"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoSide
}

// Vertical is true for the side that connects top to bottom.
func (s Side) Vertical() bool {
	return s == Red
}

// SideFromString parses "R"/"red" or "B"/"blue".
func SideFromString(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "r", "red":
		return Red, nil
	case "b", "blue":
		return Blue, nil
	}
	return NoSide, fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// Relative converts an absolute side into a cell value as seen by me.
func Relative(me, s Side) Cell {
	switch s {
	case NoSide:
		return Empty
	case me:
		return Mine
	}
	return Opp
}

// Absolute converts a relative cell value back into a side.
func Absolute(me Side, c Cell) Side {
	switch c {
	case Mine:
		return me
	case Opp:
		return me.Other()
	}
	return NoSide
}

// Offset is a relative displacement on the grid.
type Offset struct {
	DRow, DCol int
}

// Directions are the six hex neighbours in a fixed order.
var Directions = [6]Offset{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, 1}, {1, -1},
}

// Coord is a position on the padded grid.
type Coord struct {
	Row, Col int
}

// Position is a position on the un-padded playable board, as seen by the
// game. Row and Col range over [0, BoardSize-1].
type Position struct {
	Row, Col int
}

// Padded converts a board position into a grid coordinate.
func (p Position) Padded() Coord {
	return Coord{p.Row + 1, p.Col + 1}
}

// OnBoard is true if the position lies on the playable board.
func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// String uses the usual Hex notation: column letter then 1-based row.
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

// Position strips the sentinel offset.
func (c Coord) Position() Position {
	return Position{c.Row - 1, c.Col - 1}
}

func (c Coord) Add(o Offset) Coord {
	return Coord{c.Row + o.DRow, c.Col + o.DCol}
}

// InBounds is true for any coordinate of the padded grid, sentinels included.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Dim && c.Col >= 0 && c.Col < Dim
}

// Interior is true for playable cells only.
func (c Coord) Interior() bool {
	return c.Row >= 1 && c.Row <= BoardSize && c.Col >= 1 && c.Col <= BoardSize
}

func (c Coord) Index() int {
	return c.Row*Dim + c.Col
}

func (c Coord) String() string {
	if c.Interior() {
		return c.Position().String()
	}
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// CoordFromIndex is the inverse of Coord.Index.
func CoordFromIndex(i int) Coord {
	return Coord{i / Dim, i % Dim}
}

// Grid is the padded board. It is a value type; copying it snapshots it.
type Grid [NumCells]Cell

// NewGrid returns an empty board with its sentinel ring filled in from
// me's point of view. Rows 0 and Dim-1 carry Red's value; columns 0 and
// Dim-1 carry Blue's and are written last, so the corners are Blue.
func NewGrid(me Side) Grid {
	var g Grid
	red := Relative(me, Red)
	blue := Relative(me, Blue)
	for i := 0; i < Dim; i++ {
		g[Coord{0, i}.Index()] = red
		g[Coord{Dim - 1, i}.Index()] = red
	}
	for i := 0; i < Dim; i++ {
		g[Coord{i, 0}.Index()] = blue
		g[Coord{i, Dim - 1}.Index()] = blue
	}
	return g
}

func (g *Grid) At(c Coord) Cell {
	return g[c.Index()]
}

func (g *Grid) Set(c Coord, v Cell) {
	g[c.Index()] = v
}

// Stones counts the real (interior) stones of the given value.
func (g *Grid) Stones(v Cell) int {
	n := 0
	for r := 1; r <= BoardSize; r++ {
		for c := 1; c <= BoardSize; c++ {
			if g[r*Dim+c] == v {
				n++
			}
		}
	}
	return n
}

// InteriorCoords lists every playable coordinate in row-major order.
func InteriorCoords() []Coord {
	coords := make([]Coord, 0, BoardSize*BoardSize)
	for r := 1; r <= BoardSize; r++ {
		for c := 1; c <= BoardSize; c++ {
			coords = append(coords, Coord{r, c})
		}
	}
	return coords
}
