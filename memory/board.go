package memory

import (
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/game"
)

// BoardMemory owns the grid and the move history. Every accepted update
// pushes the previous grid so that Undo restores it exactly.
type BoardMemory struct {
	me      board.Side
	grid    board.Grid
	grids   []board.Grid
	history MoveHistory
}

func NewBoardMemory(me board.Side) *BoardMemory {
	return &BoardMemory{me: me, grid: board.NewGrid(me)}
}

func (b *BoardMemory) Grid() *board.Grid {
	return &b.grid
}

func (b *BoardMemory) History() *MoveHistory {
	return &b.history
}

// GridFromState builds the grid for an external position, from me's point
// of view.
func GridFromState(me board.Side, st game.State) board.Grid {
	g := board.NewGrid(me)
	for p, s := range st.Occupied() {
		if p.OnBoard() {
			g.Set(p.Padded(), board.Relative(me, s))
		}
	}
	return g
}

// diff finds the interior cells where next differs from the current grid.
// A placement is the only legal change; anything else is reported through
// a ConsistencyError.
func (b *BoardMemory) diff(next *board.Grid) (board.Coord, bool, error) {
	var (
		changed, removed int
		at               board.Coord
	)
	for _, c := range board.InteriorCoords() {
		old, nv := b.grid.At(c), next.At(c)
		if old == nv {
			continue
		}
		changed++
		if old != board.Empty {
			removed++
		}
		at = c
	}
	switch {
	case changed == 0:
		return board.Coord{}, false, nil
	case changed > 1 || removed > 0:
		return board.Coord{}, false, &ConsistencyError{Changed: changed, Removed: removed}
	}
	return at, true, nil
}

// apply installs next as the current grid. It returns the placed coordinate
// and false when nothing changed.
func (b *BoardMemory) apply(next *board.Grid) (board.Coord, bool, error) {
	c, ok, err := b.diff(next)
	if err != nil || !ok {
		return c, false, err
	}
	b.grids = append(b.grids, b.grid)
	b.grid = *next
	b.history.Push(c)
	return c, true, nil
}

func (b *BoardMemory) undo() (board.Coord, error) {
	if len(b.grids) == 0 || b.history.Empty() {
		return board.Coord{}, ErrEmptyHistory
	}
	c, err := b.history.Pop()
	if err != nil {
		return c, err
	}
	b.grid = b.grids[len(b.grids)-1]
	b.grids = b.grids[:len(b.grids)-1]
	return c, nil
}

// reset replaces everything with next. The history becomes the occupied
// cells in row-major order and there is nothing to undo.
func (b *BoardMemory) reset(next *board.Grid) {
	b.grid = *next
	b.grids = b.grids[:0]
	var moves []board.Coord
	for _, c := range board.InteriorCoords() {
		if b.grid.At(c) != board.Empty {
			moves = append(moves, c)
		}
	}
	b.history.reset(moves)
}
