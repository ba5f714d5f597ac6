package memory

import (
	"github.com/samber/lo"

	"github.com/domino14/hexengine/board"
)

// MoveHistory is a stack of coordinates that never holds the same
// coordinate twice.
type MoveHistory struct {
	moves []board.Coord
}

// Push adds c on top unless it is already in the stack. It reports whether
// c was added.
func (h *MoveHistory) Push(c board.Coord) bool {
	if lo.Contains(h.moves, c) {
		return false
	}
	h.moves = append(h.moves, c)
	return true
}

func (h *MoveHistory) Pop() (board.Coord, error) {
	if len(h.moves) == 0 {
		return board.Coord{}, ErrEmptyHistory
	}
	c := h.moves[len(h.moves)-1]
	h.moves = h.moves[:len(h.moves)-1]
	return c, nil
}

// Peek returns the most recent move, if any.
func (h *MoveHistory) Peek() (board.Coord, bool) {
	if len(h.moves) == 0 {
		return board.Coord{}, false
	}
	return h.moves[len(h.moves)-1], true
}

func (h *MoveHistory) Len() int {
	return len(h.moves)
}

func (h *MoveHistory) Empty() bool {
	return len(h.moves) == 0
}

func (h *MoveHistory) Contains(c board.Coord) bool {
	return lo.Contains(h.moves, c)
}

// Moves returns the history in play order.
func (h *MoveHistory) Moves() []board.Coord {
	return append([]board.Coord(nil), h.moves...)
}

func (h *MoveHistory) reset(moves []board.Coord) {
	h.moves = append(h.moves[:0], moves...)
}
