package search

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/memory"
	"github.com/domino14/hexengine/move"
)

// BridgeReply returns the cell owner must take to restore a bridge that the
// last move broke.
func BridgeReply(mem *memory.Memory, owner board.Cell) (board.Coord, bool) {
	g := mem.Grid()
	for _, b := range mem.Structures.BrokenLinks(owner) {
		for _, c := range b.Remaining {
			if c.Interior() && g.At(c) == board.Empty {
				return c, true
			}
		}
	}
	return board.Coord{}, false
}

// forcedMove returns the move owner must play at this node, if any. A broken
// bridge is always answered. A broken edge template of our own is answered
// by a local search over its remaining cells, at the root of a full search
// only.
func (s *Solver) forcedMove(st game.State, owner board.Cell, depth int) (*move.Move, error) {
	side := board.Absolute(s.mem.Me(), owner)
	if c, ok := BridgeReply(s.mem, owner); ok {
		m := move.NewPlacementMove(side, c)
		log.Debug().Int("depth", depth).Str("move", m.ShortDescription()).Msg("forced-bridge-reply")
		return &m, nil
	}
	if owner != board.Mine || s.area != nil || depth != 0 {
		return nil, nil
	}
	broken := s.mem.Structures.BrokenTemplates(board.Mine)
	if len(broken) == 0 {
		return nil, nil
	}
	area := broken[0].Remaining
	log.Debug().Str("template", broken[0].Key.String()).Int("cells", len(area)).Msg("template-local-search")

	local := s.localSolver(area)
	_, m, err := local.Solve(st, s.localDepth)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// localSolver returns a solver that shares our memory but keeps its own
// depth, area, coefficients and score cache.
func (s *Solver) localSolver(area []board.Coord) *Solver {
	eval := s.eval.Clone()
	eval.SetLocal(true)
	return &Solver{
		mem:          s.mem,
		eval:         eval,
		src:          s.src,
		area:         area,
		branching:    s.localBranching,
		opening:      s.opening,
		disablePrune: s.disablePrune,
	}
}
