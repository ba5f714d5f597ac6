// Package pathfind computes, for each side, the cheapest way to connect its
// two edges given the stones and structures on the board.
package pathfind

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/structures"
)

// Result is a side's shortest connection: its cost and the cells on it,
// from the home edge to the far edge. Distance is +Inf when the side can no
// longer connect.
type Result struct {
	Distance float64
	Path     []board.Coord
}

func (r Result) Connectable() bool {
	return !math.IsInf(r.Distance, 1)
}

// Shortest runs Dijkstra for owner (Mine or Opp). me is the engine's side,
// which fixes which pair of edges owner has to connect.
func Shortest(g *board.Grid, ix *structures.Index, me board.Side, owner board.Cell) Result {
	hg := &hexGraph{
		g:        g,
		ix:       ix,
		own:      owner,
		vertical: board.Absolute(me, owner).Vertical(),
	}
	nodes, w := path.DijkstraFromTo(simple.Node(sourceID), simple.Node(sinkID), hg)
	if len(nodes) == 0 || math.IsInf(w, 1) {
		return Result{Distance: math.Inf(1)}
	}
	cells := make([]board.Coord, 0, len(nodes))
	for _, n := range nodes {
		if c, ok := cellOf(n.ID()); ok {
			cells = append(cells, c)
		}
	}
	return Result{Distance: w, Path: cells}
}

// Both computes the results for the engine's side and its opponent.
func Both(g *board.Grid, ix *structures.Index, me board.Side) (mine, opp Result) {
	return Shortest(g, ix, me, board.Mine), Shortest(g, ix, me, board.Opp)
}
