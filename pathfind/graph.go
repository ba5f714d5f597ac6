package pathfind

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/structures"
)

const (
	sourceID = int64(board.NumCells)
	sinkID   = int64(board.NumCells + 1)
)

// Costs of entering a cell, from the point of view of the side travelling.
const (
	CostOwnStone         = 0.0
	CostOwnLink          = 0.1
	CostOpponentLink     = 10.0
	CostOwnTemplate      = 0.75
	CostOpponentTemplate = 3.0
	CostEmpty            = 1.0
)

// hexGraph exposes the playable cells of a grid as a weighted directed graph
// for one travelling side. A virtual source feeds every usable cell of the
// side's home edge and every usable cell of the far edge feeds a virtual
// sink. The weight of an edge is the cost of entering its head, except that
// edges leaving the source or reaching the sink weigh nothing.
type hexGraph struct {
	g        *board.Grid
	ix       *structures.Index
	own      board.Cell
	vertical bool
}

var _ graph.WeightedDirected = (*hexGraph)(nil)

func (h *hexGraph) blocked(c board.Coord) bool {
	return h.g.At(c) == h.own.Other()
}

// cost is the price of stepping onto c, or +Inf if c is not traversable.
func (h *hexGraph) cost(c board.Coord) float64 {
	switch v := h.g.At(c); {
	case v == h.own:
		return CostOwnStone
	case v == h.own.Other():
		return math.Inf(1)
	case h.ix.IsLinkCell(h.own, c):
		return CostOwnLink
	case h.ix.IsLinkCell(h.own.Other(), c):
		return CostOpponentLink
	case h.ix.IsTemplateCell(h.own, c):
		return CostOwnTemplate
	case h.ix.IsTemplateCell(h.own.Other(), c):
		return CostOpponentTemplate
	}
	return CostEmpty
}

func (h *hexGraph) onHomeEdge(c board.Coord) bool {
	if h.vertical {
		return c.Row == 1
	}
	return c.Col == 1
}

func (h *hexGraph) onFarEdge(c board.Coord) bool {
	if h.vertical {
		return c.Row == board.BoardSize
	}
	return c.Col == board.BoardSize
}

func cellOf(id int64) (board.Coord, bool) {
	if id < 0 || id >= int64(board.NumCells) {
		return board.Coord{}, false
	}
	c := board.CoordFromIndex(int(id))
	return c, c.Interior()
}

func (h *hexGraph) Node(id int64) graph.Node {
	if id == sourceID || id == sinkID {
		return simple.Node(id)
	}
	if _, ok := cellOf(id); ok {
		return simple.Node(id)
	}
	return nil
}

func (h *hexGraph) Nodes() graph.Nodes {
	nodes := make([]graph.Node, 0, board.BoardSize*board.BoardSize+2)
	for _, c := range board.InteriorCoords() {
		nodes = append(nodes, simple.Node(c.Index()))
	}
	nodes = append(nodes, simple.Node(sourceID), simple.Node(sinkID))
	return iterator.NewOrderedNodes(nodes)
}

// successors lists the heads of edges leaving id, in fixed direction order.
func (h *hexGraph) successors(id int64) []int64 {
	if id == sourceID {
		var out []int64
		for _, c := range board.InteriorCoords() {
			if h.onHomeEdge(c) && !h.blocked(c) {
				out = append(out, int64(c.Index()))
			}
		}
		return out
	}
	c, ok := cellOf(id)
	if !ok || h.blocked(c) {
		return nil
	}
	out := make([]int64, 0, 7)
	for _, d := range board.Directions {
		n := c.Add(d)
		if n.Interior() && !h.blocked(n) {
			out = append(out, int64(n.Index()))
		}
	}
	if h.onFarEdge(c) {
		out = append(out, sinkID)
	}
	return out
}

func toNodes(ids []int64) graph.Nodes {
	if len(ids) == 0 {
		return graph.Empty
	}
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = simple.Node(id)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (h *hexGraph) From(id int64) graph.Nodes {
	return toNodes(h.successors(id))
}

func (h *hexGraph) To(id int64) graph.Nodes {
	var ids []int64
	if h.HasEdgeFromTo(sourceID, id) {
		ids = append(ids, sourceID)
	}
	for _, c := range board.InteriorCoords() {
		if h.HasEdgeFromTo(int64(c.Index()), id) {
			ids = append(ids, int64(c.Index()))
		}
	}
	return toNodes(ids)
}

func (h *hexGraph) HasEdgeFromTo(uid, vid int64) bool {
	if uid == sourceID {
		c, ok := cellOf(vid)
		return ok && h.onHomeEdge(c) && !h.blocked(c)
	}
	u, ok := cellOf(uid)
	if !ok || h.blocked(u) {
		return false
	}
	if vid == sinkID {
		return h.onFarEdge(u)
	}
	v, ok := cellOf(vid)
	if !ok || h.blocked(v) {
		return false
	}
	for _, d := range board.Directions {
		if u.Add(d) == v {
			return true
		}
	}
	return false
}

func (h *hexGraph) HasEdgeBetween(xid, yid int64) bool {
	return h.HasEdgeFromTo(xid, yid) || h.HasEdgeFromTo(yid, xid)
}

func (h *hexGraph) Edge(uid, vid int64) graph.Edge {
	return h.WeightedEdge(uid, vid)
}

func (h *hexGraph) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	w, ok := h.Weight(uid, vid)
	if !ok || uid == vid {
		return nil
	}
	return simple.WeightedEdge{F: simple.Node(uid), T: simple.Node(vid), W: w}
}

// Weight is the cost of entering yid from xid. Edges out of the source and
// into the sink are free.
func (h *hexGraph) Weight(xid, yid int64) (float64, bool) {
	if xid == yid {
		return 0, true
	}
	if !h.HasEdgeFromTo(xid, yid) {
		return math.Inf(1), false
	}
	if xid == sourceID || yid == sinkID {
		return 0, true
	}
	c, _ := cellOf(yid)
	return h.cost(c), true
}
