package pathfind

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/structures"
)

func indexFor(g *board.Grid) *structures.Index {
	ix := structures.NewIndex()
	ix.Reset(g)
	return ix
}

func TestEmptyBoard(t *testing.T) {
	is := is.New(t)
	for _, me := range []board.Side{board.Red, board.Blue} {
		g := board.NewGrid(me)
		mine, opp := Both(&g, indexFor(&g), me)
		is.Equal(mine.Distance, float64(board.BoardSize-1)*CostEmpty)
		is.Equal(opp.Distance, float64(board.BoardSize-1)*CostEmpty)
		is.Equal(len(mine.Path), board.BoardSize)
	}
}

func TestFullLine(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	for r := 0; r < board.BoardSize; r++ {
		g.Set(board.Position{Row: r, Col: 4}.Padded(), board.Mine)
	}
	mine, opp := Both(&g, indexFor(&g), board.Red)
	is.Equal(mine.Distance, 0.0)
	is.Equal(len(mine.Path), board.BoardSize)
	// Blue is cut off by a full column of red stones.
	is.True(!opp.Connectable())
	is.True(math.IsInf(opp.Distance, 1))
}

func TestFullRowForBlue(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Blue)
	for c := 0; c < board.BoardSize; c++ {
		g.Set(board.Position{Row: 9, Col: c}.Padded(), board.Mine)
	}
	mine, opp := Both(&g, indexFor(&g), board.Blue)
	is.Equal(mine.Distance, 0.0)
	is.True(!opp.Connectable())
}

func TestBridgeLinksAreCheap(t *testing.T) {
	g := board.NewGrid(board.Red)
	// A ladder of red bridges down column 6 from row 1.
	for r := 1; r < board.BoardSize; r += 2 {
		g.Set(board.Position{Row: r, Col: 7 - r/2}.Padded(), board.Mine)
	}
	ix := indexFor(&g)
	mine := Shortest(&g, ix, board.Red, board.Mine)
	// Seven stones bridged to each other: each of the six gaps costs one
	// linking cell. The edge link is entered from the source for free.
	assert.InDelta(t, 6*CostOwnLink, mine.Distance, 1e-9)

	// The same cells are expensive for Blue.
	opp := Shortest(&g, ix, board.Red, board.Opp)
	assert.Greater(t, opp.Distance, float64(board.BoardSize-1))
}

func TestCostOrder(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	g.Set(board.Position{Row: 6, Col: 6}.Padded(), board.Mine)
	g.Set(board.Position{Row: 4, Col: 7}.Padded(), board.Mine)
	ix := indexFor(&g)
	h := &hexGraph{g: &g, ix: ix, own: board.Mine, vertical: true}
	link := board.Position{Row: 5, Col: 6}.Padded()
	is.Equal(h.cost(link), CostOwnLink)
	is.Equal(h.cost(board.Position{Row: 6, Col: 6}.Padded()), CostOwnStone)
	is.Equal(h.cost(board.Position{Row: 0, Col: 0}.Padded()), CostEmpty)

	ho := &hexGraph{g: &g, ix: ix, own: board.Opp, vertical: false}
	is.Equal(ho.cost(link), CostOpponentLink)
	is.True(math.IsInf(ho.cost(board.Position{Row: 6, Col: 6}.Padded()), 1))
}

func TestEdgeConnectionsAreFree(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	h := &hexGraph{g: &g, ix: indexFor(&g), own: board.Mine, vertical: true}
	top := int64(board.Position{Row: 0, Col: 3}.Padded().Index())
	bottom := int64(board.Position{Row: board.BoardSize - 1, Col: 3}.Padded().Index())

	w, ok := h.Weight(sourceID, top)
	is.True(ok)
	is.Equal(w, 0.0)
	w, ok = h.Weight(bottom, sinkID)
	is.True(ok)
	is.Equal(w, 0.0)

	// Moving between empty cells still costs.
	below := int64(board.Position{Row: 1, Col: 3}.Padded().Index())
	w, ok = h.Weight(top, below)
	is.True(ok)
	is.Equal(w, CostEmpty)

	// The source only feeds the home edge.
	_, ok = h.Weight(sourceID, below)
	is.True(!ok)
}
