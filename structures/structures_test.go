package structures

import (
	"testing"

	"github.com/matryer/is"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/hexengine/board"
)

func pos(r, c int) board.Coord {
	return board.Position{Row: r, Col: c}.Padded()
}

func TestRegistryAddRemove(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()
	k1 := BridgeKey(pos(5, 5), pos(3, 6))
	k2 := BridgeKey(pos(5, 5), pos(4, 7))
	is.True(r.Add(k1, []board.Coord{pos(4, 5), pos(4, 6)}))
	is.True(r.Add(k2, []board.Coord{pos(4, 6), pos(5, 6)}))
	is.True(!r.Add(BridgeKey(pos(3, 6), pos(5, 5)), nil))
	is.Equal(r.Using(pos(4, 6)), []Key{k1, k2})
	is.True(r.Consistent())

	is.True(r.Remove(k1))
	is.True(!r.Has(pos(4, 5)))
	is.Equal(r.Using(pos(4, 6)), []Key{k2})
	is.True(r.Consistent())
	is.True(!r.Remove(k1))
}

func TestBridgeDetection(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	a, b := pos(6, 6), pos(4, 7)
	g.Set(a, board.Mine)
	g.Set(b, board.Mine)

	ix := NewIndex()
	ix.Reset(&g)
	k := BridgeKey(a, b)
	cells, ok := ix.Links(board.Mine).Cells(k)
	is.True(ok)
	assert.ElementsMatch(t, []board.Coord{pos(5, 6), pos(5, 7)}, cells)
	is.Equal(ix.Links(board.Mine).Len(), 1)
	is.True(ix.IsLinkCell(board.Mine, pos(5, 6)))
	is.True(!ix.IsLinkCell(board.Opp, pos(5, 6)))

	// The opponent takes one linking cell.
	g.Set(pos(5, 6), board.Opp)
	ix.Update(&g, pos(5, 6))
	_, ok = ix.Links(board.Mine).Cells(k)
	is.True(!ok)
	broken := ix.BrokenLinks(board.Mine)
	is.Equal(len(broken), 1)
	is.Equal(broken[0].Key, k)
	is.Equal(broken[0].Remaining, []board.Coord{pos(5, 7)})
	is.Equal(broken[0].BrokenBy, pos(5, 6))
	is.Equal(len(ix.BrokenLinks(board.Opp)), 0)
	is.True(ix.Consistent())
}

func TestOwnMoveOnLinkIsNotABreak(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Blue)
	g.Set(pos(6, 6), board.Mine)
	g.Set(pos(4, 7), board.Mine)
	ix := NewIndex()
	ix.Reset(&g)

	g.Set(pos(5, 6), board.Mine)
	ix.Update(&g, pos(5, 6))
	is.Equal(len(ix.BrokenLinks(board.Mine)), 0)
	is.Equal(ix.Links(board.Mine).Len(), 0)
}

func TestBridgeToEdge(t *testing.T) {
	is := is.New(t)
	// Red on the second row bridges to the top sentinel row.
	g := board.NewGrid(board.Red)
	g.Set(pos(1, 6), board.Mine)
	ix := NewIndex()
	ix.Reset(&g)
	k := BridgeKey(pos(1, 6), board.Coord{Row: 0, Col: 8})
	cells, ok := ix.Links(board.Mine).Cells(k)
	is.True(ok)
	assert.ElementsMatch(t, []board.Coord{pos(0, 6), pos(0, 7)}, cells)
}

func TestUndoRestoresBrokenRecords(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	g.Set(pos(6, 6), board.Opp)
	g.Set(pos(4, 7), board.Opp)
	ix := NewIndex()
	ix.Reset(&g)
	before := ix.Snapshot()

	g.Set(pos(5, 7), board.Mine)
	ix.Update(&g, pos(5, 7))
	is.Equal(len(ix.BrokenLinks(board.Opp)), 1)
	mid := ix.Snapshot()

	g.Set(pos(10, 10), board.Opp)
	ix.Update(&g, pos(10, 10))
	is.Equal(len(ix.BrokenLinks(board.Opp)), 0)

	g.Set(pos(10, 10), board.Empty)
	ix.Undo(&g)
	is.Equal(ix.Snapshot(), mid)

	g.Set(pos(5, 7), board.Empty)
	ix.Undo(&g)
	is.Equal(ix.Snapshot(), before)
}

func TestBottomTemplate(t *testing.T) {
	is := is.New(t)
	// Red (vertical) stone three rows from the bottom edge on an empty
	// board: the depth-3 template matches.
	g := board.NewGrid(board.Red)
	anchor := board.Coord{Row: 12, Col: 7}
	g.Set(anchor, board.Mine)
	ix := NewIndex()
	ix.Reset(&g)

	k := TemplateKey(anchor)
	cells, ok := ix.Templates(board.Mine).Cells(k)
	is.True(ok)
	is.Equal(len(cells), 8)
	for _, c := range cells {
		is.True(c.Interior())
		is.True(c.Row > anchor.Row || c.Row == anchor.Row)
	}
	is.True(ix.IsTemplateCell(board.Mine, board.Coord{Row: 14, Col: 6}))

	// A Blue stone at the same place is not on its own edge.
	g2 := board.NewGrid(board.Blue)
	g2.Set(anchor, board.Mine)
	ix2 := NewIndex()
	ix2.Reset(&g2)
	is.Equal(ix2.Templates(board.Opp).Len(), 0)
	is.Equal(ix2.Templates(board.Mine).Len(), 0)
}

func TestTemplatesOnEveryEdge(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		me     board.Side
		anchor board.Coord
	}{
		{board.Red, board.Coord{Row: 3, Col: 7}},
		{board.Red, board.Coord{Row: 12, Col: 7}},
		{board.Blue, board.Coord{Row: 7, Col: 3}},
		{board.Blue, board.Coord{Row: 7, Col: 12}},
		{board.Red, board.Coord{Row: 11, Col: 7}},
	}
	for _, tc := range cases {
		g := board.NewGrid(tc.me)
		g.Set(tc.anchor, board.Mine)
		ix := NewIndex()
		ix.Reset(&g)
		cells, ok := ix.Templates(board.Mine).Cells(TemplateKey(tc.anchor))
		is.True(ok)
		for _, c := range cells {
			is.True(c.Interior())
		}
	}
}

func TestBrokenTemplate(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	anchor := board.Coord{Row: 12, Col: 7}
	g.Set(anchor, board.Mine)
	ix := NewIndex()
	ix.Reset(&g)

	taken := board.Coord{Row: 14, Col: 6}
	g.Set(taken, board.Opp)
	ix.Update(&g, taken)
	broken := ix.BrokenTemplates(board.Mine)
	is.Equal(len(broken), 1)
	is.Equal(broken[0].Key, TemplateKey(anchor))
	is.Equal(len(broken[0].Remaining), 7)
	is.True(!lo.Contains(broken[0].Remaining, taken))
}

func TestTemplateShapes(t *testing.T) {
	is := is.New(t)
	for _, shapes := range []map[int][]board.Offset{baseShapes, mirrorShapes} {
		is.Equal(len(shapes[3]), 8)
		is.Equal(len(shapes[4]), 19)
		is.Equal(shapes[5], nil)
		for _, d := range []int{3, 4} {
			is.Equal(len(lo.Uniq(shapes[d])), len(shapes[d]))
			for _, o := range shapes[d] {
				// Nothing above the anchor row, nothing past the edge.
				is.True(o.DRow >= 0 && o.DRow < d)
			}
		}
	}
	// Rotating twice by 180 degrees gives the shape back.
	is.Equal(orient(baseShapes[4], rot180, rot180), baseShapes[4])
}
