package victory

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/structures"
)

func setup(me board.Side, stones map[board.Position]board.Cell) (*board.Grid, *structures.Index) {
	g := board.NewGrid(me)
	for p, v := range stones {
		g.Set(p.Padded(), v)
	}
	ix := structures.NewIndex()
	ix.Reset(&g)
	return &g, ix
}

func TestCompleteChainWins(t *testing.T) {
	is := is.New(t)
	stones := map[board.Position]board.Cell{}
	for r := 0; r < board.BoardSize; r++ {
		stones[board.Position{Row: r, Col: 3}] = board.Mine
	}
	g, ix := setup(board.Red, stones)
	d := &Detector{}
	score, ok := d.Check(g, ix, board.Red)
	is.True(ok)
	is.Equal(score, WinScore)
	is.True(!Connected(g, ix, board.Red, board.Opp))
}

func TestOpponentChainLoses(t *testing.T) {
	is := is.New(t)
	stones := map[board.Position]board.Cell{}
	for c := 0; c < board.BoardSize; c++ {
		stones[board.Position{Row: board.BoardSize - 1 - c, Col: c}] = board.Opp
	}
	// Red engine, Blue opponent connecting left to right.
	g, ix := setup(board.Red, stones)
	d := &Detector{}
	score, ok := d.Check(g, ix, board.Red)
	is.True(ok)
	is.Equal(score, -WinScore)
}

func TestIncompleteChain(t *testing.T) {
	is := is.New(t)
	stones := map[board.Position]board.Cell{}
	for r := 0; r < board.BoardSize; r++ {
		if r == 6 || r == 7 {
			continue
		}
		stones[board.Position{Row: r, Col: 3}] = board.Mine
	}
	g, ix := setup(board.Red, stones)
	d := &Detector{}
	score, ok := d.Check(g, ix, board.Red)
	is.True(ok)
	is.Equal(score, 0.0)
}

func TestBridgesCountAsConnected(t *testing.T) {
	is := is.New(t)
	stones := map[board.Position]board.Cell{}
	for r := 1; r < board.BoardSize; r += 2 {
		stones[board.Position{Row: r, Col: 7 - r/2}] = board.Mine
	}
	g, ix := setup(board.Red, stones)
	is.True(Connected(g, ix, board.Red, board.Mine))

	// Filling one linking cell still leaves the bridge's other cell; filling
	// both cuts the chain.
	g.Set(board.Position{Row: 4, Col: 6}.Padded(), board.Opp)
	g.Set(board.Position{Row: 4, Col: 5}.Padded(), board.Opp)
	ix.Reset(g)
	is.True(!Connected(g, ix, board.Red, board.Mine))
}

func TestTemplateReachesEdge(t *testing.T) {
	is := is.New(t)
	// A Blue row from the left edge to k7. The stone on k7 is four columns
	// from the right edge and has a depth-4 template to it.
	stones := map[board.Position]board.Cell{}
	for c := 0; c <= 10; c++ {
		stones[board.Position{Row: 6, Col: c}] = board.Mine
	}
	g, ix := setup(board.Blue, stones)
	is.True(ix.Templates(board.Mine).Len() > 0)
	is.True(Connected(g, ix, board.Blue, board.Mine))
}

func TestDeactivate(t *testing.T) {
	is := is.New(t)
	d := &Detector{}
	g, ix := setup(board.Red, nil)
	_, ok := d.Check(g, ix, board.Red)
	is.True(ok)
	d.Deactivate()
	is.True(!d.Active())
	score, ok := d.Check(g, ix, board.Red)
	is.True(!ok)
	is.Equal(score, 0.0)
}
