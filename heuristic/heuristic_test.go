package heuristic

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/cache"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/memory"
	"github.com/domino14/hexengine/victory"
)

func column(col int) []board.Position {
	var ps []board.Position
	for r := 0; r < board.BoardSize; r++ {
		ps = append(ps, board.Position{Row: r, Col: col})
	}
	return ps
}

func memoryFor(t *testing.T, me board.Side, red, blue []board.Position) *memory.Memory {
	t.Helper()
	g, err := game.NewGameFromStones(red, blue, board.Red)
	require.NoError(t, err)
	m := memory.New(me)
	m.Rebuild(g)
	return m
}

func TestEmptyBoardScore(t *testing.T) {
	m := memory.New(board.Red)
	e := NewEvaluator(cache.NewScoreCache())
	e.Prepare(m)
	c := e.Coefficients()
	assert.Equal(t, 0.7, c.Alpha)
	assert.Equal(t, 5.0, c.Delta)
	assert.Equal(t, 0.0, c.Gamma)

	want := -0.7*13/MaxDistance + 5.0*13/MaxDistance
	assert.InDelta(t, want, e.Evaluate(m), 1e-9)
	assert.Equal(t, 1, e.Cache().Len())
}

func TestCacheHit(t *testing.T) {
	is := is.New(t)
	m := memoryFor(t, board.Blue, []board.Position{{Row: 6, Col: 6}}, nil)
	e := NewEvaluator(cache.NewScoreCache())
	e.Prepare(m)
	v1 := e.Evaluate(m)
	v2 := e.Evaluate(m)
	is.Equal(v1, v2)
	hits, misses := e.Cache().Stats()
	is.Equal(hits, 1)
	is.Equal(misses, 1)
}

func TestCompleteChainIsAWin(t *testing.T) {
	is := is.New(t)
	red := memoryFor(t, board.Red, column(7), nil)
	e := NewEvaluator(cache.NewScoreCache())
	e.Prepare(red)
	is.Equal(e.Evaluate(red), victory.WinScore)
	// Verdicts are not cached.
	is.Equal(e.Cache().Len(), 0)

	blue := memoryFor(t, board.Blue, column(7), nil)
	e = NewEvaluator(cache.NewScoreCache())
	is.Equal(e.Evaluate(blue), -victory.WinScore)
}

func TestInfiniteDistance(t *testing.T) {
	is := is.New(t)
	blue := memoryFor(t, board.Blue, column(7), nil)
	blue.Win.Deactivate()
	e := NewEvaluator(cache.NewScoreCache())
	e.Prepare(blue)
	is.Equal(e.Evaluate(blue), LosingScore)
	is.Equal(e.Cache().Len(), 0)

	red := memoryFor(t, board.Red, column(7), nil)
	red.Win.Deactivate()
	e = NewEvaluator(cache.NewScoreCache())
	e.Prepare(red)
	// Red's own distance is zero and Blue is cut off.
	is.Equal(e.Evaluate(red), WinningScore)
}

func TestExplainMatchesEvaluate(t *testing.T) {
	m := memoryFor(t, board.Red,
		[]board.Position{{Row: 4, Col: 7}, {Row: 6, Col: 6}},
		[]board.Position{{Row: 5, Col: 9}})
	e := NewEvaluator(cache.NewScoreCache())
	e.Prepare(m)
	b := e.Explain(m)
	assert.False(t, b.Decided)
	assert.Equal(t, 1, b.MyLinks)
	assert.InDelta(t, b.Score, e.Evaluate(m), 1e-12)
	assert.Contains(t, b.String(), "bridges (me)")
}

func TestCenterControl(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	is.Equal(CenterControl(&g), 0.0)

	g.Set(board.Coord{Row: 7, Col: 7}, board.Mine)
	g.Set(board.Coord{Row: 8, Col: 8}, board.Mine)
	g.Set(board.Coord{Row: 1, Col: 1}, board.Opp)
	maxDist := math.Hypot(7.5, 7.5)
	want := 2 * (1 - math.Hypot(0.5, 0.5)/maxDist)
	assert.InDelta(t, want, CenterControl(&g), 1e-12)
}

func TestBlocking(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(board.Red)
	path := []board.Coord{{Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 3, Col: 5}, {Row: 3, Col: 6}}
	is.Equal(Blocking(&g, nil), 0.0)
	g.Set(path[1], board.Mine)
	is.Equal(Blocking(&g, path), 0.25)
}

func TestSchedule(t *testing.T) {
	is := is.New(t)
	base := DefaultCoefficients()

	c := Schedule(base, 3, false)
	is.Equal(c.Gamma, 0.0)
	is.Equal(c.Epsilon, 1.5)
	is.Equal(c.Alpha, 1.0)
	is.Equal(c.Delta, 3.0)

	c = Schedule(base, 12, false)
	is.Equal(c.Gamma, 0.08)
	is.Equal(c.Epsilon, 2.0)

	c = Schedule(base, 40, true)
	is.Equal(c.Gamma, 0.02)
	is.Equal(c.Epsilon, 2.0)
	is.Equal(c.Alpha, 0.7)
	is.Equal(c.Delta, 5.0)

	l := Local(c)
	is.Equal(l.Alpha, 100.0)
	is.Equal(l.Zeta, 100.0)
	is.Equal(l.Delta, 0.0)
	is.Equal(l.Gamma, c.Gamma)
}

func TestPins(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigHeuristicGamma, 0.5)
	pins := PinsFromConfig(cfg)
	is.Equal(len(pins), 1)
	is.True(pins.Set("heuristic.nope", 1) != nil)

	m := memory.New(board.Red)
	e := NewEvaluator(cache.NewScoreCache())
	e.SetPins(pins)
	e.Prepare(m)
	is.Equal(e.Coefficients().Gamma, 0.5)

	e.SetLocal(true)
	e.Prepare(m)
	is.Equal(e.Coefficients().Alpha, 100.0)
	is.Equal(e.Coefficients().Gamma, 0.5)
}
