// Package heuristic scores positions for the search. The score is a
// weighted sum of both sides' connection distances, bridge and template
// counts, center control and blocking, from the engine's point of view.
package heuristic

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/cache"
	"github.com/domino14/hexengine/memory"
)

// Normalisation scales for the raw metrics.
const (
	MaxDistance = 25.0
	MaxLinks    = 50.0
	MaxCenter   = 100.0
)

const (
	// LosingScore is returned when we can no longer connect.
	LosingScore = -10000.0
	// WinningScore is returned when the opponent can no longer connect.
	WinningScore = 10000.0
)

func centerWeights() []float64 {
	return cache.MustLoad("heuristic.center-weights", func() []float64 {
		w := make([]float64, board.NumCells)
		mid := float64(board.Dim-1) / 2
		maxDist := math.Hypot(mid, mid)
		for i := range w {
			c := board.CoordFromIndex(i)
			d := math.Hypot(float64(c.Row)-mid, float64(c.Col)-mid)
			w[i] = 1 - d/maxDist
		}
		return w
	})
}

// CenterControl sums the center weights of our stones.
func CenterControl(g *board.Grid) float64 {
	mine := make([]float64, board.NumCells)
	for _, c := range board.InteriorCoords() {
		if g.At(c) == board.Mine {
			mine[c.Index()] = 1
		}
	}
	return floats.Dot(centerWeights(), mine)
}

// Blocking is the share of the opponent's critical path covered by our
// stones.
func Blocking(g *board.Grid, oppPath []board.Coord) float64 {
	if len(oppPath) == 0 {
		return 0
	}
	n := 0
	for _, c := range oppPath {
		if g.At(c) == board.Mine {
			n++
		}
	}
	return float64(n) / float64(len(oppPath))
}

// Evaluator scores positions and memoises the results by position hash.
type Evaluator struct {
	base   Coefficients
	coeffs Coefficients
	pins   Pins
	local  bool
	cache  *cache.ScoreCache
}

func NewEvaluator(sc *cache.ScoreCache) *Evaluator {
	return &Evaluator{
		base:   DefaultCoefficients(),
		coeffs: DefaultCoefficients(),
		pins:   Pins{},
		cache:  sc,
	}
}

// Clone returns an evaluator with the same settings and an empty cache.
func (e *Evaluator) Clone() *Evaluator {
	c := *e
	c.pins = maps.Clone(e.pins)
	c.cache = cache.NewScoreCache()
	return &c
}

// SetPins fixes coefficients regardless of the schedule.
func (e *Evaluator) SetPins(p Pins) {
	e.pins = p
}

// SetLocal switches the evaluator to the edge-template local profile.
func (e *Evaluator) SetLocal(local bool) {
	e.local = local
}

func (e *Evaluator) Cache() *cache.ScoreCache {
	return e.cache
}

func (e *Evaluator) Coefficients() Coefficients {
	return e.coeffs
}

// SetCoefficients replaces the current coefficients until the next
// Prepare.
func (e *Evaluator) SetCoefficients(c Coefficients) {
	e.coeffs = c
}

// Prepare picks the coefficients for a search from the current position.
// It must be called before the search starts, not during it.
func (e *Evaluator) Prepare(m *memory.Memory) {
	both := m.Path(board.Mine).Connectable() && m.Path(board.Opp).Connectable()
	c := Schedule(e.base, m.History().Len(), both)
	c = e.pins.apply(c)
	if e.local {
		c = Local(c)
	}
	e.coeffs = c
}

// Evaluate scores the position held in m.
func (e *Evaluator) Evaluate(m *memory.Memory) float64 {
	key := m.Hash()
	if v, ok := e.cache.Get(key); ok {
		return v
	}
	if v, ok := m.Win.Check(m.Grid(), m.Structures, m.Me()); ok && v != 0 {
		return v
	}
	b := e.breakdown(m)
	if b.Decided {
		return b.Score
	}
	e.cache.Put(key, b.Score)
	return b.Score
}

// Breakdown is an evaluation term by term.
type Breakdown struct {
	Coefficients Coefficients

	MyDistance, OppDistance float64
	MyLinks, OppLinks       int
	MyTemplates             int
	Center                  float64
	Blocking                float64
	Win                     float64

	// Decided is true when a distance is infinite and Score is a constant.
	Decided bool
	Score   float64
}

func (e *Evaluator) breakdown(m *memory.Memory) Breakdown {
	c := e.coeffs
	mine, opp := m.Path(board.Mine), m.Path(board.Opp)
	myLinks, myTemplates := m.Structures.Count(board.Mine)
	oppLinks, _ := m.Structures.Count(board.Opp)
	b := Breakdown{
		Coefficients: c,
		MyDistance:   mine.Distance,
		OppDistance:  opp.Distance,
		MyLinks:      myLinks,
		OppLinks:     oppLinks,
		MyTemplates:  myTemplates,
		Center:       CenterControl(m.Grid()),
	}
	switch {
	case !mine.Connectable():
		b.Decided, b.Score = true, LosingScore
		return b
	case !opp.Connectable():
		b.Decided, b.Score = true, WinningScore
		return b
	}
	b.Blocking = Blocking(m.Grid(), opp.Path)
	b.Score = -c.Alpha*b.MyDistance/MaxDistance +
		c.Delta*b.OppDistance/MaxDistance +
		c.BetaMe*float64(b.MyLinks)/MaxLinks -
		c.BetaAdv*float64(b.OppLinks)/MaxLinks +
		c.Gamma*b.Center/MaxCenter +
		c.Epsilon*b.Blocking +
		c.Zeta*float64(b.MyTemplates)
	return b
}

// Explain evaluates m without the cache and returns every term.
func (e *Evaluator) Explain(m *memory.Memory) Breakdown {
	b := e.breakdown(m)
	if v, ok := m.Win.Check(m.Grid(), m.Structures, m.Me()); ok && v != 0 {
		b.Win = v
		b.Score = v
		b.Decided = true
	}
	return b
}

func (b Breakdown) String() string {
	var sb strings.Builder
	c := b.Coefficients
	fmt.Fprintf(&sb, "%-22s %8.2f / %.0f\n", "distance (me)", b.MyDistance, MaxDistance)
	fmt.Fprintf(&sb, "%-22s %8.2f / %.0f\n", "distance (opponent)", b.OppDistance, MaxDistance)
	fmt.Fprintf(&sb, "%-22s %8d / %.0f\n", "bridges (me)", b.MyLinks, MaxLinks)
	fmt.Fprintf(&sb, "%-22s %8d / %.0f\n", "bridges (opponent)", b.OppLinks, MaxLinks)
	fmt.Fprintf(&sb, "%-22s %8d\n", "templates (me)", b.MyTemplates)
	fmt.Fprintf(&sb, "%-22s %8.2f / %.0f\n", "center", b.Center, MaxCenter)
	fmt.Fprintf(&sb, "%-22s %7.0f%%\n", "blocking", b.Blocking*100)
	fmt.Fprintf(&sb, "coefficients: alpha=%.2f delta=%.2f beta_me=%.2f beta_adv=%.2f gamma=%.2f epsilon=%.2f zeta=%.2f\n",
		c.Alpha, c.Delta, c.BetaMe, c.BetaAdv, c.Gamma, c.Epsilon, c.Zeta)
	switch {
	case b.Win != 0:
		fmt.Fprintf(&sb, "score: %+.0f (connected)\n", b.Score)
	case b.Decided:
		fmt.Fprintf(&sb, "score: %+.0f (infinite distance)\n", b.Score)
	default:
		fmt.Fprintf(&sb, "score: %+.3f\n", b.Score)
	}
	return sb.String()
}
