// Package attention keeps a decaying heat map over the grid that the search
// uses to rank and limit candidate moves. Cells near the last move and on
// both sides' critical paths are hot; interest fades each move and cells
// that have cooled off too much are dropped altogether.
package attention

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/domino14/hexengine/board"
)

const (
	// MinAttention is the level below which a fading cell is masked out.
	MinAttention = 0.3
	// MaxAttention is given to freshly interesting cells.
	MaxAttention = 2.0
	// Decay multiplies every positive value on each update.
	Decay = 0.6
)

// Radius2 lists the offsets of the cells within two hex-steps of a centre,
// centre included.
var Radius2 = []board.Offset{
	{DRow: 0, DCol: 0},
	{DRow: -1, DCol: 0}, {DRow: 1, DCol: 0}, {DRow: 0, DCol: -1}, {DRow: 0, DCol: 1}, {DRow: -1, DCol: 1}, {DRow: 1, DCol: -1},
	{DRow: -2, DCol: 0}, {DRow: 2, DCol: 0}, {DRow: 0, DCol: -2}, {DRow: 0, DCol: 2},
	{DRow: -1, DCol: -1}, {DRow: 1, DCol: 1},
	{DRow: -2, DCol: 1}, {DRow: -1, DCol: 2}, {DRow: 1, DCol: -2}, {DRow: 2, DCol: -1},
	{DRow: -2, DCol: 2}, {DRow: 2, DCol: -2},
}

// Map is the attention board. Raw values are kept as a stack of snapshots,
// one pushed per update; the softmax of the top snapshot is exposed for
// ranking. A raw value of -Inf masks its cell.
type Map struct {
	history [][]float64
	probs   []float64
}

func initialRaw() []float64 {
	raw := make([]float64, board.NumCells)
	for i := range raw {
		raw[i] = math.Inf(-1)
	}
	return raw
}

func New() *Map {
	m := &Map{}
	m.Reset()
	return m
}

// Reset drops all history and returns to the initial, fully masked board.
func (m *Map) Reset() {
	m.history = [][]float64{initialRaw()}
	m.probs = Softmax(m.history[0])
}

// Update pushes a new snapshot: decay, boost the critical paths, boost the
// neighbourhood of the last move, then mask what has cooled below
// MinAttention.
func (m *Map) Update(last board.Coord, paths ...[]board.Coord) {
	raw := append([]float64(nil), m.history[len(m.history)-1]...)
	for i, v := range raw {
		if v > 0 {
			raw[i] = v * Decay
		}
	}
	for _, p := range paths {
		for _, c := range p {
			raw[c.Index()] = MaxAttention
		}
	}
	for _, o := range Radius2 {
		c := last.Add(o)
		if c.InBounds() {
			raw[c.Index()] = MaxAttention
		}
	}
	for i, v := range raw {
		if v > 0 && v < MinAttention {
			raw[i] = math.Inf(-1)
		}
	}
	m.history = append(m.history, raw)
	m.probs = Softmax(raw)
}

// Undo pops the last snapshot. The initial board is never popped.
func (m *Map) Undo() bool {
	if len(m.history) <= 1 {
		return false
	}
	m.history = m.history[:len(m.history)-1]
	m.probs = Softmax(m.history[len(m.history)-1])
	return true
}

// Probabilities returns the normalised attention. Callers must not modify it.
func (m *Map) Probabilities() []float64 {
	return m.probs
}

// Raw returns the top snapshot. Callers must not modify it.
func (m *Map) Raw() []float64 {
	return m.history[len(m.history)-1]
}

func (m *Map) Depth() int {
	return len(m.history) - 1
}

// Softmax normalises x. A fully masked input gives all zeros.
func Softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	lse := floats.LogSumExp(x)
	if math.IsInf(lse, -1) || math.IsNaN(lse) {
		return out
	}
	for i, v := range x {
		out[i] = math.Exp(v - lse)
	}
	return out
}
