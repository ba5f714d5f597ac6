package attention

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"github.com/domino14/hexengine/board"
)

func TestInitialBoardIsMasked(t *testing.T) {
	is := is.New(t)
	m := New()
	is.Equal(floats.Sum(m.Probabilities()), 0.0)
	is.True(math.IsInf(m.Raw()[0], -1))
}

func TestUpdateFocusesOnLastMove(t *testing.T) {
	is := is.New(t)
	m := New()
	center := board.Position{Row: 6, Col: 6}.Padded()
	m.Update(center)
	p := m.Probabilities()
	assert.InDelta(t, 1.0, floats.Sum(p), 1e-9)
	// 19 cells at MaxAttention, everything else masked.
	hot := 0
	for _, v := range p {
		if v > 0 {
			hot++
			assert.InDelta(t, 1.0/19, v, 1e-12)
		}
	}
	is.Equal(hot, len(Radius2))
}

func TestDecayAndMask(t *testing.T) {
	is := is.New(t)
	m := New()
	first := board.Position{Row: 2, Col: 2}.Padded()
	far := board.Position{Row: 11, Col: 11}.Padded()
	m.Update(first)
	m.Update(far)
	is.Equal(m.Raw()[first.Index()], MaxAttention*Decay)
	m.Update(far)
	// 2 * 0.6 * 0.6 = 0.72, still above the floor.
	assert.InDelta(t, 0.72, m.Raw()[first.Index()], 1e-12)
	m.Update(far)
	m.Update(far)
	// 0.72 * 0.6 * 0.6 < 0.3: masked.
	is.True(math.IsInf(m.Raw()[first.Index()], -1))
	is.Equal(m.Probabilities()[first.Index()], 0.0)
}

func TestCriticalPathsAreHot(t *testing.T) {
	is := is.New(t)
	m := New()
	path := []board.Coord{{Row: 1, Col: 1}, {Row: 2, Col: 1}}
	m.Update(board.Position{Row: 10, Col: 10}.Padded(), path)
	is.Equal(m.Raw()[path[1].Index()], MaxAttention)
}

func TestUndoIsExact(t *testing.T) {
	is := is.New(t)
	m := New()
	m.Update(board.Position{Row: 3, Col: 3}.Padded())
	raw := append([]float64(nil), m.Raw()...)
	probs := append([]float64(nil), m.Probabilities()...)

	m.Update(board.Position{Row: 9, Col: 4}.Padded())
	m.Update(board.Position{Row: 0, Col: 13}.Padded())
	is.True(m.Undo())
	is.True(m.Undo())
	is.True(floats.Same(raw, m.Raw()))
	is.True(floats.Same(probs, m.Probabilities()))
	is.True(m.Undo())
	is.True(!m.Undo())
	is.Equal(m.Depth(), 0)
}
