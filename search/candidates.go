package search

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/samber/lo"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/move"
)

// Bias added to every cell on the last rung of the mask ladder, so that
// every legal move becomes selectable.
const fallbackBias = 20.0

type maskFn func(p []float64)

// maskLadder is tried in order until some legal move keeps a positive
// weight: the opponent's bridge and template cells masked, then bridge
// cells only, then nothing, then everything biased upward.
func (s *Solver) maskLadder() []maskFn {
	ix := s.mem.Structures
	zero := func(p []float64, cells []board.Coord) {
		for _, c := range cells {
			p[c.Index()] = 0
		}
	}
	return []maskFn{
		func(p []float64) {
			zero(p, ix.Links(board.Opp).LinkingCells())
			zero(p, ix.Templates(board.Opp).LinkingCells())
		},
		func(p []float64) {
			zero(p, ix.Links(board.Opp).LinkingCells())
		},
		func(p []float64) {},
		func(p []float64) {
			for i, v := range p {
				if v >= 0 {
					p[i] = v + fallbackBias
				}
			}
		},
	}
}

// candidates selects the moves to search at a node, in search order. The
// list may contain a probe marker.
func (s *Solver) candidates(legal []move.Move) []move.Move {
	if s.area != nil {
		byCoord := lo.KeyBy(legal, func(m move.Move) board.Coord { return m.Coord() })
		var out []move.Move
		for _, c := range s.area {
			if m, ok := byCoord[c]; ok {
				out = append(out, m)
			}
		}
		return out
	}

	var moves []move.Move
	var weights []float64
	probs := s.mem.Attention.Probabilities()
	for _, mask := range s.maskLadder() {
		p := append([]float64(nil), probs...)
		mask(p)
		moves, weights = positive(legal, p)
		if len(moves) > 0 {
			break
		}
	}
	if len(moves) == 0 {
		return nil
	}

	best := floats.Max(weights)
	var top, rest []int
	for i, w := range weights {
		if w == best && len(top) < s.branching {
			top = append(top, i)
		} else {
			rest = append(rest, i)
		}
	}
	out := make([]move.Move, 0, s.branching+1)
	for _, i := range top {
		out = append(out, moves[i])
	}
	slots := s.branching - len(top)
	if slots <= 0 || len(rest) == 0 {
		return out
	}
	out = append(out, move.NewProbeMove())

	if slots >= len(rest) {
		for _, i := range rest {
			out = append(out, moves[i])
		}
		return out
	}
	restWeights := make([]float64, len(rest))
	for j, i := range rest {
		restWeights[j] = weights[i]
	}
	w := sampleuv.NewWeighted(restWeights, s.src)
	for range slots {
		j, ok := w.Take()
		if !ok {
			break
		}
		out = append(out, moves[rest[j]])
	}
	return out
}

// positive keeps the legal moves whose cell has a positive weight in p.
func positive(legal []move.Move, p []float64) ([]move.Move, []float64) {
	var moves []move.Move
	var weights []float64
	for _, m := range legal {
		if w := p[m.Coord().Index()]; w > 0 {
			moves = append(moves, m)
			weights = append(weights, w)
		}
	}
	return moves, weights
}
