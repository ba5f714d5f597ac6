// Package search picks the engine's move with a depth-limited minimax with
// alpha-beta pruning. Candidate moves are drawn from the attention map,
// broken bridges force their reply, and a broken edge template at the root
// triggers a small local search over the template's cells.
package search

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/common"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/heuristic"
	"github.com/domino14/hexengine/memory"
	"github.com/domino14/hexengine/move"
)

const (
	DefaultBranchingFactor = 30
	// ProbeDepth caps the search depth once the root reaches its sampled
	// candidates.
	ProbeDepth = 2
	// TerminalScore is the value of a finished game, from our side.
	TerminalScore = 10000.0
)

var ErrNoLegalMoves = errors.New("no legal moves")

// DefaultOpening is the first move when the board is empty.
var DefaultOpening = board.Position{Row: 5, Col: 7}

// Solver implements the minimax + alphabeta algorithm over a shared Memory.
// Every move it tries is applied to the memory and undone before returning.
type Solver struct {
	mem  *memory.Memory
	eval *heuristic.Evaluator
	src  rand.Source

	maxDepth       int
	branching      int
	localBranching int
	localDepth     int
	opening        board.Position
	disablePrune   bool

	// restricts candidates to these cells, in this order; set for local
	// searches only
	area []board.Coord

	nodes     int
	pv        common.PVLine
	logStream io.Writer
	record    *SearchRecord
}

func NewSolver(mem *memory.Memory, eval *heuristic.Evaluator, cfg *config.Config) *Solver {
	return &Solver{
		mem:            mem,
		eval:           eval,
		src:            frand.NewSource(),
		branching:      cfg.GetInt(config.ConfigBranchingFactor),
		localBranching: cfg.GetInt(config.ConfigLocalBranchingFactor),
		localDepth:     cfg.GetInt(config.ConfigLocalDepth),
		opening: board.Position{
			Row: cfg.GetInt(config.ConfigOpeningRow),
			Col: cfg.GetInt(config.ConfigOpeningCol),
		},
	}
}

// SetRandSource replaces the source used for candidate sampling and random
// fallbacks.
func (s *Solver) SetRandSource(src rand.Source) {
	s.src = src
}

func (s *Solver) SetBranchingFactor(n int) {
	s.branching = n
}

// SetPruningDisabled switches to plain minimax over the same candidates.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePrune = d
}

// SetLogStream makes every Solve append a YAML record of its root children
// to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) Evaluator() *heuristic.Evaluator {
	return s.eval
}

func (s *Solver) Memory() *memory.Memory {
	return s.mem
}

// Nodes is the number of nodes visited by the last Solve.
func (s *Solver) Nodes() int {
	return s.nodes
}

func (s *Solver) PrincipalVariation() common.PVLine {
	return s.pv
}

// Solve searches st, which memory must already reflect, to maxDepth plies
// and returns the value and the move to play for our side.
func (s *Solver) Solve(st game.State, maxDepth int) (float64, move.Move, error) {
	s.maxDepth = maxDepth
	s.nodes = 0
	s.pv.Clear()
	s.eval.Prepare(s.mem)
	me := s.mem.Me()

	if s.mem.History().Empty() && s.area == nil {
		m := move.NewMoveAt(me, s.opening)
		log.Debug().Str("move", m.ShortDescription()).Msg("opening-move")
		return 0, m, nil
	}

	tstart := time.Now()
	if s.logStream != nil {
		s.record = &SearchRecord{Side: me.String(), Stones: s.mem.History().Len(), Depth: maxDepth}
	}
	before := s.mem.History().Len()
	v, m, err := s.maxValue(st, math.Inf(-1), math.Inf(1), 0, &s.pv)
	if err != nil {
		return 0, move.Move{}, err
	}
	if after := s.mem.History().Len(); after != before {
		return 0, move.Move{}, fmt.Errorf("%w: history went from %d to %d stones during search",
			memory.ErrConsistency, before, after)
	}
	if m == nil {
		rm, err := s.randomMove(st)
		if err != nil {
			return 0, move.Move{}, err
		}
		log.Debug().Str("move", rm.ShortDescription()).Msg("search-found-nothing-random-move")
		m = &rm
	}

	log.Debug().
		Int("nodes", s.nodes).
		Float64("value", v).
		Str("move", m.ShortDescription()).
		Bool("local", s.area != nil).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	if s.record != nil {
		s.record.Chosen = m.ShortDescription()
		s.record.Value = v
		s.record.Nodes = s.nodes
		if err := s.writeRecord(); err != nil {
			log.Err(err).Msg("search-log-write")
		}
		s.record = nil
	}
	return v, *m, nil
}

func (s *Solver) randomMove(st game.State) (move.Move, error) {
	legal := st.LegalMoves()
	if len(legal) == 0 {
		return move.Move{}, ErrNoLegalMoves
	}
	return legal[rand.New(s.src).IntN(len(legal))], nil
}

// play applies m to st and brings memory along.
func (s *Solver) play(st game.State, m move.Move) (game.State, error) {
	next, err := st.Apply(m)
	if err != nil {
		return nil, err
	}
	changed, err := s.mem.Update(next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("%w: %s left the grid unchanged", memory.ErrConsistency, m.ShortDescription())
	}
	return next, nil
}

// unplay undoes the last play. err is what the caller is about to return.
func (s *Solver) unplay(err error) error {
	if uerr := s.mem.Undo(); uerr != nil {
		return errors.Join(err, uerr)
	}
	return err
}

func (s *Solver) terminalScore(st game.State) (float64, bool) {
	done, winner := st.Terminal()
	if !done {
		return 0, false
	}
	if winner == s.mem.Me() {
		return TerminalScore, true
	}
	return -TerminalScore, true
}

func (s *Solver) maxValue(st game.State, α, β float64, depth int, pv *common.PVLine) (float64, *move.Move, error) {
	s.nodes++
	if depth >= s.maxDepth {
		pv.Clear()
		return s.eval.Evaluate(s.mem), nil, nil
	}

	childPV := common.PVLine{}
	forced, err := s.forcedMove(st, board.Mine, depth)
	if err != nil {
		return 0, nil, err
	}
	if forced != nil {
		next, err := s.play(st, *forced)
		if err != nil {
			return 0, nil, err
		}
		v, _, err := s.minValue(next, α, β, depth+1, &childPV)
		if err := s.unplay(err); err != nil {
			return 0, nil, err
		}
		s.logChild(depth, *forced, v, true)
		pv.Update(*forced, childPV, v)
		return v, forced, nil
	}

	moves := s.candidates(st.LegalMoves())
	if len(moves) == 0 {
		log.Debug().Int("depth", depth).Err(ErrNoLegalMoves).Msg("leaf-no-candidates")
		pv.Clear()
		return s.eval.Evaluate(s.mem), nil, nil
	}

	vStar := math.Inf(-1)
	var mStar *move.Move
	for _, m := range moves {
		if m.IsProbe() {
			if depth == 0 && s.maxDepth > ProbeDepth {
				log.Debug().Int("from", s.maxDepth).Int("to", ProbeDepth).Msg("probe-depth-cap")
				s.maxDepth = ProbeDepth
			}
			continue
		}
		next, err := s.play(st, m)
		if err != nil {
			return 0, nil, err
		}
		if score, done := s.terminalScore(next); done {
			if err := s.unplay(nil); err != nil {
				return 0, nil, err
			}
			s.logChild(depth, m, score, false)
			pv.Update(m, common.PVLine{}, score)
			return score, &m, nil
		}
		v, _, err := s.minValue(next, α, β, depth+1, &childPV)
		if err := s.unplay(err); err != nil {
			return 0, nil, err
		}
		s.logChild(depth, m, v, false)
		if v > vStar {
			vStar = v
			mStar = &m
			α = max(α, vStar)
			pv.Update(m, childPV, v)
		}
		if !s.disablePrune && vStar >= β {
			return vStar, mStar, nil
		}
	}
	return vStar, mStar, nil
}

func (s *Solver) minValue(st game.State, α, β float64, depth int, pv *common.PVLine) (float64, *move.Move, error) {
	s.nodes++
	if depth >= s.maxDepth {
		pv.Clear()
		return s.eval.Evaluate(s.mem), nil, nil
	}

	childPV := common.PVLine{}
	forced, err := s.forcedMove(st, board.Opp, depth)
	if err != nil {
		return 0, nil, err
	}
	if forced != nil {
		next, err := s.play(st, *forced)
		if err != nil {
			return 0, nil, err
		}
		v, _, err := s.maxValue(next, α, β, depth+1, &childPV)
		if err := s.unplay(err); err != nil {
			return 0, nil, err
		}
		pv.Update(*forced, childPV, v)
		return v, forced, nil
	}

	moves := s.candidates(st.LegalMoves())
	if len(moves) == 0 {
		log.Debug().Int("depth", depth).Err(ErrNoLegalMoves).Msg("leaf-no-candidates")
		pv.Clear()
		return s.eval.Evaluate(s.mem), nil, nil
	}

	vStar := math.Inf(1)
	var mStar *move.Move
	for _, m := range moves {
		if m.IsProbe() {
			continue
		}
		next, err := s.play(st, m)
		if err != nil {
			return 0, nil, err
		}
		if score, done := s.terminalScore(next); done {
			if err := s.unplay(nil); err != nil {
				return 0, nil, err
			}
			pv.Update(m, common.PVLine{}, score)
			return score, &m, nil
		}
		v, _, err := s.maxValue(next, α, β, depth+1, &childPV)
		if err := s.unplay(err); err != nil {
			return 0, nil, err
		}
		if v < vStar {
			vStar = v
			mStar = &m
			β = min(β, vStar)
			pv.Update(m, childPV, v)
		}
		if !s.disablePrune && vStar <= α {
			return vStar, mStar, nil
		}
	}
	return vStar, mStar, nil
}
