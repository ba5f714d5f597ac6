// Package player is the engine's entry point for a turn: it keeps its
// memory in step with the game, searches, and always comes back with a
// move. When anything goes wrong it says so and plays a random legal move.
package player

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/cache"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/heuristic"
	"github.com/domino14/hexengine/memory"
	"github.com/domino14/hexengine/move"
	"github.com/domino14/hexengine/search"
	"github.com/domino14/hexengine/victory"
)

var ErrTurnFailed = errors.New("turn failed")

// Result is the outcome of a turn. Fallback is true when the move was
// picked at random because the search failed; Err then says why.
type Result struct {
	Move     move.Move
	Score    float64
	Fallback bool
	Err      error
}

// HexPlayer plays one side of one game. It owns its memory, solver and
// score cache and must see every position of the game in order.
type HexPlayer struct {
	side   board.Side
	depth  int
	mem    *memory.Memory
	scores *cache.ScoreCache
	eval   *heuristic.Evaluator
	solver *search.Solver
	src    rand.Source
}

func NewHexPlayer(side board.Side, cfg *config.Config) *HexPlayer {
	mem := memory.New(side)
	scores := cache.NewScoreCache()
	eval := heuristic.NewEvaluator(scores)
	eval.SetPins(heuristic.PinsFromConfig(cfg))
	p := &HexPlayer{
		side:   side,
		depth:  cfg.GetInt(config.ConfigMaxDepth),
		mem:    mem,
		scores: scores,
		eval:   eval,
		solver: search.NewSolver(mem, eval, cfg),
		src:    frand.NewSource(),
	}
	return p
}

func (p *HexPlayer) Side() board.Side {
	return p.side
}

func (p *HexPlayer) Memory() *memory.Memory {
	return p.mem
}

func (p *HexPlayer) Solver() *search.Solver {
	return p.solver
}

func (p *HexPlayer) Evaluator() *heuristic.Evaluator {
	return p.eval
}

func (p *HexPlayer) SetDepth(d int) {
	p.depth = d
}

func (p *HexPlayer) Depth() int {
	return p.depth
}

// SetRandSource seeds both the search and the fallback picker.
func (p *HexPlayer) SetRandSource(src rand.Source) {
	p.src = src
	p.solver.SetRandSource(src)
}

// Sync throws away the memory and rebuilds it from st. Use it when joining
// a game in progress.
func (p *HexPlayer) Sync(st game.State) {
	p.mem.Rebuild(st)
}

// ComputeMove picks our move in st, which must be the position after the
// opponent's latest move. The chosen move is recorded in memory.
func (p *HexPlayer) ComputeMove(st game.State) Result {
	r, err := p.computeMove(st)
	if err != nil {
		return p.fallback(st, err)
	}
	return r
}

func (p *HexPlayer) computeMove(st game.State) (Result, error) {
	if _, err := p.mem.Update(st); err != nil {
		return Result{}, err
	}
	p.scores.Clear()
	v, m, err := p.solver.Solve(st, p.depth)
	if err != nil {
		return Result{}, err
	}
	if _, err := p.mem.Play(m.Coord(), p.side); err != nil {
		return Result{}, err
	}
	hits, misses := p.scores.Stats()
	log.Debug().
		Str("side", p.side.String()).
		Str("move", m.ShortDescription()).
		Float64("score", v).
		Int("nodes", p.solver.Nodes()).
		Int("cache-hits", hits).
		Int("cache-misses", misses).
		Msg("turn")
	if v == victory.WinScore {
		p.mem.Win.Deactivate()
	}
	return Result{Move: m, Score: v}, nil
}

func (p *HexPlayer) fallback(st game.State, cause error) Result {
	err := fmt.Errorf("%w: %w", ErrTurnFailed, cause)
	log.Err(err).Str("side", p.side.String()).Msg("turn-failed-fallback")

	if _, uerr := p.mem.Update(st); uerr != nil {
		p.mem.Rebuild(st)
	}
	m := p.randomMove(st)
	if _, perr := p.mem.Play(m.Coord(), p.side); perr != nil {
		log.Err(perr).Msg("fallback-move-not-recorded")
	}
	return Result{Move: m, Fallback: true, Err: err}
}

// randomMove picks a uniformly random legal move, or a random empty cell
// when the state enumerates none.
func (p *HexPlayer) randomMove(st game.State) move.Move {
	r := rand.New(p.src)
	if legal := st.LegalMoves(); len(legal) > 0 {
		return legal[r.IntN(len(legal))]
	}
	g := p.mem.Grid()
	cells := board.InteriorCoords()
	empty := make([]board.Coord, 0, len(cells))
	for _, c := range cells {
		if g.At(c) == board.Empty {
			empty = append(empty, c)
		}
	}
	if len(empty) == 0 {
		empty = cells
	}
	return move.NewPlacementMove(p.side, empty[r.IntN(len(empty))])
}
