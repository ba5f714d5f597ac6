// Package memory is the engine's incremental view of the game: the grid
// and move history plus everything derived from them (structures, shortest
// paths, attention, position hash). The search mutates one Memory in place
// with strictly paired Update and Undo calls.
package memory

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hexengine/attention"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/cache"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/pathfind"
	"github.com/domino14/hexengine/structures"
	"github.com/domino14/hexengine/victory"
	"github.com/domino14/hexengine/zobrist"
)

// A Manager keeps one derived part of Memory in step with the grid. Managers
// run in a fixed order; each may read what earlier managers produced.
type Manager interface {
	Name() string
	Update(m *Memory) error
	Undo(m *Memory) error
}

// Memory is the engine's owned context.
type Memory struct {
	me board.Side

	Board      *BoardMemory
	Structures *structures.Index
	Attention  *attention.Map
	Win        *victory.Detector
	hash       *zobrist.Tracker

	minePath, oppPath pathfind.Result

	managers []Manager
	// set by the board manager for the rest of the pipeline
	incoming *board.Grid
	last     board.Coord
}

func zobristTable() *zobrist.Zobrist {
	return cache.MustLoad("zobrist.table", func() *zobrist.Zobrist {
		z := &zobrist.Zobrist{}
		z.Initialize()
		return z
	})
}

func New(me board.Side) *Memory {
	m := &Memory{
		me:         me,
		Board:      NewBoardMemory(me),
		Structures: structures.NewIndex(),
		Attention:  attention.New(),
		Win:        &victory.Detector{},
	}
	m.hash = zobrist.NewTracker(zobristTable(), m.Board.Grid())
	m.managers = []Manager{
		boardManager{},
		structureManager{},
		pathManager{},
		attentionManager{},
		hashManager{},
	}
	m.Structures.Reset(m.Board.Grid())
	m.minePath, m.oppPath = pathfind.Both(m.Board.Grid(), m.Structures, me)
	return m
}

func (m *Memory) Me() board.Side {
	return m.me
}

func (m *Memory) Grid() *board.Grid {
	return m.Board.Grid()
}

func (m *Memory) History() *MoveHistory {
	return m.Board.History()
}

// Hash is the Zobrist key of the current grid.
func (m *Memory) Hash() uint64 {
	return m.hash.Key()
}

// Path returns the shortest-path result for owner (Mine or Opp).
func (m *Memory) Path(owner board.Cell) pathfind.Result {
	if owner == board.Mine {
		return m.minePath
	}
	return m.oppPath
}

// Update brings memory in line with st, which must differ from the tracked
// grid by one placement. It returns false, and does nothing, when st holds
// no new stone.
func (m *Memory) Update(st game.State) (bool, error) {
	next := GridFromState(m.me, st)
	return m.updateGrid(&next)
}

// Play places a stone of side s at c, as if the game had reported it.
func (m *Memory) Play(c board.Coord, s board.Side) (bool, error) {
	next := *m.Grid()
	next.Set(c, board.Relative(m.me, s))
	return m.updateGrid(&next)
}

func (m *Memory) updateGrid(next *board.Grid) (bool, error) {
	c, ok, err := m.Board.diff(next)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	m.incoming = next
	m.last = c
	defer func() { m.incoming = nil }()
	for _, mgr := range m.managers {
		if err := mgr.Update(m); err != nil {
			return false, fmt.Errorf("%s update: %w", mgr.Name(), err)
		}
	}
	return true, nil
}

// Undo reverts the most recent update.
func (m *Memory) Undo() error {
	if m.History().Empty() || len(m.Board.grids) == 0 {
		return ErrEmptyHistory
	}
	for _, mgr := range m.managers {
		if err := mgr.Undo(m); err != nil {
			return fmt.Errorf("%s undo: %w", mgr.Name(), err)
		}
	}
	return nil
}

// Rebuild resynchronises memory with st from scratch. Undo history is lost.
func (m *Memory) Rebuild(st game.State) {
	next := GridFromState(m.me, st)
	m.Board.reset(&next)
	m.Structures.Reset(m.Grid())
	m.minePath, m.oppPath = pathfind.Both(m.Grid(), m.Structures, m.me)
	m.Attention.Reset()
	m.hash.Reset(m.Grid())
	log.Info().Int("stones", m.History().Len()).Msg("memory-rebuilt")
}

// Snapshot is a comparable copy of everything Memory tracks.
type Snapshot struct {
	Grid       board.Grid
	History    []board.Coord
	Structures structures.Snapshot
	Raw        []float64
	Probs      []float64
	Hash       uint64
	Mine, Opp  pathfind.Result
}

func (m *Memory) Snapshot() Snapshot {
	return Snapshot{
		Grid:       *m.Grid(),
		History:    m.History().Moves(),
		Structures: m.Structures.Snapshot(),
		Raw:        append([]float64(nil), m.Attention.Raw()...),
		Probs:      append([]float64(nil), m.Attention.Probabilities()...),
		Hash:       m.Hash(),
		Mine:       m.minePath,
		Opp:        m.oppPath,
	}
}

// ToDisplayText renders the grid with absolute side labels.
func (m *Memory) ToDisplayText() string {
	return m.Grid().ToDisplayText(m.me)
}
