package memory

import (
	"github.com/domino14/hexengine/pathfind"
)

type boardManager struct{}

func (boardManager) Name() string { return "board" }

func (boardManager) Update(m *Memory) error {
	_, _, err := m.Board.apply(m.incoming)
	return err
}

func (boardManager) Undo(m *Memory) error {
	c, err := m.Board.undo()
	m.last = c
	return err
}

type structureManager struct{}

func (structureManager) Name() string { return "structures" }

func (structureManager) Update(m *Memory) error {
	m.Structures.Update(m.Grid(), m.last)
	return nil
}

func (structureManager) Undo(m *Memory) error {
	m.Structures.Undo(m.Grid())
	return nil
}

// pathManager recomputes both sides' shortest paths; undo is the same
// recomputation on the reverted grid.
type pathManager struct{}

func (pathManager) Name() string { return "paths" }

func (pathManager) Update(m *Memory) error {
	m.minePath, m.oppPath = pathfind.Both(m.Grid(), m.Structures, m.me)
	return nil
}

func (p pathManager) Undo(m *Memory) error {
	return p.Update(m)
}

type attentionManager struct{}

func (attentionManager) Name() string { return "attention" }

func (attentionManager) Update(m *Memory) error {
	m.Attention.Update(m.last, m.minePath.Path, m.oppPath.Path)
	return nil
}

func (attentionManager) Undo(m *Memory) error {
	if !m.Attention.Undo() {
		return ErrEmptyHistory
	}
	return nil
}

type hashManager struct{}

func (hashManager) Name() string { return "hash" }

func (hashManager) Update(m *Memory) error {
	m.hash.Push(m.last, m.Grid().At(m.last))
	return nil
}

func (hashManager) Undo(m *Memory) error {
	if !m.hash.Pop() {
		return ErrEmptyHistory
	}
	return nil
}
