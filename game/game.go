// Package game holds the authoritative Hex position that the engine is fed
// each turn. It knows the rules (placement on empty cells, alternating
// turns, edge-to-edge connection wins) and nothing about strategy.
package game

import (
	"encoding/hex"
	"errors"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/move"
)

var (
	ErrGameOver  = errors.New("the game is over")
	ErrOccupied  = errors.New("that cell is occupied")
	ErrOffBoard  = errors.New("that cell is off the board")
	ErrProbeMove = errors.New("a probe move cannot be played")
)

// State is the minimal surface of a position the engine depends on. Every
// coordinate crossing this interface is an un-padded board position.
type State interface {
	// Occupied maps every occupied position to its owner.
	Occupied() map[board.Position]board.Side
	// LegalMoves lists the moves available to the side on turn.
	LegalMoves() []move.Move
	// Apply returns the position after m. The receiver is not modified.
	Apply(m move.Move) (State, error)
	// Terminal reports whether the game is over and who connected.
	Terminal() (bool, board.Side)
}

type historyNode struct {
	m    move.Move
	prev *historyNode
	n    int
}

// Game is an immutable Hex position. Playing a move returns a new Game
// sharing the move history with its parent.
type Game struct {
	uid    string
	cells  [board.BoardSize * board.BoardSize]board.Side
	onturn board.Side
	winner board.Side
	last   *historyNode
}

// NewGame returns an empty board with Red to move.
func NewGame() *Game {
	return &Game{uid: newUID(), onturn: board.Red}
}

// NewGameFromStones sets up an arbitrary position. It does not check that
// the stone counts are reachable by alternating play.
func NewGameFromStones(red, blue []board.Position, onturn board.Side) (*Game, error) {
	g := &Game{uid: newUID(), onturn: onturn}
	for _, stones := range []struct {
		side board.Side
		ps   []board.Position
	}{{board.Red, red}, {board.Blue, blue}} {
		for _, p := range stones.ps {
			if !p.OnBoard() {
				return nil, fmt.Errorf("%w: %v", ErrOffBoard, p)
			}
			if g.at(p) != board.NoSide {
				return nil, fmt.Errorf("%w: %v", ErrOccupied, p)
			}
			g.set(p, stones.side)
		}
	}
	for _, s := range []board.Side{board.Red, board.Blue} {
		if g.connected(s) {
			g.winner = s
		}
	}
	return g, nil
}

func newUID() string {
	return hex.EncodeToString(frand.Bytes(8))
}

func (g *Game) at(p board.Position) board.Side {
	return g.cells[p.Row*board.BoardSize+p.Col]
}

func (g *Game) set(p board.Position, s board.Side) {
	g.cells[p.Row*board.BoardSize+p.Col] = s
}

func (g *Game) Uid() string {
	return g.uid
}

// At returns the owner of a position, or NoSide.
func (g *Game) At(p board.Position) board.Side {
	return g.at(p)
}

func (g *Game) PlayerOnTurn() board.Side {
	return g.onturn
}

// Turn is the number of moves played so far.
func (g *Game) Turn() int {
	if g.last == nil {
		return 0
	}
	return g.last.n
}

func (g *Game) Playing() bool {
	return g.winner == board.NoSide
}

func (g *Game) Winner() board.Side {
	return g.winner
}

// Moves returns the move history in play order.
func (g *Game) Moves() []move.Move {
	moves := make([]move.Move, g.Turn())
	for n := g.last; n != nil; n = n.prev {
		moves[n.n-1] = n.m
	}
	return moves
}

func (g *Game) Occupied() map[board.Position]board.Side {
	occ := make(map[board.Position]board.Side)
	for i, s := range g.cells {
		if s != board.NoSide {
			occ[board.Position{Row: i / board.BoardSize, Col: i % board.BoardSize}] = s
		}
	}
	return occ
}

// LegalMoves lists every empty cell for the side on turn, in row-major order.
func (g *Game) LegalMoves() []move.Move {
	if !g.Playing() {
		return nil
	}
	moves := make([]move.Move, 0, len(g.cells))
	for i, s := range g.cells {
		if s == board.NoSide {
			moves = append(moves, move.NewMoveAt(g.onturn,
				board.Position{Row: i / board.BoardSize, Col: i % board.BoardSize}))
		}
	}
	return moves
}

func (g *Game) Apply(m move.Move) (State, error) {
	ng, err := g.PlayMove(m)
	if err != nil {
		return nil, err
	}
	return ng, nil
}

// PlayMove validates m and returns the resulting position. The side on turn
// afterwards is the opponent of the side that moved.
func (g *Game) PlayMove(m move.Move) (*Game, error) {
	if m.IsProbe() {
		return nil, ErrProbeMove
	}
	if !g.Playing() {
		return nil, ErrGameOver
	}
	p := m.Position()
	if !p.OnBoard() {
		return nil, fmt.Errorf("%w: %v", ErrOffBoard, p)
	}
	if g.at(p) != board.NoSide {
		return nil, fmt.Errorf("%w: %v", ErrOccupied, p)
	}
	ng := *g
	ng.set(p, m.Side())
	ng.onturn = m.Side().Other()
	ng.last = &historyNode{m: m, prev: g.last, n: g.Turn() + 1}
	if ng.connected(m.Side()) {
		ng.winner = m.Side()
	}
	return &ng, nil
}

func (g *Game) Terminal() (bool, board.Side) {
	return !g.Playing(), g.winner
}

var neighbours = board.Directions

// connected does a flood fill from the side's first home row/column.
func (g *Game) connected(s board.Side) bool {
	n := board.BoardSize
	seen := make([]bool, n*n)
	stack := make([]board.Position, 0, n*n)
	for i := 0; i < n; i++ {
		p := board.Position{Row: 0, Col: i}
		if !s.Vertical() {
			p = board.Position{Row: i, Col: 0}
		}
		if g.at(p) == s {
			seen[p.Row*n+p.Col] = true
			stack = append(stack, p)
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if (s.Vertical() && p.Row == n-1) || (!s.Vertical() && p.Col == n-1) {
			return true
		}
		for _, d := range neighbours {
			q := board.Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
			if !q.OnBoard() || seen[q.Row*n+q.Col] || g.at(q) != s {
				continue
			}
			seen[q.Row*n+q.Col] = true
			stack = append(stack, q)
		}
	}
	return false
}

// ToDisplayText renders the position with absolute side labels.
func (g *Game) ToDisplayText() string {
	grid := board.NewGrid(board.Red)
	for p, s := range g.Occupied() {
		grid.Set(p.Padded(), board.Relative(board.Red, s))
	}
	status := fmt.Sprintf("turn %d, %s to move", g.Turn(), g.onturn)
	if !g.Playing() {
		status = fmt.Sprintf("game over, %s wins", g.winner)
	}
	return grid.ToDisplayText(board.Red) + status + "\n"
}
