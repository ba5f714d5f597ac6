package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/hexengine/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a Hex position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// Only interior cells are hashed; the sentinel ring never changes within a
// game. The side to move is implied by the stone counts.
type Zobrist struct {
	posTable [board.NumCells][2]uint64
}

func cellIdx(c board.Cell) int {
	if c == board.Mine {
		return 0
	}
	return 1
}

func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) Hash(g *board.Grid) uint64 {
	key := uint64(0)
	for _, c := range board.InteriorCoords() {
		v := g.At(c)
		if v == board.Empty {
			continue
		}
		key ^= z.posTable[c.Index()][cellIdx(v)]
	}
	return key
}

// AddMove toggles a stone of value v at c. Calling it a second time with the
// same arguments removes the stone again.
func (z *Zobrist) AddMove(key uint64, c board.Coord, v board.Cell) uint64 {
	if v == board.Empty {
		return key
	}
	return key ^ z.posTable[c.Index()][cellIdx(v)]
}

// Tracker keeps the hash of a grid in step with a sequence of placements.
type Tracker struct {
	z     *Zobrist
	stack []uint64
	key   uint64
}

func NewTracker(z *Zobrist, g *board.Grid) *Tracker {
	return &Tracker{z: z, key: z.Hash(g)}
}

func (t *Tracker) Key() uint64 {
	return t.key
}

func (t *Tracker) Push(c board.Coord, v board.Cell) {
	t.stack = append(t.stack, t.key)
	t.key = t.z.AddMove(t.key, c, v)
}

// Pop restores the key from before the last Push. It reports false when
// there is nothing to pop.
func (t *Tracker) Pop() bool {
	if len(t.stack) == 0 {
		return false
	}
	t.key = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return true
}

// Reset rehashes g from scratch and forgets the stack.
func (t *Tracker) Reset(g *board.Grid) {
	t.stack = t.stack[:0]
	t.key = t.z.Hash(g)
}
