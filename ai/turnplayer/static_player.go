package turnplayer

import (
	"fmt"
	"math/rand/v2"

	"lukechampine.com/frand"

	"github.com/domino14/hexengine/ai/player"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/search"
)

// RandomTurnPlayer plays a uniformly random legal move. It is the baseline
// opponent for self-play.
type RandomTurnPlayer struct {
	side board.Side
	rng  *rand.Rand
}

func NewRandomTurnPlayer(side board.Side) *RandomTurnPlayer {
	return &RandomTurnPlayer{side: side, rng: rand.New(frand.NewSource())}
}

func (p *RandomTurnPlayer) SetRandSource(src rand.Source) {
	p.rng = rand.New(src)
}

func (p *RandomTurnPlayer) Side() board.Side {
	return p.side
}

func (p *RandomTurnPlayer) Sync(game.State) {}

func (p *RandomTurnPlayer) ComputeMove(st game.State) player.Result {
	legal := st.LegalMoves()
	if len(legal) == 0 {
		return player.Result{
			Fallback: true,
			Err:      fmt.Errorf("%w: %w", player.ErrTurnFailed, search.ErrNoLegalMoves),
		}
	}
	return player.Result{Move: legal[p.rng.IntN(len(legal))]}
}
