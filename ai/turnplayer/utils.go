package turnplayer

import (
	"fmt"
	"math/rand/v2"

	"github.com/domino14/hexengine/ai/player"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
	tp "github.com/domino14/hexengine/turnplayer"
)

// NewAITurnPlayer builds the player for side from the game options. Human
// sides have no AI player.
func NewAITurnPlayer(cfg *config.Config, opts *tp.GameOptions, side board.Side,
	src rand.Source) (AITurnPlayer, error) {

	switch opts.KindFor(side) {
	case tp.KindEngine:
		p := player.NewHexPlayer(side, cfg)
		if opts.Depth > 0 {
			p.SetDepth(opts.Depth)
		}
		if src != nil {
			p.SetRandSource(src)
		}
		return p, nil
	case tp.KindRandom:
		p := NewRandomTurnPlayer(side)
		if src != nil {
			p.SetRandSource(src)
		}
		return p, nil
	}
	return nil, fmt.Errorf("no AI player for %v (%v)", side, opts.KindFor(side))
}

// PlayTurn asks p for a move in g and plays it. The result is returned even
// when the move could not be played.
func PlayTurn(g *game.Game, p AITurnPlayer) (*game.Game, player.Result, error) {
	r := p.ComputeMove(g)
	ng, err := g.PlayMove(r.Move)
	if err != nil {
		return nil, r, fmt.Errorf("%v played %v: %w", p.Side(), r.Move.ShortDescription(), err)
	}
	return ng, r, nil
}
