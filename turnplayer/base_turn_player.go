package turnplayer

import (
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/game"
	"github.com/domino14/hexengine/move"
)

// Basic game. Make moves, take them back.

type BaseTurnPlayer struct {
	*game.Game
	history []*game.Game
}

// BaseTurnPlayerFromOptions is a good entry point
func BaseTurnPlayerFromOptions(opts *GameOptions) (*BaseTurnPlayer, error) {
	g, err := game.NewGameFromStones(nil, nil, opts.FirstSide)
	if err != nil {
		return nil, err
	}
	return &BaseTurnPlayer{Game: g}, nil
}

func (p *BaseTurnPlayer) NewPlacementMove(side board.Side, coords string) (move.Move, error) {
	pos, err := move.ParsePosition(coords)
	if err != nil {
		return move.Move{}, err
	}
	return move.NewMoveAt(side, pos), nil
}

// Play plays m and makes the result the current game.
func (p *BaseTurnPlayer) Play(m move.Move) error {
	g, err := p.PlayMove(m)
	if err != nil {
		return err
	}
	p.history = append(p.history, p.Game)
	p.Game = g
	return nil
}

// Unplay goes back one move. It returns false at the start of the game.
func (p *BaseTurnPlayer) Unplay() bool {
	if len(p.history) == 0 {
		return false
	}
	p.Game = p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	return true
}

func (p *BaseTurnPlayer) IsPlaying() bool {
	return p.Playing()
}

func (p *BaseTurnPlayer) SetGame(g *game.Game) {
	p.Game = g
	p.history = nil
}
