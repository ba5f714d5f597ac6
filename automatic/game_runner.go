// Package automatic plays engine games against each other, or against a
// random baseline, and writes down what happened.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	aitp "github.com/domino14/hexengine/ai/turnplayer"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
	tp "github.com/domino14/hexengine/turnplayer"
)

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game     *game.Game
	config   *config.Config
	opts     *tp.GameOptions
	seed     uint64
	gamechan chan *GameRecord
	// indexed by side: Red, then Blue
	aiplayers [2]aitp.AITurnPlayer
}

// NewGameRunner makes a runner for the players named in opts. Finished
// games are sent to gamechan when it is not nil.
func NewGameRunner(gamechan chan *GameRecord, cfg *config.Config, opts *tp.GameOptions) *GameRunner {
	return &GameRunner{gamechan: gamechan, config: cfg, opts: opts}
}

func playerIndex(s board.Side) int {
	if s == board.Red {
		return 0
	}
	return 1
}

// Init sets up a fresh game and fresh players. Every random choice the
// players make is drawn from sources derived from seed.
func (r *GameRunner) Init(seed uint64) error {
	g, err := game.NewGameFromStones(nil, nil, r.opts.FirstSide)
	if err != nil {
		return err
	}
	r.game = g
	r.seed = seed
	for _, s := range []board.Side{board.Red, board.Blue} {
		p, err := aitp.NewAITurnPlayer(r.config, r.opts, s, sideSource(seed, s))
		if err != nil {
			return err
		}
		r.aiplayers[playerIndex(s)] = p
	}
	return nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayGame plays the initialized game to the end. The record is returned
// even when the game was cut short by an error.
func (r *GameRunner) PlayGame(ctx context.Context) (*GameRecord, error) {
	rec := &GameRecord{
		GameID: r.game.Uid(),
		Seed:   r.seed,
		Red:    string(r.opts.Red),
		Blue:   string(r.opts.Blue),
		First:  r.game.PlayerOnTurn().String(),
	}
	for r.game.Playing() {
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		p := r.aiplayers[playerIndex(r.game.PlayerOnTurn())]
		ng, res, err := aitp.PlayTurn(r.game, p)
		rec.AddTurn(res)
		if err != nil {
			return rec, err
		}
		if res.Fallback {
			log.Warn().Err(res.Err).Str("game", rec.GameID).Int("turn", ng.Turn()).Msg("fallback-move")
		}
		r.game = ng
	}
	rec.Winner = r.game.Winner().String()
	log.Debug().Str("game", rec.GameID).Str("winner", rec.Winner).
		Int("turns", len(rec.Turns)).Msg("game-over")
	if r.gamechan != nil {
		r.gamechan <- rec
	}
	return rec, nil
}

// PlaySeededGame plays a single game with the given seed. Playing the same
// seed with the same options replays the same game.
func PlaySeededGame(ctx context.Context, cfg *config.Config, opts *tp.GameOptions, seed uint64) (*GameRecord, error) {
	r := NewGameRunner(nil, cfg, opts)
	if err := r.Init(seed); err != nil {
		return nil, fmt.Errorf("setting up game with seed %d: %w", seed, err)
	}
	return r.PlayGame(ctx)
}
