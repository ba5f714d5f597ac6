package turnplayer

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/domino14/hexengine/ai/player"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
	tp "github.com/domino14/hexengine/turnplayer"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestRandomPlayerFinishesGame(t *testing.T) {
	is := is.New(t)
	src := frand.NewSource()
	src.Seed(9)
	red := NewRandomTurnPlayer(board.Red)
	red.SetRandSource(src)
	blue := NewRandomTurnPlayer(board.Blue)
	blue.SetRandSource(src)

	g := game.NewGame()
	players := map[board.Side]AITurnPlayer{board.Red: red, board.Blue: blue}
	for g.Playing() {
		var err error
		g, _, err = PlayTurn(g, players[g.PlayerOnTurn()])
		is.NoErr(err)
	}
	// Hex cannot end in a draw.
	is.True(g.Winner() != board.NoSide)
	is.True(g.Turn() <= board.BoardSize*board.BoardSize)
}

func TestNewAITurnPlayer(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	opts := &tp.GameOptions{Red: tp.KindEngine, Blue: tp.KindHuman, Depth: 2}
	opts.SetDefaults(cfg)

	p, err := NewAITurnPlayer(cfg, opts, board.Red, nil)
	is.NoErr(err)
	hp, ok := p.(*player.HexPlayer)
	is.True(ok)
	is.Equal(hp.Depth(), 2)

	_, err = NewAITurnPlayer(cfg, opts, board.Blue, nil)
	is.True(err != nil)

	r := p.ComputeMove(game.NewGame())
	is.NoErr(r.Err)
	is.Equal(r.Move.Position(), board.Position{Row: 5, Col: 7})
}
