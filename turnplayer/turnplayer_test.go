package turnplayer

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/game"
)

func TestGameOptions(t *testing.T) {
	is := is.New(t)
	opts := &GameOptions{}
	opts.SetDefaults(config.DefaultConfig())
	is.Equal(opts.FirstSide, board.Red)
	is.Equal(opts.KindFor(board.Blue), KindEngine)
	is.Equal(opts.Depth, 3)

	is.NoErr(opts.SetPlayer("red", "Random"))
	is.Equal(opts.Red, KindRandom)
	is.True(opts.SetPlayer("green", "engine") != nil)
	is.True(opts.SetPlayer("blue", "oracle") != nil)
	is.NoErr(opts.SetFirst("b"))
	is.Equal(opts.FirstSide, board.Blue)
}

func TestParseAndPlay(t *testing.T) {
	is := is.New(t)
	opts := &GameOptions{FirstSide: board.Blue}
	p, err := BaseTurnPlayerFromOptions(opts)
	is.NoErr(err)
	is.Equal(p.PlayerOnTurn(), board.Blue)

	m, err := p.ParseMove([]string{"h6"})
	is.NoErr(err)
	is.Equal(m.Position(), board.Position{Row: 5, Col: 7})
	is.Equal(m.Side(), board.Blue)
	is.NoErr(p.Play(m))

	m, err = p.ParseMove([]string{"3", "4"})
	is.NoErr(err)
	is.Equal(m.Side(), board.Red)
	is.NoErr(p.Play(m))
	is.Equal(p.Turn(), 2)

	_, err = p.ParseMove([]string{"a", "b", "c"})
	is.True(errors.Is(err, ErrUnrecognizedMove))

	// Occupied.
	m, _ = p.ParseMove([]string{"5,7"})
	is.True(errors.Is(p.Play(m), game.ErrOccupied))

	is.True(p.Unplay())
	is.True(p.Unplay())
	is.True(!p.Unplay())
	is.Equal(p.Turn(), 0)
	is.True(p.IsPlaying())
}
