package turnplayer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/config"
)

// PlayerKind names what drives one side of a game.
type PlayerKind string

const (
	KindEngine PlayerKind = "engine"
	KindRandom PlayerKind = "random"
	KindHuman  PlayerKind = "human"
)

type GameOptions struct {
	FirstSide board.Side
	Red       PlayerKind
	Blue      PlayerKind
	// Depth overrides the configured search depth when positive.
	Depth int
}

func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	if opts.FirstSide == board.NoSide {
		opts.FirstSide = board.Red
	}
	if opts.Red == "" {
		opts.Red = KindHuman
	}
	if opts.Blue == "" {
		opts.Blue = KindEngine
		log.Info().Msgf("engine plays %v", board.Blue)
	}
	if opts.Depth <= 0 {
		opts.Depth = cfg.GetInt(config.ConfigMaxDepth)
	}
}

func (opts *GameOptions) SetFirst(side string) error {
	s, err := board.SideFromString(side)
	if err != nil {
		return err
	}
	opts.FirstSide = s
	return nil
}

func ParsePlayerKind(kind string) (PlayerKind, error) {
	switch k := PlayerKind(strings.ToLower(kind)); k {
	case KindEngine, KindRandom, KindHuman:
		return k, nil
	}
	return "", fmt.Errorf("%v is not a supported player; valid options: engine, random, human", kind)
}

// SetPlayer assigns a player kind to a side, e.g. SetPlayer("blue", "random").
func (opts *GameOptions) SetPlayer(side, kind string) error {
	s, err := board.SideFromString(side)
	if err != nil {
		return err
	}
	k, err := ParsePlayerKind(kind)
	if err != nil {
		return err
	}
	if s == board.Red {
		opts.Red = k
	} else {
		opts.Blue = k
	}
	return nil
}

func (opts *GameOptions) KindFor(s board.Side) PlayerKind {
	if s == board.Red {
		return opts.Red
	}
	return opts.Blue
}
