package automatic

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/hexengine/ai/player"
)

const gameCSVHeader = "gameID,seed,red,blue,first,winner,turns,fallbacks\n"

type TurnRecord struct {
	Move     string  `yaml:"move"`
	Score    float64 `yaml:"score,omitempty"`
	Fallback bool    `yaml:"fallback,omitempty"`
	Error    string  `yaml:"error,omitempty"`
}

// GameRecord is one finished self-play game. Sides and the winner are
// written R or B.
type GameRecord struct {
	GameID string       `yaml:"game-id"`
	Seed   uint64       `yaml:"seed"`
	Red    string       `yaml:"red"`
	Blue   string       `yaml:"blue"`
	First  string       `yaml:"first"`
	Winner string       `yaml:"winner"`
	Turns  []TurnRecord `yaml:"turns"`
}

func (g *GameRecord) AddTurn(r player.Result) {
	t := TurnRecord{
		Move:     r.Move.ShortDescription(),
		Score:    r.Score,
		Fallback: r.Fallback,
	}
	if r.Err != nil {
		t.Error = r.Err.Error()
	}
	g.Turns = append(g.Turns, t)
}

func (g *GameRecord) Fallbacks() int {
	return lo.CountBy(g.Turns, func(t TurnRecord) bool { return t.Fallback })
}

// CSVLine matches gameCSVHeader.
func (g *GameRecord) CSVLine() string {
	return fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v\n",
		g.GameID, g.Seed, g.Red, g.Blue, g.First, g.Winner, len(g.Turns), g.Fallbacks())
}
