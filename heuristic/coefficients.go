package heuristic

import (
	"fmt"

	"github.com/domino14/hexengine/config"
)

// Coefficients weight the terms of the evaluation.
type Coefficients struct {
	// Alpha weighs our own distance (subtracted).
	Alpha float64 `yaml:"alpha"`
	// BetaMe weighs our bridge count.
	BetaMe float64 `yaml:"beta_me"`
	// BetaAdv weighs the opponent's bridge count (subtracted).
	BetaAdv float64 `yaml:"beta_adv"`
	// Gamma weighs center control.
	Gamma float64 `yaml:"gamma"`
	// Delta weighs the opponent's distance.
	Delta float64 `yaml:"delta"`
	// Epsilon weighs our stones on the opponent's critical path.
	Epsilon float64 `yaml:"epsilon"`
	// Zeta weighs our edge-template count.
	Zeta float64 `yaml:"zeta"`
}

func DefaultCoefficients() Coefficients {
	return Coefficients{
		Alpha:   1.0,
		BetaMe:  0.0,
		BetaAdv: 0.5,
		Gamma:   0.1,
		Delta:   3.0,
		Epsilon: 2.0,
		Zeta:    0,
	}
}

// Phase boundaries, in number of stones on the board.
const (
	OpeningMoves = 7
	MiddleMoves  = 30
)

// Schedule adjusts base for the phase of the game and switches to the
// competitive profile while both sides can still connect.
func Schedule(base Coefficients, stones int, bothConnectable bool) Coefficients {
	c := base
	switch {
	case stones < OpeningMoves:
		c.Gamma, c.Epsilon = 0.0, 1.5
	case stones < MiddleMoves:
		c.Gamma, c.Epsilon = 0.08, 2.0
	default:
		c.Gamma, c.Epsilon = 0.02, 2.5
	}
	c.Zeta = 0
	if bothConnectable {
		c.Alpha = 0.7
		c.Delta = 5.0
		c.Epsilon = 2.0
		c.BetaAdv = 0.5
	}
	return c
}

// Local is the profile used by the edge-template local search: everything
// but our distance and our template count is ignored.
func Local(c Coefficients) Coefficients {
	c.Alpha = 100
	c.BetaMe = 0
	c.Delta = 0
	c.BetaAdv = 0
	c.Epsilon = 0
	c.Zeta = 100
	return c
}

// Pins are coefficients fixed by configuration. They are applied after the
// schedule.
type Pins map[string]float64

var pinKeys = map[string]func(*Coefficients) *float64{
	config.ConfigHeuristicAlpha:   func(c *Coefficients) *float64 { return &c.Alpha },
	config.ConfigHeuristicBetaMe:  func(c *Coefficients) *float64 { return &c.BetaMe },
	config.ConfigHeuristicBetaAdv: func(c *Coefficients) *float64 { return &c.BetaAdv },
	config.ConfigHeuristicGamma:   func(c *Coefficients) *float64 { return &c.Gamma },
	config.ConfigHeuristicDelta:   func(c *Coefficients) *float64 { return &c.Delta },
	config.ConfigHeuristicEpsilon: func(c *Coefficients) *float64 { return &c.Epsilon },
	config.ConfigHeuristicZeta:    func(c *Coefficients) *float64 { return &c.Zeta },
}

// PinsFromConfig collects the heuristic.* keys that are set.
func PinsFromConfig(cfg *config.Config) Pins {
	pins := Pins{}
	for k := range pinKeys {
		if cfg.IsSet(k) {
			pins[k] = cfg.GetFloat64(k)
		}
	}
	return pins
}

func (p Pins) Set(key string, v float64) error {
	if _, ok := pinKeys[key]; !ok {
		return fmt.Errorf("unknown coefficient %q", key)
	}
	p[key] = v
	return nil
}

func (p Pins) apply(c Coefficients) Coefficients {
	for k, v := range p {
		*pinKeys[k](&c) = v
	}
	return c
}
