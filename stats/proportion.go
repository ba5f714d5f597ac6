package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// zValue is the two-tailed normal quantile for a confidence percentage.
func zValue(confidence float64) float64 {
	return distuv.UnitNormal.Quantile((1 + confidence/100) / 2)
}

// Proportion counts successes over trials, e.g. games won over games played.
type Proportion struct {
	trials    int
	successes int
}

func (p *Proportion) Push(success bool) {
	p.trials++
	if success {
		p.successes++
	}
}

func (p *Proportion) Trials() int {
	return p.trials
}

func (p *Proportion) Successes() int {
	return p.successes
}

func (p *Proportion) Rate() float64 {
	if p.trials == 0 {
		return 0
	}
	return float64(p.successes) / float64(p.trials)
}

// Interval returns the normal-approximation confidence interval of the
// rate, clamped to [0, 1]. confidence is a percentage.
func (p *Proportion) Interval(confidence float64) (lo, hi float64) {
	if p.trials == 0 {
		return 0, 1
	}
	r := p.Rate()
	se := math.Sqrt(r * (1 - r) / float64(p.trials))
	z := zValue(confidence)
	return math.Max(0, r-z*se), math.Min(1, r+z*se)
}
