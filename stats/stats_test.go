package stats

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunning(t *testing.T) {
	cases := []struct {
		values []float64
		mean   float64
		stdev  float64
	}{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]float64{1}, 1, 0},
		{nil, 0, 0},
		{[]float64{1, 1}, 1, 0},
	}
	for _, c := range cases {
		r := &Running{}
		for _, v := range c.values {
			r.Push(v)
		}
		assert.Equal(t, len(c.values), r.Count())
		assert.InDelta(t, c.mean, r.Mean(), 1e-6)
		assert.InDelta(t, c.stdev, r.Stdev(), 1e-6)
	}
}

func TestRunningInterval(t *testing.T) {
	r := &Running{}
	for _, v := range []float64{40, 50, 60, 70} {
		r.Push(v)
	}
	lo, hi := r.Interval(95)
	// 1.96 * 12.9099 / 2
	assert.InDelta(t, 42.348, lo, 1e-3)
	assert.InDelta(t, 67.652, hi, 1e-3)

	lo, hi = (&Running{}).Interval(95)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestProportion(t *testing.T) {
	is := is.New(t)
	p := &Proportion{}
	lo, hi := p.Interval(95)
	is.Equal(lo, 0.0)
	is.Equal(hi, 1.0)

	for i := 0; i < 100; i++ {
		p.Push(i%4 != 0)
	}
	is.Equal(p.Trials(), 100)
	is.Equal(p.Successes(), 75)
	assert.InDelta(t, 0.75, p.Rate(), 1e-9)
	lo, hi = p.Interval(95)
	// 1.96 * sqrt(.75*.25/100)
	assert.InDelta(t, 0.665130, lo, 1e-4)
	assert.InDelta(t, 0.834870, hi, 1e-4)
}

func TestZValue(t *testing.T) {
	assert.InDelta(t, 1.959964, zValue(95), 1e-5)
	assert.InDelta(t, 2.575829, zValue(99), 1e-5)
}
