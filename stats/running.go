// Package stats summarizes batches of self-play games.
package stats

import "math"

// Running tracks the mean and spread of a stream of values, such as game
// lengths, without keeping them. It uses Welford's update.
type Running struct {
	n    int
	mean float64
	// sum of squared deviations from the current mean
	m2 float64
}

func (r *Running) Push(x float64) {
	r.n++
	d := x - r.mean
	r.mean += d / float64(r.n)
	r.m2 += d * (x - r.mean)
}

func (r *Running) Count() int {
	return r.n
}

func (r *Running) Mean() float64 {
	return r.mean
}

// Stdev is the sample standard deviation. It is 0 for fewer than two values.
func (r *Running) Stdev() float64 {
	if r.n < 2 {
		return 0
	}
	return math.Sqrt(r.m2 / float64(r.n-1))
}

// Interval returns the confidence interval of the mean. confidence is a
// percentage.
func (r *Running) Interval(confidence float64) (lo, hi float64) {
	if r.n == 0 {
		return 0, 0
	}
	half := zValue(confidence) * r.Stdev() / math.Sqrt(float64(r.n))
	return r.mean - half, r.mean + half
}
