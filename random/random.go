// Package random provides seedable draw helpers for simulation models. Each
// factory returns a closure over its own generator, so two helpers with the
// same seed produce the same sequence independently of each other.
package random

import (
	"math"
	"math/rand"
)

// Uniform returns a generator of reals uniformly distributed in [lo, hi).
func Uniform(seed int64, lo, hi float64) func() float64 {
	rng := rand.New(rand.NewSource(seed))

	return func() float64 {
		return lo + rng.Float64()*(hi-lo)
	}
}

// UniformInt returns a generator of integers uniformly distributed in
// [lo, hi], both bounds included.
func UniformInt(seed int64, lo, hi int) func() int {
	rng := rand.New(rand.NewSource(seed))

	return func() int {
		return lo + rng.Intn(hi-lo+1)
	}
}

// Exponential returns a generator of exponentially distributed reals with
// the given rate. The mean of the draws is 1/rate.
func Exponential(seed int64, rate float64) func() float64 {
	rng := rand.New(rand.NewSource(seed))

	return func() float64 {
		return rng.ExpFloat64() / rate
	}
}

// Poisson returns a generator of Poisson-distributed counts with the given
// mean, using Knuth's multiplication method.
func Poisson(seed int64, mean float64) func() int {
	rng := rand.New(rand.NewSource(seed))
	limit := math.Exp(-mean)

	return func() int {
		k := 0
		p := 1.0
		for {
			p *= rng.Float64()
			if p <= limit {
				return k
			}
			k++
		}
	}
}
