// Package strength estimates one-repetition maximums from logged sets.
package strength

import (
	"math"

	"github.com/ikrystian/kluska/internal/training"
)

// Estimate is the best single-set estimate of a set of observations,
// together with the observation that produced it.
type Estimate struct {
	OneRepMax   float64 `json:"oneRepMax"`
	Weight      float64 `json:"weight"`
	Repetitions int     `json:"repetitions"`
	// Index of the producing observation in the input slice.
	Index int `json:"-"`
}

// EstimateSet applies the Epley formula to a single set. A set qualifies only
// with a positive weight and at least one repetition; one rep returns the raw weight.
func EstimateSet(weight float64, reps int) (float64, bool) {
	if weight <= 0 || reps <= 0 {
		return 0, false
	}
	if reps == 1 {
		return weight, true
	}
	return weight * (1 + float64(reps)/30), true
}

// EstimateOneRepMax returns the highest single-set estimate across the completed
// observations. Ties keep the first occurrence. The second return value is false
// when no observation qualifies.
func EstimateOneRepMax(observations []training.PerformanceObservation) (Estimate, bool) {
	var best Estimate
	found := false
	for i, o := range observations {
		if !o.Completed {
			continue
		}
		estimate, ok := EstimateSet(o.Weight, o.Repetitions)
		if !ok {
			continue
		}
		if !found || estimate > best.OneRepMax {
			best = Estimate{
				OneRepMax:   estimate,
				Weight:      o.Weight,
				Repetitions: o.Repetitions,
				Index:       i,
			}
			found = true
		}
	}
	return best, found
}

// Round rounds v to the given number of decimals, used for presenting estimates (e.g. 0.1 kg).
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
