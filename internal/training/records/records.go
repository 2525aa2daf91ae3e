// Package records detects and persists personal records per athlete, exercise and record kind.
package records

import (
	"time"

	"github.com/ikrystian/kluska/internal/training"
)

type Kind string

const (
	KindMaxWeight   Kind = "max_weight"
	KindMaxReps     Kind = "max_reps"
	KindMaxDuration Kind = "max_duration"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMaxWeight, KindMaxReps, KindMaxDuration:
		return true
	default:
		return false
	}
}

// KindFor maps an exercise kind to the record kind it can produce.
func KindFor(kind training.ExerciseKind) (Kind, bool) {
	switch kind {
	case training.ExerciseKindWeight:
		return KindMaxWeight, true
	case training.ExerciseKindReps:
		return KindMaxReps, true
	case training.ExerciseKindDuration:
		return KindMaxDuration, true
	default:
		return "", false
	}
}

type PersonalRecord struct {
	ID              string    `json:"id"`
	AthleteID       string    `json:"athleteId"`
	ExerciseID      string    `json:"exerciseId"`
	ExerciseName    string    `json:"exerciseName"`
	Kind            Kind      `json:"recordKind"`
	Value           float64   `json:"value"`
	SupportingReps  *int      `json:"supportingReps,omitempty"`
	AchievedAt      time.Time `json:"achievedAt"`
	SourceSessionID string    `json:"sourceSessionId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Candidate is a best-in-session value that beats the stored record (or has none to beat).
type Candidate struct {
	ExerciseID     string   `json:"exerciseId"`
	ExerciseName   string   `json:"exerciseName"`
	Kind           Kind     `json:"recordKind"`
	Value          float64  `json:"value"`
	SupportingReps *int     `json:"supportingReps,omitempty"`
	Previous       *float64 `json:"previousValue,omitempty"`
}

// ImprovementPercent over the replaced record, nil for a first record.
func (c Candidate) ImprovementPercent() *float64 {
	if c.Previous == nil || *c.Previous <= 0 {
		return nil
	}
	p := (c.Value - *c.Previous) / *c.Previous * 100
	return &p
}

type recordKey struct {
	exerciseID string
	kind       Kind
}

// CheckForNewRecords compares the best completed set of every exercise against the
// existing records. A candidate is produced only when strictly greater than the stored
// value, or when there is no stored value yet.
func CheckForNewRecords(exercises []training.ExercisePerformance, existing []PersonalRecord) []Candidate {
	stored := make(map[recordKey]float64, len(existing))
	for _, r := range existing {
		stored[recordKey{r.ExerciseID, r.Kind}] = r.Value
	}

	var candidates []Candidate
	// an exercise listed twice in one session yields a single candidate per key
	seen := make(map[recordKey]int)
	for _, ex := range exercises {
		observations := ex.CompletedObservations()
		if len(observations) == 0 {
			continue
		}

		candidate, ok := bestInSession(ex, observations)
		if !ok {
			continue
		}

		key := recordKey{ex.ExerciseID, candidate.Kind}
		if previous, found := stored[key]; found {
			if candidate.Value <= previous {
				continue
			}
			candidate.Previous = &previous
		}

		if i, dup := seen[key]; dup {
			if candidate.Value > candidates[i].Value {
				candidates[i] = candidate
			}
			continue
		}
		seen[key] = len(candidates)
		candidates = append(candidates, candidate)
	}

	return candidates
}

// bestInSession picks the observation with the highest metric for the exercise kind.
// Ties keep the first occurrence. Non-positive values never make a record.
func bestInSession(ex training.ExercisePerformance, observations []training.PerformanceObservation) (Candidate, bool) {
	kind, ok := KindFor(ex.Kind)
	if !ok {
		return Candidate{}, false
	}

	metric := func(o training.PerformanceObservation) float64 {
		switch kind {
		case KindMaxWeight:
			return o.Weight
		case KindMaxReps:
			return float64(o.Repetitions)
		default:
			return float64(o.DurationSeconds)
		}
	}

	best := 0
	for i := 1; i < len(observations); i++ {
		if metric(observations[i]) > metric(observations[best]) {
			best = i
		}
	}

	value := metric(observations[best])
	if value <= 0 {
		return Candidate{}, false
	}

	c := Candidate{
		ExerciseID:   ex.ExerciseID,
		ExerciseName: ex.ExerciseName,
		Kind:         kind,
		Value:        value,
	}
	if kind == KindMaxWeight {
		reps := observations[best].Repetitions
		c.SupportingReps = &reps
	}
	return c, true
}
