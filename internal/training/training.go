// Package training holds the input model shared by the analytics packages:
// sessions with their logged sets, body measurements and distance activities.
package training

import (
	"fmt"
	"time"
)

type ExerciseKind string

const (
	ExerciseKindWeight   ExerciseKind = "weight"
	ExerciseKindReps     ExerciseKind = "reps"
	ExerciseKindDuration ExerciseKind = "duration"
)

func (k ExerciseKind) Valid() bool {
	switch k {
	case ExerciseKindWeight, ExerciseKindReps, ExerciseKindDuration:
		return true
	default:
		return false
	}
}

// PerformanceObservation is one logged set. Weight is in kilograms, 0 means bodyweight.
type PerformanceObservation struct {
	Repetitions     int     `json:"repetitions"`
	Weight          float64 `json:"weight"`
	DurationSeconds int     `json:"durationSeconds"`
	Completed       bool    `json:"completed"`
}

type ExercisePerformance struct {
	ExerciseID   string                   `json:"exerciseId"`
	ExerciseName string                   `json:"exerciseName"`
	Kind         ExerciseKind             `json:"kind"`
	Observations []PerformanceObservation `json:"observations"`
}

// CompletedObservations returns only the observations marked completed, keeping their order.
func (e ExercisePerformance) CompletedObservations() []PerformanceObservation {
	completed := make([]PerformanceObservation, 0, len(e.Observations))
	for _, o := range e.Observations {
		if o.Completed {
			completed = append(completed, o)
		}
	}
	return completed
}

func (e ExercisePerformance) Validate() error {
	if e.ExerciseID == "" {
		return fmt.Errorf("exercise id missing")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("exercise [%s]: unknown kind [%s]", e.ExerciseID, e.Kind)
	}
	for i, o := range e.Observations {
		if o.Repetitions < 0 || o.Weight < 0 || o.DurationSeconds < 0 {
			return fmt.Errorf("exercise [%s]: observation %d has negative values", e.ExerciseID, i)
		}
	}
	return nil
}

type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

type TrainingSession struct {
	ID          string                `json:"id"`
	AthleteID   string                `json:"athleteId"`
	Name        string                `json:"name"`
	Status      SessionStatus         `json:"status"`
	StartedAt   *time.Time            `json:"startedAt,omitempty"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
	Exercises   []ExercisePerformance `json:"exercises"`
}

// IsCompleted reports whether the session takes part in analytics at all.
func (s TrainingSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted && s.CompletedAt != nil
}

func (s TrainingSession) Validate() error {
	switch s.Status {
	case SessionStatusInProgress:
		if s.CompletedAt != nil {
			return fmt.Errorf("in progress session cannot have a completion time")
		}
	case SessionStatusCompleted:
		if s.CompletedAt == nil {
			return fmt.Errorf("completed session needs a completion time")
		}
	default:
		return fmt.Errorf("unknown session status [%s]", s.Status)
	}
	for _, e := range s.Exercises {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type BodyMeasurementSample struct {
	ID             string             `json:"id"`
	AthleteID      string             `json:"athleteId"`
	Date           time.Time          `json:"date"`
	Weight         *float64           `json:"weight,omitempty"`
	Circumferences map[string]float64 `json:"circumferences"`
}

type ActivitySource string

const (
	ActivitySourceManual ActivitySource = "manual"
	ActivitySourceSynced ActivitySource = "synced"
)

const ActivityTypeRun = "Run"

type DistanceActivity struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"ownerId"`
	OccurredAt   time.Time      `json:"occurredAt"`
	DistanceKm   float64        `json:"distanceKm"`
	ActivityType string         `json:"activityType"`
	Source       ActivitySource `json:"source"`
}

// IsRunningActivity reports whether the activity type counts as running distance.
func IsRunningActivity(activityType string) bool {
	switch activityType {
	case ActivityTypeRun, "TrailRun", "VirtualRun":
		return true
	default:
		return false
	}
}
