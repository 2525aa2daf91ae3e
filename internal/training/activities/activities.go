// Package activities stores running distance from two sources: sessions entered by hand
// (kilometres) and activities imported from an external tracker (metres).
package activities

import (
	"time"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/training"
)

type RunningSession struct {
	ID              string    `json:"id"`
	AthleteID       string    `json:"athleteId"`
	OccurredAt      time.Time `json:"occurredAt"`
	DistanceKm      float64   `json:"distanceKm"`
	DurationSeconds int       `json:"durationSeconds"`
	Notes           string    `json:"notes,omitempty"`
}

func (s RunningSession) Validate() error {
	if s.DistanceKm <= 0 {
		return apperr.Validation("distance must be positive")
	}
	if s.DurationSeconds < 0 {
		return apperr.Validation("duration cannot be negative")
	}
	if s.OccurredAt.IsZero() {
		return apperr.Validation("occurredAt missing")
	}
	return nil
}

func (s RunningSession) DistanceActivity() training.DistanceActivity {
	return training.DistanceActivity{
		ID:           s.ID,
		OwnerID:      s.AthleteID,
		OccurredAt:   s.OccurredAt,
		DistanceKm:   s.DistanceKm,
		ActivityType: training.ActivityTypeRun,
		Source:       training.ActivitySourceManual,
	}
}

type SyncedActivity struct {
	ID             string    `json:"id"`
	AthleteID      string    `json:"athleteId"`
	ExternalID     string    `json:"externalId"`
	ActivityType   string    `json:"activityType"`
	OccurredAt     time.Time `json:"occurredAt"`
	DistanceMeters float64   `json:"distanceMeters"`
}

func (a SyncedActivity) Validate() error {
	switch {
	case a.ExternalID == "":
		return apperr.Validation("externalId missing")
	case a.ActivityType == "":
		return apperr.Validation("activityType missing")
	case a.DistanceMeters < 0:
		return apperr.Validation("distance cannot be negative")
	case a.OccurredAt.IsZero():
		return apperr.Validation("occurredAt missing")
	}
	return nil
}

func (a SyncedActivity) DistanceActivity() training.DistanceActivity {
	return training.DistanceActivity{
		ID:           a.ID,
		OwnerID:      a.AthleteID,
		OccurredAt:   a.OccurredAt,
		DistanceKm:   a.DistanceMeters / 1000,
		ActivityType: a.ActivityType,
		Source:       training.ActivitySourceSynced,
	}
}
