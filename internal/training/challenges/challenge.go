// Package challenges runs head-to-head running distance challenges between two athletes.
package challenges

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Active challenges block a new one between the same pair.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCompleted || s == StatusCancelled
}

type Challenge struct {
	ID                   string     `json:"id"`
	ChallengerID         string     `json:"challengerId"`
	ChallengedID         string     `json:"challengedId"`
	TargetDistanceKm     float64    `json:"targetDistanceKm"`
	Status               Status     `json:"status"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              time.Time  `json:"endDate"`
	ChallengerProgressKm float64    `json:"challengerProgressKm"`
	ChallengedProgressKm float64    `json:"challengedProgressKm"`
	WinnerID             *string    `json:"winnerId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func (c *Challenge) IsParticipant(athleteID string) bool {
	return athleteID != "" && (athleteID == c.ChallengerID || athleteID == c.ChallengedID)
}

type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
)

func (a Action) Valid() bool {
	switch a {
	case ActionAccept, ActionDecline, ActionCancel:
		return true
	default:
		return false
	}
}
