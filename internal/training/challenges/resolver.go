package challenges

import (
	"fmt"
	"time"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/training"
)

// Resolver applies the challenge state machine. It does no I/O; callers persist the
// mutated challenge with a write guarded by the status it was loaded with.
type Resolver struct {
	now func() time.Time
}

func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		now: now,
	}
}

func requirePending(c *Challenge, action Action) error {
	if c.Status != StatusPending {
		return apperr.InvalidState(fmt.Sprintf("cannot %s a %s challenge", action, c.Status))
	}
	return nil
}

// Accept starts the challenge now. Only the challenged athlete can accept.
func (r *Resolver) Accept(c *Challenge, actor string) error {
	if actor != c.ChallengedID {
		return apperr.Forbidden("only the challenged athlete can accept")
	}
	if err := requirePending(c, ActionAccept); err != nil {
		return err
	}
	now := r.now()
	c.Status = StatusAccepted
	c.StartDate = &now
	return nil
}

func (r *Resolver) Decline(c *Challenge, actor string) error {
	if actor != c.ChallengedID {
		return apperr.Forbidden("only the challenged athlete can decline")
	}
	if err := requirePending(c, ActionDecline); err != nil {
		return err
	}
	c.Status = StatusDeclined
	return nil
}

func (r *Resolver) Cancel(c *Challenge, actor string) error {
	if actor != c.ChallengerID {
		return apperr.Forbidden("only the challenger can cancel")
	}
	if err := requirePending(c, ActionCancel); err != nil {
		return err
	}
	c.Status = StatusCancelled
	return nil
}

func (r *Resolver) Apply(c *Challenge, actor string, action Action) error {
	switch action {
	case ActionAccept:
		return r.Accept(c, actor)
	case ActionDecline:
		return r.Decline(c, actor)
	case ActionCancel:
		return r.Cancel(c, actor)
	default:
		return apperr.Validation("action must be one of accept, decline, cancel")
	}
}

// ProgressWindow is [StartDate, min(EndDate, now)]. ok is false when the challenge
// has not started.
func ProgressWindow(c *Challenge, now time.Time) (from, to time.Time, ok bool) {
	if c.StartDate == nil {
		return time.Time{}, time.Time{}, false
	}
	to = c.EndDate
	if now.Before(to) {
		to = now
	}
	return *c.StartDate, to, true
}

// RecomputeProgress refreshes both sides' running distance from activities and
// completes the challenge when the end date passed or a side reached the target.
// Only accepted challenges change; it reports whether anything did.
func (r *Resolver) RecomputeProgress(c *Challenge, activities []training.DistanceActivity) bool {
	return r.RecomputeProgressAt(c, activities, r.now())
}

// RecomputeProgressAt is RecomputeProgress with the clock already read, so the
// window the activities were loaded for and the completion check agree.
func (r *Resolver) RecomputeProgressAt(c *Challenge, activities []training.DistanceActivity, now time.Time) bool {
	if c.Status != StatusAccepted {
		return false
	}
	from, to, ok := ProgressWindow(c, now)
	if !ok {
		return false
	}

	var challengerKm, challengedKm float64
	for _, a := range activities {
		if !training.IsRunningActivity(a.ActivityType) {
			continue
		}
		if a.OccurredAt.Before(from) || a.OccurredAt.After(to) {
			continue
		}
		switch a.OwnerID {
		case c.ChallengerID:
			challengerKm += a.DistanceKm
		case c.ChallengedID:
			challengedKm += a.DistanceKm
		}
	}

	changed := challengerKm != c.ChallengerProgressKm || challengedKm != c.ChallengedProgressKm
	c.ChallengerProgressKm = challengerKm
	c.ChallengedProgressKm = challengedKm

	challengerReached := challengerKm >= c.TargetDistanceKm
	challengedReached := challengedKm >= c.TargetDistanceKm
	if !now.Before(c.EndDate) || challengerReached || challengedReached {
		c.Status = StatusCompleted
		c.WinnerID = winner(c, challengerReached, challengedReached)
		changed = true
	}

	return changed
}

func winner(c *Challenge, challengerReached, challengedReached bool) *string {
	var id string
	switch {
	case challengerReached && challengedReached:
		if c.ChallengerProgressKm == c.ChallengedProgressKm {
			return nil
		}
		id = c.ChallengedID
		if c.ChallengerProgressKm > c.ChallengedProgressKm {
			id = c.ChallengerID
		}
	case challengerReached:
		id = c.ChallengerID
	case challengedReached:
		id = c.ChallengedID
	default:
		return nil
	}
	return &id
}
