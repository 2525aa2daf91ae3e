package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddRun(ctx context.Context, run *RunningSession) (_ *RunningSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.addRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", run.AthleteID))

	added := *run
	if err := r.db.QueryRow(
		ctx,
		`
			INSERT INTO running_session (id, athlete_id, occurred_at, distance_km, duration_s, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id::text
		`,
		uuid.New(), run.AthleteID, run.OccurredAt, run.DistanceKm, run.DurationSeconds, run.Notes,
	).Scan(&added.ID); err != nil {
		return nil, fmt.Errorf("insert running session: %w", err)
	}
	return &added, nil
}

// UpsertSynced stores an imported activity keyed by (athlete, external id). Re-importing
// the same activity overwrites it instead of counting its distance twice.
func (r *Repo) UpsertSynced(ctx context.Context, a *SyncedActivity) (_ *SyncedActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.upsertSynced")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("athlete.id", a.AthleteID),
		attribute.String("external.id", a.ExternalID),
	)

	upserted := *a
	if err := r.db.QueryRow(
		ctx,
		`
			INSERT INTO synced_activity (id, athlete_id, external_id, activity_type, occurred_at, distance_m)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (athlete_id, external_id) DO UPDATE SET
				activity_type = EXCLUDED.activity_type,
				occurred_at = EXCLUDED.occurred_at,
				distance_m = EXCLUDED.distance_m,
				updated_at = now()
			RETURNING id::text
		`,
		uuid.New(), a.AthleteID, a.ExternalID, a.ActivityType, a.OccurredAt, a.DistanceMeters,
	).Scan(&upserted.ID); err != nil {
		return nil, fmt.Errorf("upsert synced activity: %w", err)
	}
	return &upserted, nil
}

// ListDistanceActivities merges both sources for the owners within [from, to], oldest first.
// Synced distances are converted to kilometres; manual sessions are always runs.
func (r *Repo) ListDistanceActivities(
	ctx context.Context,
	ownerIDs []string,
	from, to time.Time,
) (_ []training.DistanceActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.listDistanceActivities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.StringSlice("owner.ids", ownerIDs))

	return r.list(ctx, ownerIDs, &from, &to)
}

// List returns one athlete's activities; nil bounds are open.
func (r *Repo) List(ctx context.Context, athleteID string, from, to *time.Time) (_ []training.DistanceActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	return r.list(ctx, []string{athleteID}, from, to)
}

func (r *Repo) list(ctx context.Context, ownerIDs []string, from, to *time.Time) ([]training.DistanceActivity, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, owner_id, occurred_at, distance_km, activity_type, source FROM (
				SELECT id::text AS id, athlete_id AS owner_id, occurred_at, distance_km,
					$4::text AS activity_type, $5::text AS source
				FROM running_session
				WHERE athlete_id = ANY($1)
				UNION ALL
				SELECT id::text, athlete_id, occurred_at, distance_m / 1000.0,
					activity_type, $6::text
				FROM synced_activity
				WHERE athlete_id = ANY($1)
			) activities
			WHERE ($2::timestamptz IS NULL OR occurred_at >= $2)
				AND ($3::timestamptz IS NULL OR occurred_at <= $3)
			ORDER BY occurred_at ASC, id
		`,
		ownerIDs, from, to,
		training.ActivityTypeRun, string(training.ActivitySourceManual), string(training.ActivitySourceSynced),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]training.DistanceActivity, 0)
	for rows.Next() {
		var (
			a      training.DistanceActivity
			source string
		)
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.OccurredAt, &a.DistanceKm, &a.ActivityType, &source); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		a.Source = training.ActivitySource(source)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}
