package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/outbox"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
)

var _ Store = (*Repo)(nil)

type ListParams struct {
	AthleteID  string
	ExerciseID string
	Kind       Kind
	// Limit 0 means no limit.
	Limit int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const recordColumns = `id::text, athlete_id, exercise_id, exercise_name, record_kind, value, supporting_reps,
	achieved_at, COALESCE(source_session_id::text, ''), created_at, updated_at`

type RecordUpdatedEvent struct {
	Record             PersonalRecord `json:"record"`
	PreviousValue      *float64       `json:"previousValue,omitempty"`
	ImprovementPercent *float64       `json:"improvementPercent,omitempty"`
}

// UpsertIfGreater is a single conditional write: the ON CONFLICT update only happens when
// the stored value is lower, so concurrent writers can never regress a record. An applied
// write also stores a personal_record.updated outbox event in the same transaction.
func (r *Repo) UpsertIfGreater(ctx context.Context, ref SessionRef, c Candidate) (_ *PersonalRecord, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.upsertIfGreater")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("athlete.id", ref.AthleteID),
		attribute.String("exercise.id", c.ExerciseID),
		attribute.String("record.kind", string(c.Kind)),
	)

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var sourceSessionID any
	if ref.SessionID != "" {
		sourceSessionID = ref.SessionID
	}

	row := tx.QueryRow(
		ctx,
		`
			INSERT INTO personal_record
				(id, athlete_id, exercise_id, exercise_name, record_kind, value, supporting_reps, achieved_at, source_session_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::uuid)
			ON CONFLICT (athlete_id, exercise_id, record_kind) DO UPDATE SET
				exercise_name = EXCLUDED.exercise_name,
				value = EXCLUDED.value,
				supporting_reps = EXCLUDED.supporting_reps,
				achieved_at = EXCLUDED.achieved_at,
				source_session_id = EXCLUDED.source_session_id,
				updated_at = now()
			WHERE personal_record.value < EXCLUDED.value
			RETURNING `+recordColumns,
		uuid.New(), ref.AthleteID, c.ExerciseID, c.ExerciseName, string(c.Kind), c.Value, c.SupportingReps,
		ref.AchievedAt, sourceSessionID,
	)

	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// stored value is equal or higher, nothing written
		err = tx.Rollback(ctx)
		return nil, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert record: %w", err)
	}

	if _, err := outbox.Insert(ctx, tx, outbox.Event{
		Topic: outbox.TopicPersonalRecords,
		Type:  outbox.EventPersonalRecordUpdated,
		Key:   ref.AthleteID,
		Payload: RecordUpdatedEvent{
			Record:             *record,
			PreviousValue:      c.Previous,
			ImprovementPercent: c.ImprovementPercent(),
		},
	}); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}

	return record, true, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", params.AthleteID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+recordColumns+`
			FROM personal_record
			WHERE athlete_id = $1
				AND ($2::text = '' OR exercise_id = $2)
				AND ($3::text = '' OR record_kind = $3)
			ORDER BY achieved_at DESC, id
			LIMIT NULLIF($4::int, 0)
		`,
		params.AthleteID, params.ExerciseID, string(params.Kind), params.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PersonalRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*PersonalRecord, error) {
	var (
		record PersonalRecord
		kind   string
	)
	if err := row.Scan(
		&record.ID,
		&record.AthleteID,
		&record.ExerciseID,
		&record.ExerciseName,
		&kind,
		&record.Value,
		&record.SupportingReps,
		&record.AchievedAt,
		&record.SourceSessionID,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	record.Kind = Kind(kind)
	return &record, nil
}
