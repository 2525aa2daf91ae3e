// Package measurements stores body measurement samples (weight and circumferences).
package measurements

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

const measurementColumns = `id::text, athlete_id, measured_at, weight, circumferences`

func (r *Repo) Add(ctx context.Context, m *training.BodyMeasurementSample) (_ *training.BodyMeasurementSample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", m.AthleteID))

	circumferences := m.Circumferences
	if circumferences == nil {
		circumferences = map[string]float64{}
	}
	circumferencesJSON, err := json.Marshal(circumferences)
	if err != nil {
		return nil, fmt.Errorf("marshal circumferences: %w", err)
	}

	row := r.db.QueryRow(
		ctx,
		`
			INSERT INTO body_measurement (id, athlete_id, measured_at, weight, circumferences)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+measurementColumns,
		uuid.New(), m.AthleteID, m.Date, m.Weight, circumferencesJSON,
	)
	added, err := scanMeasurement(row)
	if err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}
	return added, nil
}

// ListInRange returns the samples taken within [from, to], oldest first.
func (r *Repo) ListInRange(ctx context.Context, athleteID string, from, to time.Time) (_ []training.BodyMeasurementSample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.listInRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	return r.List(ctx, athleteID, &from, &to)
}

// List is ListInRange with optional bounds.
func (r *Repo) List(ctx context.Context, athleteID string, from, to *time.Time) (_ []training.BodyMeasurementSample, err error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+measurementColumns+`
			FROM body_measurement
			WHERE athlete_id = $1
				AND ($2::timestamptz IS NULL OR measured_at >= $2)
				AND ($3::timestamptz IS NULL OR measured_at <= $3)
			ORDER BY measured_at ASC, id
		`,
		athleteID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]training.BodyMeasurementSample, 0)
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		samples = append(samples, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func scanMeasurement(row pgx.Row) (*training.BodyMeasurementSample, error) {
	var (
		m              training.BodyMeasurementSample
		circumferences []byte
	)
	if err := row.Scan(&m.ID, &m.AthleteID, &m.Date, &m.Weight, &circumferences); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(circumferences, &m.Circumferences); err != nil {
		return nil, fmt.Errorf("unmarshal circumferences of [%s]: %w", m.ID, err)
	}
	return &m, nil
}
