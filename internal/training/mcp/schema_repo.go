package mcp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikrystian/kluska/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=schema_repo_mocks_test.go -package=mcp_test

type SchemaRepo interface {
	TrainingColumns(ctx context.Context) ([]SchemaColumn, error)
}

// SchemaColumn is one information_schema.columns row.
type SchemaColumn struct {
	TableName  string
	ColumnName string
	DataType   string
	IsNullable string
	ColumnDef  *string
}

var trainingTables = []string{
	"training_session",
	"body_measurement",
	"running_session",
	"synced_activity",
	"personal_record",
	"challenge",
	"outbox",
}

type poolSchemaRepo struct {
	db *pgxpool.Pool
}

func NewPoolSchemaRepo(db *pgxpool.Pool) SchemaRepo {
	return &poolSchemaRepo{db: db}
}

func (r *poolSchemaRepo) TrainingColumns(ctx context.Context) (_ []SchemaColumn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mcp.training_columns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT table_name, column_name, data_type, is_nullable, column_default
			FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = ANY($1)
			ORDER BY table_name, ordinal_position
		`,
		trainingTables,
	)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	defer rows.Close()

	var cols []SchemaColumn
	for rows.Next() {
		var c SchemaColumn
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.IsNullable, &c.ColumnDef); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return cols, nil
}
