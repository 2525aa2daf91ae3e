package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training/challenges"
	"github.com/ikrystian/kluska/internal/training/records"
	"github.com/ikrystian/kluska/internal/training/trends"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=mcp_test

type ProgressService interface {
	Progress(ctx context.Context, athleteID string, period trends.Period) (*trends.ProgressReport, error)
	ProgressForAthletes(ctx context.Context, athleteIDs []string, period trends.Period) ([]trends.AthleteSummary, error)
}

type RecordsStore interface {
	List(ctx context.Context, params records.ListParams) ([]records.PersonalRecord, error)
}

type ChallengeService interface {
	List(ctx context.Context, actor string) ([]challenges.Challenge, error)
}

// contextService is what the tool handlers call into.
type contextService interface {
	Schema(ctx context.Context) (string, error)
	Progress(ctx context.Context, athleteID, period string) (*trends.ProgressReport, error)
	PersonalRecords(ctx context.Context, athleteID, exerciseID string) ([]records.PersonalRecord, error)
	Challenges(ctx context.Context, athleteID string) ([]challenges.Challenge, error)
	ProgressSummary(ctx context.Context, athleteIDs []string, period string) ([]trends.AthleteSummary, error)
}

type ContextService struct {
	schema     SchemaRepo
	progress   ProgressService
	records    RecordsStore
	challenges ChallengeService
}

func NewContextService(
	schema SchemaRepo,
	progress ProgressService,
	recordsStore RecordsStore,
	challengeService ChallengeService,
) *ContextService {
	return &ContextService{
		schema:     schema,
		progress:   progress,
		records:    recordsStore,
		challenges: challengeService,
	}
}

// Schema renders the training tables as markdown.
func (s *ContextService) Schema(ctx context.Context) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mcp.schema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cols, err := s.schema.TrainingColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Training DB Schema\n\nNo training tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("# Training DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(tables, ", ") + " (schema: public).\n")
	for _, table := range tables {
		b.WriteString("\n## " + table + "\n\n")
		b.WriteString("| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n")
		for _, c := range byTable[table] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
	}
	return b.String()
}

func (s *ContextService) Progress(ctx context.Context, athleteID, period string) (*trends.ProgressReport, error) {
	if athleteID == "" {
		return nil, apperr.Validation("athlete_id is required")
	}
	p, err := trends.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.progress.Progress(ctx, athleteID, p)
}

func (s *ContextService) PersonalRecords(ctx context.Context, athleteID, exerciseID string) ([]records.PersonalRecord, error) {
	if athleteID == "" {
		return nil, apperr.Validation("athlete_id is required")
	}
	return s.records.List(ctx, records.ListParams{
		AthleteID:  athleteID,
		ExerciseID: exerciseID,
	})
}

// Challenges lists the athlete's challenges with progress recomputed.
func (s *ContextService) Challenges(ctx context.Context, athleteID string) ([]challenges.Challenge, error) {
	if athleteID == "" {
		return nil, apperr.Validation("athlete_id is required")
	}
	return s.challenges.List(ctx, athleteID)
}

func (s *ContextService) ProgressSummary(ctx context.Context, athleteIDs []string, period string) ([]trends.AthleteSummary, error) {
	ids := make([]string, 0, len(athleteIDs))
	for _, id := range athleteIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 || len(ids) > trends.MaxSummaryAthletes {
		return nil, apperr.Validation(fmt.Sprintf("athlete_ids must list between 1 and %d ids", trends.MaxSummaryAthletes))
	}
	p, err := trends.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.progress.ProgressForAthletes(ctx, ids, p)
}
