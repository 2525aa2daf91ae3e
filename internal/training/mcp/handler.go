package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool calls into ContextService calls and formats the results.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(prefix string, err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: prefix + ": " + err.Error()}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) TrainingContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.Schema(ctx)
		if err != nil {
			return errorResult("Error fetching schema", err), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type ProgressInput struct {
	AthleteID string `json:"athlete_id" jsonschema:"Athlete id"`
	Period    string `json:"period,omitempty" jsonschema:"One of 7d, 30d, 90d, 1y, all (default 30d)"`
}

func (h *Handler) ProgressTool() func(context.Context, *mcp.CallToolRequest, ProgressInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProgressInput) (*mcp.CallToolResult, any, error) {
		report, err := h.service.Progress(ctx, in.AthleteID, in.Period)
		if err != nil {
			return errorResult("Error computing progress", err), nil, nil
		}
		return jsonResult(report), nil, nil
	}
}

type PersonalRecordsInput struct {
	AthleteID  string `json:"athlete_id" jsonschema:"Athlete id"`
	ExerciseID string `json:"exercise_id,omitempty" jsonschema:"Filter by exercise id (e.g. bench_press)"`
}

func (h *Handler) PersonalRecordsTool() func(context.Context, *mcp.CallToolRequest, PersonalRecordsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PersonalRecordsInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.PersonalRecords(ctx, in.AthleteID, in.ExerciseID)
		if err != nil {
			return errorResult("Error listing personal records", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

type ChallengesInput struct {
	AthleteID string `json:"athlete_id" jsonschema:"Athlete id (challenger or challenged)"`
}

func (h *Handler) ChallengesTool() func(context.Context, *mcp.CallToolRequest, ChallengesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ChallengesInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.Challenges(ctx, in.AthleteID)
		if err != nil {
			return errorResult("Error listing challenges", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

type ProgressSummaryInput struct {
	AthleteIDs []string `json:"athlete_ids" jsonschema:"Athlete ids, at most 50"`
	Period     string   `json:"period,omitempty" jsonschema:"One of 7d, 30d, 90d, 1y, all (default 30d)"`
}

func (h *Handler) ProgressSummaryTool() func(context.Context, *mcp.CallToolRequest, ProgressSummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProgressSummaryInput) (*mcp.CallToolResult, any, error) {
		summaries, err := h.service.ProgressSummary(ctx, in.AthleteIDs, in.Period)
		if err != nil {
			return errorResult("Error computing progress summary", err), nil, nil
		}
		return jsonResult(summaries), nil, nil
	}
}
