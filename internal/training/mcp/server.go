package mcp

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ikrystian/kluska/pkg"
)

const SecretHeader = "X-MCP-Secret"

// NewServer builds the training MCP server. It is served over stdio by cmd/training_mcp
// and over streamable HTTP at /mcp by the main service.
func NewServer(
	db *pgxpool.Pool,
	progress ProgressService,
	recordsStore RecordsStore,
	challengeService ChallengeService,
) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(db), progress, recordsStore, challengeService)
	return newServer(NewHandler(svc))
}

func newServer(h *Handler) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "training-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_context",
		Description: "Returns the DB schema of the training tables (sessions, measurements, activities, personal records, challenges, outbox): columns, types, nullable, default.",
	}, h.TrainingContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_progress",
		Description: "Returns the progress report of an athlete for a period: daily volume with session counts, estimated 1RM series per exercise, body weight and circumferences, and a summary with volume change and top exercises. Args: athlete_id; optional period (7d, 30d, 90d, 1y, all).",
	}, h.ProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Returns the personal records (max weight, max reps, max duration) of an athlete. Args: athlete_id; optional exercise_id.",
	}, h.PersonalRecordsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_challenges",
		Description: "Returns the distance challenges an athlete takes part in, with progress recomputed from running activities. Arg: athlete_id.",
	}, h.ChallengesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_athletes_progress_summary",
		Description: "Returns the progress summary (total volume, volume change, session count, top exercises) for up to 50 athletes. Args: athlete_ids; optional period. Failures are reported per athlete.",
	}, h.ProgressSummaryTool())

	return s
}

// NewHTTPHandler serves the MCP server over streamable HTTP behind the shared secret.
func NewHTTPHandler(server *mcp.Server, secretHash string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
	return RequireSecret(secretHash, otelhttp.NewHandler(streamable, "mcp"))
}

// RequireSecret rejects requests whose X-MCP-Secret does not match the bcrypt hash.
func RequireSecret(secretHash string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !pkg.CheckSecretHash(r.Header.Get(SecretHeader), secretHash) {
			log.Warnf("mcp: rejected request from %s", r.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
