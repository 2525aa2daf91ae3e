package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/ikrystian/kluska/internal/auth"
	"github.com/ikrystian/kluska/internal/cache"
	"github.com/ikrystian/kluska/internal/config"
	"github.com/ikrystian/kluska/internal/db"
	"github.com/ikrystian/kluska/internal/middleware"
	"github.com/ikrystian/kluska/internal/outbox"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training/activities"
	"github.com/ikrystian/kluska/internal/training/challenges"
	trainingmcp "github.com/ikrystian/kluska/internal/training/mcp"
	"github.com/ikrystian/kluska/internal/training/measurements"
	"github.com/ikrystian/kluska/internal/training/records"
	"github.com/ikrystian/kluska/internal/training/sessions"
	"github.com/ikrystian/kluska/internal/training/trends"
	"github.com/ikrystian/kluska/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	secrets *config.Secrets
	dbPool  *pgxpool.Pool

	redisClient   *redis.Client
	rateLimiter   middleware.RequestRateLimiter
	revocations   *auth.RevocationList
	progressCache *cache.FreeCache
	training      *TrainingServices

	// outbox, nil when disabled
	outboxProducer   *outbox.KafkaProducer
	outboxDispatcher *outbox.Dispatcher
	outboxCancel     context.CancelFunc

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.Secrets.PostgresPassword,
		TracingEnabled: params.Secrets.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if cfg.ApplySchema {
		if err := db.ApplySchema(ctx, dbPool); err != nil {
			return nil, err
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("kluska", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled, rdb)
	if err != nil {
		return nil, err
	}

	progressCache := cache.NewFreeCache(cfg.ProgressCacheSizeMB)

	s := &Server{
		config:      cfg,
		secrets:     params.Secrets,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:   rdb,
		rateLimiter:   redis_rate.NewLimiter(rdb),
		revocations:   auth.NewRevocationList(rdb),
		progressCache: progressCache,
		training: NewTrainingServices(TrainingServicesParams{
			DB:                  dbPool,
			ProgressCache:       progressCache,
			ProgressCacheTTL:    time.Duration(cfg.ProgressCacheTTLSeconds) * time.Second,
			ProgressFanOutLimit: cfg.ProgressFanOutLimit,
			MetricsManager:      metricsManager,
		}),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.OutboxEnabled {
		s.outboxProducer = outbox.NewKafkaProducer(cfg.KafkaBrokers)
		s.outboxDispatcher = outbox.NewDispatcher(
			outbox.NewRepo(dbPool),
			s.outboxProducer,
			metricsManager,
			cfg.OutboxPollInterval.Duration,
			cfg.OutboxBatchSize,
		)
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	auth.NewHandler(s.revocations).SetupRoutes(r)

	sessions.NewHandler(s.training.Sessions).SetupRoutes(r)
	measurements.NewHandler(s.training.Measurements, s.training.Progress).SetupRoutes(r)
	activities.NewHandler(s.training.Activities).SetupRoutes(r)
	records.NewHandler(s.training.Records).SetupRoutes(r)
	trends.NewHandler(s.training.Progress).SetupRoutes(r)
	challenges.NewHandler(s.training.Challenges).SetupRoutes(r)

	if s.config.MCPHttpEnabled {
		mcpServer := trainingmcp.NewServer(
			s.dbPool,
			s.training.Progress,
			s.training.Records,
			s.training.Challenges,
		)
		r.PathPrefix("/mcp").
			Handler(trainingmcp.NewHTTPHandler(mcpServer, s.secrets.MCPSecretHash)).
			Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		auth.Config{
			Secret: s.secrets.JWTSecret,
			Issuer: s.config.JWTIssuer,
		},
		s.revocations,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, s.config.RateLimitAllowedPerMin))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;) "+s.versionInfo)
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.outboxDispatcher != nil {
		var outboxCtx context.Context
		outboxCtx, s.outboxCancel = context.WithCancel(ctx)
		go s.outboxDispatcher.Run(outboxCtx)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.outboxDispatcher != nil && s.outboxCancel != nil {
		s.outboxCancel()
		s.outboxDispatcher.Wait()
		if err := s.outboxProducer.Close(); err != nil {
			log.Errorf("failed to close kafka producer: %s", err)
		}
		log.Debugln("outbox dispatcher stopped")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
