// Package main runs the training MCP server over stdio for local MCP clients.
// The main service mounts the same tools at /mcp over streamable HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal"
	"github.com/ikrystian/kluska/internal/cache"
	"github.com/ikrystian/kluska/internal/config"
	"github.com/ikrystian/kluska/internal/db"
	"github.com/ikrystian/kluska/internal/logging"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	trainingmcp "github.com/ikrystian/kluska/internal/training/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		log.Fatalf("load secrets: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if cfg.LogsPath == "" {
		// stdout carries the protocol
		log.SetOutput(os.Stderr)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	training := internal.NewTrainingServices(internal.TrainingServicesParams{
		DB:                  dbPool,
		ProgressCache:       cache.NewFreeCache(cfg.ProgressCacheSizeMB),
		ProgressCacheTTL:    time.Duration(cfg.ProgressCacheTTLSeconds) * time.Second,
		ProgressFanOutLimit: cfg.ProgressFanOutLimit,
		MetricsManager:      metrics.NewManager("kluska", "mcp", metrics.SetupPrometheus()),
	})
	server := trainingmcp.NewServer(dbPool, training.Progress, training.Records, training.Challenges)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server: %s", err)
	}
}
