// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

// Command sync runs one ingestion cycle from the command line and exits.
//
// It wires the same ingestion pipeline the API's admin trigger uses, so a
// cron job or operator shell can refresh the catalogue without the HTTP
// surface. Exit code 0 means the cycle completed; record-level failures are
// reported in the log and the summary, not the exit code.
//
// With -mint-admin-token the command instead prints a signed admin token
// for the configured secret and exits, skipping the sync entirely. This is
// how operators obtain the bearer token the admin endpoints require.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shinkan-app/shinkan/internal/cache"
	"github.com/shinkan-app/shinkan/internal/ingest"
	"github.com/shinkan-app/shinkan/internal/platform/config"
	"github.com/shinkan-app/shinkan/internal/platform/constants"
	"github.com/shinkan-app/shinkan/internal/platform/migration"
	pgstore "github.com/shinkan-app/shinkan/internal/platform/postgres"
	redisstore "github.com/shinkan-app/shinkan/internal/platform/redis"
	"github.com/shinkan-app/shinkan/internal/platform/sec"
	"github.com/shinkan-app/shinkan/internal/release"
)

func main() {
	mintTTL := flag.Duration("mint-admin-token", 0, "mint an admin token with this TTL and exit (e.g. 24h)")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName), slog.String("cmd", "sync"))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if *mintTTL > 0 {
		tokens, err := sec.NewTokenService(cfg.AdminTokenSecret, constants.AuthIssuer)
		must(log, err, "build token service")

		token, err := tokens.GenerateToken("cli", "admin", *mintTTL)
		must(log, err, "mint admin token")

		fmt.Println(token)
		return
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	releaseRepository := release.NewRepository(pool)
	publisherRepository := release.NewPublisherRepository(pool)
	reconciler := ingest.NewReconciler(releaseRepository, publisherRepository)
	sources := []ingest.Source{ingest.NewMockSource(time.Now().UnixNano())}

	service := ingest.NewService(sources, reconciler, cache.NewRedisStore(rdb),
		cfg.SyncMonthsAhead, cfg.CacheInvalidateOnSync)

	report, err := service.Sync(context.Background(), 0)
	must(log, err, "run sync")

	for _, summary := range report.Sources {
		log.Info("sync_source_summary",
			slog.String("source", summary.SourceName),
			slog.Int("fetched", summary.Fetched),
			slog.Int("created", summary.Created),
			slog.Int("updated", summary.Updated),
			slog.Int("failed", summary.Failed),
		)
	}

	log.Info("sync_finished",
		slog.String("window_from", report.WindowFrom),
		slog.String("window_to", report.WindowTo),
		slog.String("duration", report.Duration),
		slog.Int("cache_keys_dropped", report.CacheKeysDropped),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
