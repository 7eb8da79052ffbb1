// Command server runs the student management HTTP API.
//
// Startup order: env file, config, logging, database, search index warmup,
// tracing, router, HTTP server. Shutdown drains in-flight requests, then
// flushes traces, then closes the database.
//
// @title       Student Management API
// @version     1.0
// @description Student and course enrollment management service.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/picocico/StudentManagement-sub000/internal/config"
	httpapi "github.com/picocico/StudentManagement-sub000/internal/http"
	"github.com/picocico/StudentManagement-sub000/internal/observability"
	"github.com/picocico/StudentManagement-sub000/internal/repo"
	"github.com/picocico/StudentManagement-sub000/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    sysutil.IsTruthy(os.Getenv("NO_COLOR")),
		})
	}
	ver := sysutil.FirstNonEmpty(os.Getenv("SERVICE_VERSION"), version)
	log.Info().Str("version", ver).Str("port", cfg.Port).Msg("starting")

	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	idx, err := httpapi.NewSearchIndex(context.Background(), db)
	if err != nil {
		log.Fatal().Err(err).Msg("build search index")
	}

	shutdownTracing, err := observability.Setup(context.Background(), cfg.OTEL, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}

	// Janitor: drop expired idempotency records so retries stay cheap.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go func() {
		tick := time.NewTicker(cfg.IdempotencyTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-janitorCtx.Done():
				return
			case <-tick.C:
				if err := repo.PurgeExpiredIdempotency(janitorCtx, db, time.Now().UTC()); err != nil {
					log.Warn().Err(err).Msg("purge idempotency")
				}
			}
		}
	}()

	r := gin.New()
	httpapi.RegisterRoutes(r, db, idx, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	stopJanitor()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
