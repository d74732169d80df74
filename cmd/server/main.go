package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/config"
	"github.com/infogpstech/GPSpedia2.0/internal/infra"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"
	"github.com/infogpstech/GPSpedia2.0/internal/router"
	"github.com/infogpstech/GPSpedia2.0/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Local SQLite store for the catalog snapshot: a cold start with the
	// remote sheet services down still serves the last known catalog.
	db, err := infra.NewSnapshotDB(cfg.SnapshotDBPath, &repository.CatalogoSnapshot{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot db")
	}
	snapRepo := repository.NewSnapshotRepository(db)

	// All sheet-service calls share one circuit breaker so a dead deployment
	// fast-fails instead of stalling every request.
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	sheets := infra.NewSheetsClient(cfg, cb)

	// Start goroutine worker pool for async tasks (problem-report emails).
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	pool := worker.NewPool(rdb, mailer, cfg.Destinatarios())
	pool.Start(ctx, cfg.WorkerPoolSize)

	// Catalog loader is shared by the HTTP layer and the background refresh
	// cron so both install into the same generation counter.
	loader := catalog.NewLoader(repository.NewCatalogoRepository(sheets), snapRepo, cfg.RecientesVentana)
	worker.StartRefreshCron(ctx, worker.RefreshCronConfig{
		Loader:   loader,
		CB:       cb,
		Interval: time.Duration(cfg.RefrescoMinutos) * time.Minute,
	})

	r := router.New(cfg, rdb, sheets, loader)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("GPSpedia backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
