package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idiomoji/server/internal/api"
	"github.com/idiomoji/server/internal/auth"
	"github.com/idiomoji/server/internal/config"
	"github.com/idiomoji/server/internal/daily"
	"github.com/idiomoji/server/internal/db"
	"github.com/idiomoji/server/internal/live"
	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/moderation"
	"github.com/idiomoji/server/internal/repository/sqlite"
	"github.com/idiomoji/server/internal/timeattack"
	"github.com/idiomoji/server/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Idiomoji Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("env=%s", cfg.Env)
	log.Debug("sync_worker_count=%d", cfg.SyncWorkerCount)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)
	log.Debug("rush_duration=%ds", cfg.RushDuration)
	log.Debug("rush_batch_size=%d", cfg.RushBatchSize)
	log.Debug("rush_topup_size=%d", cfg.RushTopUpSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	puzzleRepo := sqlite.NewPuzzleRepository(database.DB)
	playerRepo := sqlite.NewPlayerRepository(database.DB)
	submissionRepo := sqlite.NewSubmissionRepository(database.DB)
	dailyGameRepo := sqlite.NewDailyGameRepository(database.DB)
	claimRepo := sqlite.NewClaimRepository(database.DB)
	rushRepo := sqlite.NewRushRepository(database.DB)

	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	hub := live.NewHub()

	authService := auth.NewService(cfg, claimRepo, playerRepo)
	dailyService := daily.NewService(puzzleRepo, playerRepo, dailyGameRepo, syncPool, hub)
	timeAttack := timeattack.NewController(cfg, puzzleRepo, rushRepo, syncPool, hub)
	moderationService := moderation.NewService(puzzleRepo, submissionRepo)

	srv := &api.Server{
		Config:     cfg,
		Auth:       authService,
		Daily:      dailyService,
		TimeAttack: timeAttack,
		Moderation: moderationService,
		Players:    playerRepo,
		Hub:        hub,
	}

	ctx, cancel := context.WithCancel(context.Background())
	syncPool.Start(ctx)
	go hub.Run(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping hub and workers")
	cancel()
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("Idiomoji Server Stopped")
	log.Info("===========================================")
}
