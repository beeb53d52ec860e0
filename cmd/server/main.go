package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/flashstudy/internal/api"
	"github.com/vytor/flashstudy/internal/config"
	"github.com/vytor/flashstudy/internal/db"
	"github.com/vytor/flashstudy/internal/jobs"
	"github.com/vytor/flashstudy/internal/logger"
	"github.com/vytor/flashstudy/internal/repository/sqlite"
	"github.com/vytor/flashstudy/internal/scheduler"
	"github.com/vytor/flashstudy/internal/services"
	"github.com/vytor/flashstudy/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashStudy Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("progress_worker_count=%d", cfg.ProgressWorkerCount)
	log.Debug("progress_queue_size=%d", cfg.ProgressQueueSize)
	log.Debug("session_idle_ttl=%s", cfg.SessionIdleTTL)
	log.Debug("session_sweep_interval=%s", cfg.SessionSweepInterval)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	books := sqlite.NewBookRepository(database.DB)
	sections := sqlite.NewSectionRepository(database.DB)
	flashcards := sqlite.NewFlashcardRepository(database.DB)
	progress := sqlite.NewProgressRepository(database.DB)

	cardSource := services.NewCardSource(books, sections, flashcards)
	progressService := services.NewProgressService(progress)
	libraryService := services.NewLibraryService(books, sections, flashcards)

	progressPool := worker.NewPool(cfg.ProgressWorkerCount, cfg.ProgressQueueSize)
	queue := jobs.NewWorkerQueue(progressPool, progressService)
	studyService := services.NewStudyService(cardSource, queue)

	sweeper := scheduler.New(studyService, cfg.SessionIdleTTL, cfg.SessionSweepInterval)

	srv := api.NewServer(studyService, progressService, libraryService, cardSource, database)

	ctx, cancel := context.WithCancel(context.Background())
	progressPool.Start(ctx)
	if err := sweeper.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

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

	log.Debug("stopping scheduler")
	sweeper.Stop()

	// Queued progress writes are drained before the database closes.
	log.Debug("stopping progress pool")
	progressPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("FlashStudy Server Stopped")
	log.Info("===========================================")
}
