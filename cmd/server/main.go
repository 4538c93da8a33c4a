package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/pharmaflash/internal/api"
	"github.com/vytor/pharmaflash/internal/config"
	"github.com/vytor/pharmaflash/internal/db"
	"github.com/vytor/pharmaflash/internal/jobs"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/pubchem"
	"github.com/vytor/pharmaflash/internal/random"
	"github.com/vytor/pharmaflash/internal/repository/sqlite"
	"github.com/vytor/pharmaflash/internal/services"
	"github.com/vytor/pharmaflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PharmaFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("quiz max_questions=%d option_count=%d min_pool=%d", cfg.QuizMaxQuestions, cfg.QuizOptionCount, cfg.QuizMinPool)
	log.Debug("quiz modalities=%v", cfg.QuizModalities)
	log.Debug("random_seed=%d", cfg.RandomSeed)
	log.Debug("autofill_worker_count=%d autofill_queue_size=%d", cfg.AutofillWorkerCount, cfg.AutofillQueueSize)
	log.Debug("pubchem_base_url=%s timeout=%v", cfg.PubChemBaseURL, cfg.PubChemTimeout)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	profileRepo := sqlite.NewProfileRepository(database.DB)
	chapterRepo := sqlite.NewChapterRepository(database.DB)
	topicRepo := sqlite.NewTopicRepository(database.DB)
	itemRepo := sqlite.NewItemRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)

	autofillPool := worker.NewPool(cfg.AutofillWorkerCount, cfg.AutofillQueueSize)
	jobQueue := jobs.NewWorkerQueue(autofillPool, nil)

	src := random.Locked(random.FromSeed(cfg.RandomSeed))
	quizOpts, err := cfg.QuizOptions()
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	catalogService := services.NewCatalogService(
		chapterRepo,
		topicRepo,
		itemRepo,
		pubchem.New(cfg.PubChemBaseURL, cfg.PubChemTimeout),
		jobQueue,
	)
	jobQueue.SetAutofiller(catalogService)

	srv := &api.Server{
		ProfileService:   services.NewProfileService(profileRepo),
		CatalogService:   catalogService,
		QuizService:      services.NewQuizService(catalogService, src, quizOpts),
		FlashcardService: services.NewFlashcardService(catalogService, reviewRepo, src),
		StatsService:     services.NewStatsService(reviewRepo),
		DB:               database,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	autofillPool.Start(ctx)

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

	log.Debug("stopping autofill pool")
	cancel()
	autofillPool.Stop()

	log.Info("===========================================")
	log.Info("PharmaFlash Server Stopped")
	log.Info("===========================================")
}
