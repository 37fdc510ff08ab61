package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"honeytrap-lab/internal/api"
	"honeytrap-lab/internal/api/handlers"
	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/pkg/logger"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting HoneyTrap Lab")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; rate limiting and report archiving degrade without it
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
			redisCache = nil
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Classifier model artifacts are optional; keyword matching covers their absence
	model, err := ai.LoadTextModel(cfg.Classifier.ModelPath, cfg.Classifier.VectorizerPath)
	if err != nil {
		log.Warn().Err(err).Msg("classifier model unavailable, using keyword fallback")
		model = nil
	} else {
		log.Info().Str("path", cfg.Classifier.ModelPath).Msg("classifier model loaded")
	}

	llmClient := ai.NewLLMClient(ai.LLMConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	}, log)
	if !llmClient.Enabled() {
		log.Warn().Msg("no LLM API key configured, running with offline replies")
	}

	// Wire the conversation pipeline
	extractor := ai.NewEntityExtractor(log)
	classifier := ai.NewScamClassifier(model, log)
	personaRouter := ai.NewPersonaRouter(llmClient, log)
	replyGen := ai.NewReplyGenerator(llmClient, log)
	transcriber := ai.NewTranscriber(log)
	sessions := session.NewStore()

	callbackCfg := services.DefaultCallbackConfig()
	callbackCfg.URL = cfg.Callback.URL
	if cfg.Callback.Timeout > 0 {
		callbackCfg.Timeout = cfg.Callback.Timeout
	}
	if cfg.Callback.WorkerCount > 0 {
		callbackCfg.WorkerCount = cfg.Callback.WorkerCount
	}
	if cfg.Callback.QueueSize > 0 {
		callbackCfg.QueueSize = cfg.Callback.QueueSize
	}
	callbackSvc := services.NewCallbackService(callbackCfg, extractor, sessions, redisCache, log)
	defer callbackSvc.Stop()

	orchestrator := services.NewOrchestrator(classifier, personaRouter, replyGen, extractor, transcriber, sessions, callbackSvc, log)

	h := handlers.NewHandlers(handlers.Dependencies{
		Orchestrator: orchestrator,
		Extractor:    extractor,
		Classifier:   classifier,
		LLM:          llmClient,
		Sessions:     sessions,
		Cache:        redisCache,
		Logger:       log,
	})

	router := api.NewRouter(*cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
