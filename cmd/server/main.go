package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hanmal/backend/internal/config"
	"hanmal/backend/internal/db"
	"hanmal/backend/internal/handler"
	transport "hanmal/backend/internal/http"
	"hanmal/backend/internal/logger"
	"hanmal/backend/internal/repository"
	"hanmal/backend/internal/service"
	"hanmal/backend/internal/service/llm"
	"hanmal/backend/internal/service/translation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	profileRepo := repository.NewProfileRepository(dbConn)
	profileService := service.NewProfileService(profileRepo)

	// The generative client backs the rule-transformation step even when the
	// primary provider is the formality-aware one, so it is built whenever a
	// model is configured.
	var transformer *translation.RuleTransformer
	llmClient, err := llm.NewClient(llm.Config{
		Backend: cfg.LLMBackend,
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	})
	if err != nil {
		if cfg.Backend == config.BackendLLM {
			log.Fatalf("configure llm backend: %v", err)
		}
		logger.Warn("generative client unavailable, custom rules disabled",
			"module", "main", "action", "init", "resource", "llm", "result", "degraded",
			"error", err)
	} else {
		transformer = translation.NewRuleTransformer(llmClient)
	}

	var provider translation.Provider
	switch cfg.Backend {
	case config.BackendDeepL:
		provider = translation.NewDeepL(cfg.DeepLAPIKey, cfg.DeepLBaseURL)
	default:
		provider = translation.NewGenerative(llmClient)
	}

	limiter := translation.NewRateLimiter(cfg.RateLimitQPS)
	translationService := service.NewTranslationService(
		provider, transformer, profileService, limiter, cfg.ProviderTimeout())

	translateHandler := handler.NewTranslateHandler(translationService)
	profileHandler := handler.NewProfileHandler(profileService)

	router := transport.NewRouter(translateHandler, profileHandler)

	logger.Info("server starting",
		"module", "main", "action", "start", "resource", "server", "result", "ok",
		"addr", cfg.Addr, "backend", cfg.Backend, "provider", provider.Name())

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		os.Exit(0)
	}()

	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
