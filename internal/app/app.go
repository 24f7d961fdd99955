package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// App holds the services shared by the HTTP server and the CLI.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Catalog  services.BackendCatalog
	Router   services.LLMRouter
	Analyzer services.AnalyzerService
	Storage  services.StorageService
	Exporter services.CSVExporter
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	catalog := services.DefaultBackendCatalog().Override(services.BackendCatalog{
		OpenAIModel:    cfg.LLM.OpenAI.Model,
		OllamaModel:    cfg.LLM.Ollama.Model,
		GeminiModel:    cfg.LLM.Gemini.Model,
		AnthropicModel: cfg.LLM.Anthropic.Model,
	})

	clients := map[models.Provider]services.LLMClient{
		models.ProviderOpenAI: services.NewOpenAIClient(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.BaseURL),
		models.ProviderOllama: services.NewOllamaClient(cfg.LLM.Ollama.BaseURL),
	}

	if cfg.LLM.Gemini.APIKey != "" {
		gemini, err := services.NewGeminiClient(ctx, cfg.LLM.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini: %w", err)
		}
		clients[models.ProviderGemini] = gemini
	}

	if cfg.LLM.Anthropic.APIKey != "" {
		clients[models.ProviderAnthropic] = services.NewAnthropicClient(cfg.LLM.Anthropic.APIKey)
	}

	router := services.NewLLMRouter(clients)
	log.Info("✅ LLM providers initialized", zap.Any("providers", router.Providers()))

	storage := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		return nil, err
	}

	extractor := services.NewTextExtractor(log)
	summarizer := services.NewSummarizerService(router, float32(cfg.LLM.Temperature), log, cfg.Log.MaxLength)
	runner := services.NewBulkRunner(extractor, summarizer, cfg.Bulk.Concurrency, log)
	exporter := services.NewCSVExporter(cfg.Export.CSVPath)

	return &App{
		Config:   cfg,
		Logger:   log,
		Catalog:  catalog,
		Router:   router,
		Analyzer: services.NewAnalyzerService(extractor, summarizer, runner, exporter, log),
		Storage:  storage,
		Exporter: exporter,
	}, nil
}
