package cli

import (
	"fmt"
	"log/slog"
	"os"

	"mindverse/config"
	"mindverse/internal/adapter/embedding"
	"mindverse/internal/adapter/llm"
	"mindverse/internal/port"
)

// newEmbedder builds the configured embedding provider.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BatchSize)
	case "gemini":
		return embedding.NewGeminiEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.BatchSize)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// llmClient is satisfied by every generation provider.
type llmClient interface {
	port.LLM
	port.Answerer
}

// newLLM builds the configured generation provider.
func newLLM(cfg *config.Config) (llmClient, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return llm.NewGeminiClient(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	case "openai":
		return llm.NewOpenAIClient(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	case "mock":
		return llm.NewMockClient("This is a canned reply."), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

// newLogger builds a JSON slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
