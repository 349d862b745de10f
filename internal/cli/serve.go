package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"mindverse/config"
	"mindverse/internal/adapter/cache"
	"mindverse/internal/adapter/chunker"
	"mindverse/internal/adapter/classifier"
	"mindverse/internal/adapter/docstore"
	"mindverse/internal/adapter/extractor"
	"mindverse/internal/adapter/userstore"
	"mindverse/internal/auth"
	"mindverse/internal/server"
	"mindverse/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the MindVerse HTTP API. Documents uploaded through the API are
chunked, embedded, and indexed in memory; user accounts and therapy
sessions persist in a bolt database under the configured data directory.

Examples:
  mindverse serve
  mindverse serve --config /etc/mindverse.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	logger := newLogger(cfg.Logging.Level)

	if err := config.EnsureDir(cfg.Server.DataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := config.EnsureDir(cfg.Server.UploadDir); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	users, err := userstore.Open(config.UserDBPath(cfg.Server.DataDir))
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	defer users.Close()

	secret := os.Getenv(cfg.Auth.JWTSecretEnv)
	if secret == "" {
		return fmt.Errorf("missing JWT secret: set %s", cfg.Auth.JWTSecretEnv)
	}
	tokens, err := auth.NewTokenManager(secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	generator, err := newLLM(cfg)
	if err != nil {
		return err
	}

	store := docstore.New()
	answerCache := cache.NewAnswerCache(cfg.Retrieve.CacheSize, time.Duration(cfg.Retrieve.CacheTTLSeconds)*time.Second)
	chk := chunker.NewWordChunker(cfg.Chunking.MaxWords)

	ingestUC := usecase.NewIngestUseCase(chk, embedder, store, answerCache)
	queryUC := usecase.NewQueryUseCase(store, embedder, generator, answerCache, cfg.Retrieve.TopK)
	analyzeUC := usecase.NewAnalyzeUseCase(classifier.NewTagger(), generator)
	chatUC := usecase.NewChatUseCase(generator)

	srv := server.New(cfg.Server, logger, server.Deps{
		Users:     users,
		Tokens:    tokens,
		Extractor: extractor.New(),
		Ingest:    ingestUC,
		Query:     queryUC,
		Analyze:   analyzeUC,
		Chat:      chatUC,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting mindverse",
		"embedding", cfg.Embedding.Provider,
		"llm", cfg.LLM.Provider,
		"port", cfg.Server.Port,
	)
	return srv.Run(ctx)
}
